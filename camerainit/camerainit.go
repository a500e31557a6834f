// Package camerainit resolves the initial camera intrinsics of a set of views before
// reconstruction: sensor widths from a sensor database, focal lengths from metadata, rig
// membership from folder layout, and which views share an intrinsic.
//
// Views are resolved independently by a pool of workers. Each worker returns a ViewOutcome; the
// outcomes are then reduced in view order, so the result does not depend on scheduling.
package camerainit

import (
	"context"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/logging"
	"go.viam.com/camerainit/sensordb"
	"go.viam.com/camerainit/sfm"
	"go.viam.com/camerainit/utils"
)

// Initializer initializes the intrinsics of a scene.
type Initializer struct {
	db       *sensordb.Database
	opts     Options
	defaults Defaults
	policy   GroupingPolicy
	logger   logging.Logger
}

// New returns an Initializer looking sensors up in db. ids generates the identities of views that
// never share an intrinsic; nil means random identities.
func New(db *sensordb.Database, opts Options, ids IDGenerator, logger logging.Logger) (*Initializer, error) {
	defaults, err := opts.Defaults()
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	if opts.Workers == 0 {
		opts.Workers = utils.ParallelFactor
	}
	return &Initializer{
		db:       db,
		opts:     opts,
		defaults: defaults,
		policy:   GroupingPolicy{Mode: opts.GroupCameraModel, IDs: ids},
		logger:   logger,
	}, nil
}

// Run resolves the intrinsic of every view of data and detects rigs, updating data in place. The
// returned diagnostics are set whenever the views were processed, even if the run failed; on
// failure data must not be saved.
func (ci *Initializer) Run(ctx context.Context, data *sfm.Data) (*Diagnostics, error) {
	if len(data.Views) == 0 {
		return nil, ErrNoInputViews
	}

	viewIDs := data.SortedViewIDs()
	outcomes := make([]ViewOutcome, len(viewIDs))
	err := utils.ParallelForEach(ctx, len(viewIDs), ci.opts.Workers, func(i int) error {
		out, err := ci.resolveView(data.Views[viewIDs[i]], data)
		if err != nil {
			return err
		}
		outcomes[i] = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	diag, err := Reduce(data, outcomes, ci.policy)
	if err != nil {
		return nil, err
	}
	diag.Log(ci.logger)

	rigs, err := ValidateRigs(diag.RigObservations)
	if err != nil {
		return diag, err
	}
	for rigID, rig := range rigs {
		data.Rigs[rigID] = rig
	}
	return diag, diag.Check(ci.opts)
}

// resolveView runs on a worker: it reads the view and the scene but writes neither.
func (ci *Initializer) resolveView(view *sfm.View, data *sfm.Data) (ViewOutcome, error) {
	out := ViewOutcome{ViewID: view.ViewID, ImagePath: view.ImagePath}

	rig, isRig, err := DetectRig(view.ImagePath)
	switch {
	case err != nil:
		out.InvalidRigPath = err
	case isRig:
		out.Rig = &rig
	}

	existing := data.Intrinsic(view)
	invalidErr := existing.CheckValid()
	if invalidErr == nil {
		out.Reused = true
		out.Complete = true
		return out, nil
	}
	if existing.IsComplete() {
		ci.logger.Warnw("rebuilding invalid intrinsic",
			"image", view.ImagePath, "intrinsic", view.IntrinsicID, "error", invalidErr)
	}

	hasCameraMetadata := view.HasMakeOrModel()
	sensorWidth := -1.0
	focalLength := view.FocalLength()
	mode := camera.InitFromDefaultFieldOfView

	if hasCameraMetadata {
		res := ci.db.Lookup(view.Make(), view.Model())
		if res.Found {
			ci.logger.Debugw("sensor width found in database",
				"make", view.Make(), "model", view.Model(), "sensor_width_mm", res.SensorWidth())
			if res.Unsure {
				out.UnsureSensor = &SensorKey{Make: view.Make(), Model: view.Model()}
				out.UnsureMatch = res.Datasheet
			}
			sensorWidth = res.SensorWidth()
			if focalLength > 0 {
				mode = camera.InitComputedFromMetadata
			}
		}
	}

	if focal35mm, ok := view.FocalLengthIn35mm(); ok {
		var estimated bool
		sensorWidth, focalLength, estimated = EstimateFrom35mm(sensorWidth, focalLength, focal35mm, view.AspectRatio())
		if estimated {
			out.Focal35mm = &Focal35mmEstimate{SensorWidth: sensorWidth, FocalLength: focalLength}
			mode = camera.InitEstimatedFromMetadata
		}
	}

	if sensorWidth <= 0 {
		if hasCameraMetadata {
			out.UnknownSensor = &SensorKey{Make: view.Make(), Model: view.Model()}
		} else {
			out.NoMetadata = true
		}
		if ci.opts.AllowIncompleteOutput {
			out.Unresolved = true
			return out, nil
		}
	}

	intr, err := BuildIntrinsic(view, focalLength, sensorWidth, mode, ci.defaults)
	if err != nil {
		return ViewOutcome{}, err
	}
	ci.policy.OverrideSerial(view, out.Rig, intr)
	hash, err := intr.HashValue()
	if err != nil {
		return ViewOutcome{}, err
	}
	out.Intrinsic = intr
	out.IntrinsicHash = hash
	out.Complete = intr.IsComplete()
	return out, nil
}
