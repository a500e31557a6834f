package camerainit

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/logging"
	"go.viam.com/camerainit/sensordb"
	"go.viam.com/camerainit/sfm"
)

// SensorKey identifies a camera by its metadata.
type SensorKey struct {
	Make  string
	Model string
}

func (k SensorKey) compare(other SensorKey) int {
	if c := cmp.Compare(k.Make, other.Make); c != 0 {
		return c
	}
	return cmp.Compare(k.Model, other.Model)
}

// UnsureSensor is a camera whose database entry has a slightly different model name.
type UnsureSensor struct {
	ImagePath string
	Datasheet sensordb.Datasheet
}

// Focal35mmEstimate is what the 35mm-equivalent focal length resolved for an image.
type Focal35mmEstimate struct {
	SensorWidth float64
	FocalLength float64
}

// ViewOutcome is the result of resolving a single view. Workers produce outcomes without touching
// shared state; Reduce applies them.
type ViewOutcome struct {
	ViewID    sfm.Index
	ImagePath string

	// Rig is set when the image path follows the rig layout.
	Rig *RigInfo
	// InvalidRigPath is set when the image is in a rig folder but could not be placed in the rig.
	InvalidRigPath error

	// Reused is set when the view already had an initialized intrinsic.
	Reused bool
	// Intrinsic is the built intrinsic, nil if none was built.
	Intrinsic     *camera.Intrinsic
	IntrinsicHash uint64
	// Unresolved is set when no intrinsic could be built and the view is left without one.
	Unresolved bool
	Complete   bool

	NoMetadata    bool
	UnknownSensor *SensorKey
	UnsureSensor  *SensorKey
	UnsureMatch   sensordb.Datasheet
	Focal35mm     *Focal35mmEstimate
}

// Diagnostics summarizes a run: what could not be resolved and what needs to be reviewed.
type Diagnostics struct {
	ViewCount      int
	IntrinsicCount int

	NoMetadataImages   []string
	UnsureSensors      map[SensorKey]UnsureSensor
	UnknownSensors     map[SensorKey]string
	Focal35mmEstimates map[string]Focal35mmEstimate
	InvalidRigPaths    []string
	CompleteViewCount  int
	RigObservations    RigObservations
}

// NewDiagnostics returns empty diagnostics.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		UnsureSensors:      map[SensorKey]UnsureSensor{},
		UnknownSensors:     map[SensorKey]string{},
		Focal35mmEstimates: map[string]Focal35mmEstimate{},
		RigObservations:    RigObservations{},
	}
}

// Merge adds a view's outcome. For a camera seen in several images, the first merged image is kept.
func (d *Diagnostics) Merge(out *ViewOutcome) {
	if out.Rig != nil {
		d.RigObservations.Observe(*out.Rig)
	}
	if out.InvalidRigPath != nil {
		d.InvalidRigPaths = append(d.InvalidRigPaths, out.ImagePath)
	}
	if out.Complete {
		d.CompleteViewCount++
	}
	if out.NoMetadata {
		d.NoMetadataImages = append(d.NoMetadataImages, out.ImagePath)
	}
	if out.UnknownSensor != nil {
		if _, ok := d.UnknownSensors[*out.UnknownSensor]; !ok {
			d.UnknownSensors[*out.UnknownSensor] = out.ImagePath
		}
	}
	if out.UnsureSensor != nil {
		if _, ok := d.UnsureSensors[*out.UnsureSensor]; !ok {
			d.UnsureSensors[*out.UnsureSensor] = UnsureSensor{ImagePath: out.ImagePath, Datasheet: out.UnsureMatch}
		}
	}
	if out.Focal35mm != nil {
		d.Focal35mmEstimates[out.ImagePath] = *out.Focal35mm
	}
}

// Reduce applies view outcomes, in order, to the scene: views get their rig placement and intrinsic
// identity, and built intrinsics are added. An identity already used by an intrinsic built in this
// pass keeps its first intrinsic; an uninitialized or invalid intrinsic loaded with the scene is
// replaced.
func Reduce(data *sfm.Data, outcomes []ViewOutcome, policy GroupingPolicy) (*Diagnostics, error) {
	diag := NewDiagnostics()
	built := map[sfm.Index]struct{}{}
	taken := func(id sfm.Index) bool {
		_, ok := data.Intrinsics[id]
		return ok
	}
	for i := range outcomes {
		out := &outcomes[i]
		view, ok := data.Views[out.ViewID]
		if !ok {
			return nil, errors.Errorf("outcome for unknown view %s", out.ViewID)
		}
		diag.Merge(out)

		if out.Rig != nil {
			view.SetRig(out.Rig.RigID, out.Rig.SubPoseID, out.Rig.FrameID)
		}
		switch {
		case out.Unresolved:
			view.IntrinsicID = sfm.UndefinedIndex
		case out.Intrinsic != nil:
			id := policy.AssignID(view.IntrinsicID, out.IntrinsicHash, taken)
			existing, exists := data.Intrinsics[id]
			_, builtHere := built[id]
			if !exists || (!builtHere && existing.CheckValid() != nil) {
				data.Intrinsics[id] = out.Intrinsic
			}
			built[id] = struct{}{}
			view.IntrinsicID = id
		}
	}
	diag.ViewCount = len(data.Views)
	diag.IntrinsicCount = len(data.Intrinsics)
	return diag, nil
}

// Check decides whether the run succeeded.
func (d *Diagnostics) Check(opts Options) error {
	if opts.AllowIncompleteOutput {
		return nil
	}
	if len(d.UnknownSensors) != 0 {
		return errors.Wrapf(ErrUnknownSensor, "%d camera(s) missing, add them to the sensor database", len(d.UnknownSensors))
	}
	if minViews := opts.MinCompleteViews(); d.CompleteViewCount < minViews {
		return errors.Wrapf(ErrInsufficientCompleteViews,
			"%d of %d view(s) initialized, at least %d required; check the images' make, model and focal length metadata",
			d.CompleteViewCount, d.ViewCount, minViews)
	}
	return nil
}

func (d *Diagnostics) sortedUnsureKeys() []SensorKey {
	keys := lo.Keys(d.UnsureSensors)
	slices.SortFunc(keys, SensorKey.compare)
	return keys
}

func (d *Diagnostics) sortedUnknownKeys() []SensorKey {
	keys := lo.Keys(d.UnknownSensors)
	slices.SortFunc(keys, SensorKey.compare)
	return keys
}

// Log reports the diagnostics: what needs fixing as warnings, the details at debug level.
func (d *Diagnostics) Log(logger logging.Logger) {
	if len(d.NoMetadataImages) != 0 {
		logger.Debugw("no metadata in images", "images", d.NoMetadataImages)
	}
	for _, imagePath := range d.InvalidRigPaths {
		logger.Warnw("invalid rig structure, used as single image", "image", imagePath)
	}
	if len(d.UnsureSensors) != 0 {
		for _, key := range d.sortedUnsureKeys() {
			unsure := d.UnsureSensors[key]
			logger.Warnw("the camera found in the database is slightly different",
				"image", filepath.Base(unsure.ImagePath),
				"make", key.Make,
				"model", key.Model,
				"database_brand", unsure.Datasheet.Brand,
				"database_model", unsure.Datasheet.Model,
				"sensor_width_mm", unsure.Datasheet.SensorWidth)
		}
		logger.Warn("please check and correct the camera model names in the database")
	}
	if len(d.UnknownSensors) != 0 {
		for _, key := range d.sortedUnknownKeys() {
			logger.Warnw("sensor width not found in the database",
				"make", key.Make,
				"model", key.Model,
				"image", filepath.Base(d.UnknownSensors[key]))
		}
		logger.Warn("please add the camera models and sensor widths to the database")
	}
	if len(d.Focal35mmEstimates) != 0 {
		images := lo.Keys(d.Focal35mmEstimates)
		slices.Sort(images)
		for _, imagePath := range images {
			estimate := d.Focal35mmEstimates[imagePath]
			logger.Debugw("intrinsic initialized from the 35mm-equivalent focal length",
				"image", filepath.Base(imagePath),
				"sensor_width_mm", estimate.SensorWidth,
				"focal_length_mm", estimate.FocalLength)
		}
	}
	logger.Infow("camera initialization report",
		"views", d.ViewCount,
		"initialized_views", d.CompleteViewCount,
		"views_without_metadata", len(d.NoMetadataImages),
		"intrinsics", d.IntrinsicCount)
}

// String prints the report and the cameras needing attention as tables.
func (d *Diagnostics) String() string {
	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Views", "Initialized", "Without metadata", "From 35mm equivalent", "Intrinsics"})
	summary.AppendRow(table.Row{
		d.ViewCount, d.CompleteViewCount, len(d.NoMetadataImages), len(d.Focal35mmEstimates), d.IntrinsicCount,
	})
	var sb strings.Builder
	sb.WriteString(summary.Render())
	sb.WriteString("\n")

	if len(d.UnsureSensors) == 0 && len(d.UnknownSensors) == 0 {
		return sb.String()
	}
	sensors := table.NewWriter()
	sensors.AppendHeader(table.Row{"Make", "Model", "Issue", "Database entry", "Image"})
	for _, key := range d.sortedUnsureKeys() {
		unsure := d.UnsureSensors[key]
		sensors.AppendRow(table.Row{
			key.Make, key.Model, "unsure match",
			fmt.Sprintf("%s %s (%v mm)", unsure.Datasheet.Brand, unsure.Datasheet.Model, unsure.Datasheet.SensorWidth),
			filepath.Base(unsure.ImagePath),
		})
	}
	for _, key := range d.sortedUnknownKeys() {
		sensors.AppendRow(table.Row{key.Make, key.Model, "unknown", "", filepath.Base(d.UnknownSensors[key])})
	}
	sb.WriteString(sensors.Render())
	sb.WriteString("\n")
	return sb.String()
}
