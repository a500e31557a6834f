package camerainit

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/utils"
)

// GroupMode selects how views share intrinsics.
type GroupMode int

const (
	// GroupNever gives every view its own intrinsic.
	GroupNever GroupMode = iota
	// GroupByMetadata shares an intrinsic between views with identical camera parameters.
	GroupByMetadata
	// GroupByMetadataOrFolder is GroupByMetadata, except that views without camera metadata are
	// grouped by the folder they are in.
	GroupByMetadataOrFolder
)

// Options configure the camera initialization.
type Options struct {
	// DefaultFocalLengthPix is the focal length in pixels of every built intrinsic; -1 is unset.
	DefaultFocalLengthPix float64 `json:"defaultFocalLengthPix" yaml:"defaultFocalLengthPix"`
	// DefaultFieldOfView in degrees sets the focal length of every built intrinsic; -1 is unset.
	DefaultFieldOfView float64 `json:"defaultFieldOfView" yaml:"defaultFieldOfView"`
	// DefaultIntrinsic is a calibration matrix "f;0;ppx;0;f;ppy;0;0;1" applied to every built intrinsic.
	DefaultIntrinsic string `json:"defaultIntrinsic" yaml:"defaultIntrinsic"`
	// DefaultCameraModel forces the camera model, unless the image metadata names one.
	DefaultCameraModel string `json:"defaultCameraModel" yaml:"defaultCameraModel"`

	GroupCameraModel      GroupMode `json:"groupCameraModel" yaml:"groupCameraModel"`
	AllowIncompleteOutput bool      `json:"allowIncompleteOutput" yaml:"allowIncompleteOutput"`
	AllowSingleView       bool      `json:"allowSingleView" yaml:"allowSingleView"`

	// Workers bounds the number of views processed at once.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DefaultFocalLengthPix: -1,
		DefaultFieldOfView:    -1,
		GroupCameraModel:      GroupByMetadataOrFolder,
		Workers:               utils.ParallelFactor,
	}
}

// Defaults are the overrides applied when building an intrinsic.
type Defaults struct {
	FocalLengthPix float64
	FieldOfView    float64
	// PrincipalPoint comes from the calibration matrix; nil means the image center.
	PrincipalPoint *[2]float64
	// Model is empty when the model is chosen from the metadata.
	Model camera.Model
}

// Validate checks the options, returning every problem found.
func (opts Options) Validate() error {
	_, err := opts.Defaults()
	return err
}

// Defaults validates the options and returns the overrides they describe.
func (opts Options) Defaults() (Defaults, error) {
	defaults := Defaults{FocalLengthPix: -1, FieldOfView: -1}
	var errs []error

	overrides := 0
	if opts.DefaultIntrinsic != "" {
		overrides++
		k, err := camera.ParseKMatrix(opts.DefaultIntrinsic)
		if err != nil {
			errs = append(errs, errors.Wrap(err, "defaultIntrinsic"))
		} else {
			defaults.FocalLengthPix = k.FocalLengthPix()
			defaults.PrincipalPoint = &[2]float64{k.Ppx(), k.Ppy()}
		}
	}
	if opts.DefaultFocalLengthPix > 0 {
		overrides++
		defaults.FocalLengthPix = opts.DefaultFocalLengthPix
	}
	if opts.DefaultFieldOfView > 0 {
		overrides++
		if opts.DefaultFieldOfView >= 180 {
			errs = append(errs, errors.Errorf("defaultFieldOfView must be below 180 degrees, got %v", opts.DefaultFieldOfView))
		}
		defaults.FieldOfView = opts.DefaultFieldOfView
	}
	if overrides > 1 {
		errs = append(errs, errors.New("only one of defaultIntrinsic, defaultFocalLengthPix and defaultFieldOfView can be set"))
	}

	if opts.DefaultCameraModel != "" {
		model, err := camera.ParseModel(opts.DefaultCameraModel)
		if err != nil {
			errs = append(errs, errors.Wrap(err, "defaultCameraModel"))
		}
		defaults.Model = model
	}
	if opts.GroupCameraModel < GroupNever || opts.GroupCameraModel > GroupByMetadataOrFolder {
		errs = append(errs, errors.Errorf("groupCameraModel must be 0, 1 or 2, got %d", opts.GroupCameraModel))
	}
	if opts.Workers < 0 {
		errs = append(errs, errors.Errorf("workers cannot be negative, got %d", opts.Workers))
	}

	if len(errs) != 0 {
		// not a multi-error: urfave/cli exits the process on those
		return Defaults{}, errors.Wrap(ErrInvalidConfiguration, multierr.Combine(errs...).Error())
	}
	return defaults, nil
}

// MinCompleteViews is the number of views that need an initialized intrinsic for the run to succeed.
func (opts Options) MinCompleteViews() int {
	if opts.AllowSingleView {
		return 1
	}
	return 2
}
