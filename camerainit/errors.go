package camerainit

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned before any view is processed when the options conflict
	// or cannot be parsed.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNoInputViews is returned when there is nothing to initialize.
	ErrNoInputViews = errors.New("no input views")
	// ErrUnknownSensor is returned when some camera is missing from the sensor database and
	// incomplete output is not allowed.
	ErrUnknownSensor = errors.New("sensor width not found in the database")
	// ErrInvalidRigStructure is returned when the detected rigs do not have the same number of
	// captures for each of their cameras.
	ErrInvalidRigStructure = errors.New("invalid rig structure")
	// ErrInsufficientCompleteViews is returned when too few views have an initialized intrinsic.
	ErrInsufficientCompleteViews = errors.New("not enough views with an initialized intrinsic")
	// ErrInvalidRigPath is returned by DetectRig for a path inside a rig folder whose sub-pose or
	// frame cannot be parsed. The view is then used as a single image.
	ErrInvalidRigPath = errors.New("invalid rig path")
)
