// Package camera defines the camera intrinsic models a view can be initialized with.
package camera

import (
	"strings"

	"github.com/pkg/errors"
)

// Model is the name of a camera model. The set of models is closed.
type Model string

const (
	// PinholeModel is a pinhole camera without lens distortion.
	PinholeModel = Model("pinhole")
	// Radial1Model adds one radial distortion coefficient.
	Radial1Model = Model("radial1")
	// Radial3Model adds three radial distortion coefficients.
	Radial3Model = Model("radial3")
	// BrownModel adds three radial and two tangential distortion coefficients.
	BrownModel = Model("brown")
	// Fisheye4Model is for wide-angle and fisheye lenses, with four coefficients.
	Fisheye4Model = Model("fisheye4")
	// Fisheye1Model is a single parameter fisheye model.
	Fisheye1Model = Model("fisheye1")
)

// DefaultModel is used when neither the user nor the metadata selects a model.
const DefaultModel = Radial3Model

// Models lists every supported camera model.
var Models = []Model{PinholeModel, Radial1Model, Radial3Model, BrownModel, Fisheye4Model, Fisheye1Model}

// ParseModel returns the model with the given name, ignoring case.
func ParseModel(name string) (Model, error) {
	lowered := Model(strings.ToLower(strings.TrimSpace(name)))
	for _, m := range Models {
		if m == lowered {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown camera model %q, expected one of %v", name, Models)
}

// IsPinholeFamily reports whether the model projects through a focal length and a principal point.
func (m Model) IsPinholeFamily() bool {
	return m.DistortionParamCount() >= 0
}

// DistortionParamCount returns how many distortion coefficients the model carries, or -1 for a
// model outside the supported set.
func (m Model) DistortionParamCount() int {
	switch m {
	case PinholeModel:
		return 0
	case Radial1Model, Fisheye1Model:
		return 1
	case Radial3Model:
		return 3
	case Fisheye4Model:
		return 4
	case BrownModel:
		return 5
	default:
		return -1
	}
}
