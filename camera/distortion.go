package camera

import "strings"

// goproDistortion holds initial distortion coefficients measured on GoPro action cameras.
var goproDistortion = map[Model][]float64{
	Fisheye4Model: {0.0524, 0.0094, -0.0037, -0.0004},
	Fisheye1Model: {1.04},
}

// InitialDistortion returns the starting distortion coefficients for a camera of the given make
// and model: a known preset when there is one, otherwise zeros.
func InitialDistortion(model Model, cameraMake string) []float64 {
	n := model.DistortionParamCount()
	if n < 0 {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(cameraMake), "GoPro") {
		if preset, ok := goproDistortion[model]; ok {
			return append([]float64(nil), preset...)
		}
	}
	return make([]float64, n)
}
