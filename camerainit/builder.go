package camerainit

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/sfm"
	"go.viam.com/camerainit/utils"
)

// CustomMake is the camera make of images whose model metadata names a camera model directly.
const CustomMake = "Custom"

// fisheyeFocal35mm is the 35mm-equivalent focal length under which a lens is considered a fisheye.
const fisheyeFocal35mm = 18.0

// fisheyeFieldOfView is the field of view in degrees over which a lens is considered a fisheye.
const fisheyeFieldOfView = 100.0

// SelectModel chooses the camera model of a view. A "Custom" make whose model is a camera model
// wins, then the configured default, then a fisheye for short lenses, then camera.DefaultModel.
func SelectModel(view *sfm.View, focalIn35mm float64, defaults Defaults) camera.Model {
	if strings.EqualFold(view.Make(), CustomMake) {
		if model, err := camera.ParseModel(view.Model()); err == nil {
			return model
		}
	}
	if defaults.Model != "" {
		return defaults.Model
	}
	if (focalIn35mm > 0 && focalIn35mm < fisheyeFocal35mm) || defaults.FieldOfView > fisheyeFieldOfView {
		return camera.Fisheye4Model
	}
	return camera.DefaultModel
}

// FocalLengthFromFieldOfView returns the focal length in pixels that gives an image of the given
// width the given horizontal field of view in degrees.
func FocalLengthFromFieldOfView(width int, fieldOfView float64) float64 {
	return float64(width) / (2 * math.Tan(utils.DegToRad(fieldOfView)/2))
}

// BuildIntrinsic builds a view's intrinsic from its resolved focal length and sensor width, both
// in millimeters and non-positive when unknown. Defaults take precedence over the metadata, and
// mark the intrinsic as initialized from the defaults.
func BuildIntrinsic(
	view *sfm.View,
	focalLength, sensorWidth float64,
	mode camera.InitMode,
	defaults Defaults,
) (*camera.Intrinsic, error) {
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.Errorf("view %s (%q) has no image size", view.ViewID, view.ImagePath)
	}
	model := SelectModel(view, FocalLengthIn35mm(focalLength, sensorWidth), defaults)
	width := float64(view.Width)

	initialFocalPix := -1.0
	if focalLength > 0 && sensorWidth > 0 {
		initialFocalPix = focalLength * width / sensorWidth
	}

	focalPix := initialFocalPix
	switch {
	case defaults.FocalLengthPix > 0:
		focalPix = defaults.FocalLengthPix
		mode = camera.InitFromDefaultFieldOfView
	case defaults.FieldOfView > 0:
		focalPix = FocalLengthFromFieldOfView(view.Width, defaults.FieldOfView)
		mode = camera.InitFromDefaultFieldOfView
	}

	pp := r2.Point{X: width / 2, Y: float64(view.Height) / 2}
	if defaults.PrincipalPoint != nil {
		pp = r2.Point{X: defaults.PrincipalPoint[0], Y: defaults.PrincipalPoint[1]}
	}

	intr, err := camera.NewPinhole(model, view.Width, view.Height, focalPix, pp.X, pp.Y)
	if err != nil {
		return nil, err
	}
	intr.Distortion = camera.InitialDistortion(model, view.Make())
	intr.InitialFocalLengthPix = initialFocalPix
	intr.SerialNumber = view.BodySerialNumber() + view.LensSerialNumber()
	intr.InitializationMode = mode
	return intr, nil
}
