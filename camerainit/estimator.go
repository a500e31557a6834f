package camerainit

import (
	"math"

	"go.viam.com/camerainit/utils"
)

// diag35mm is the diagonal of a 36x24mm film frame.
var diag35mm = math.Hypot(36, 24)

// EstimateFrom35mm completes a sensor width or a focal length (both in millimeters) from a
// 35mm-equivalent focal length and the image aspect ratio (width / height). Non-positive values
// are unknown. It reports whether it filled anything in; when both values are known it does not.
func EstimateFrom35mm(sensorWidth, focalLength, focal35mm, ratio float64) (float64, float64, bool) {
	if focal35mm <= 0 || ratio <= 0 {
		return sensorWidth, focalLength, false
	}
	invRatio := 1 / ratio
	widthOfDiag := math.Sqrt(1 / (1 + utils.Square(invRatio)))

	switch {
	case sensorWidth <= 0 && focalLength > 0:
		sensorDiag := focalLength * diag35mm / focal35mm
		return sensorDiag * widthOfDiag, focalLength, true
	case sensorWidth <= 0:
		sensorWidth = diag35mm * widthOfDiag
		return sensorWidth, sensorWidth * focal35mm / 36, true
	case focalLength <= 0:
		sensorDiag := math.Hypot(sensorWidth, sensorWidth*invRatio)
		return sensorWidth, sensorDiag * focal35mm / diag35mm, true
	default:
		return sensorWidth, focalLength, false
	}
}

// FocalLengthIn35mm converts a focal length to its 35mm equivalent using the sensor width, or
// returns -1 when either is unknown.
func FocalLengthIn35mm(focalLength, sensorWidth float64) float64 {
	if focalLength <= 0 || sensorWidth <= 0 {
		return -1
	}
	return 36 * focalLength / sensorWidth
}
