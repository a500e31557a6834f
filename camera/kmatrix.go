package camera

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"
)

// KMatrix is a user supplied calibration matrix of the form f;0;ppx;0;f;ppy;0;0;1.
type KMatrix struct {
	*mat.Dense
}

// ParseKMatrix parses the 9 semicolon separated values of a calibration matrix, in row-major order.
func ParseKMatrix(s string) (KMatrix, error) {
	fields := strings.Split(s, ";")
	if len(fields) != 9 {
		return KMatrix{}, errors.Errorf("calibration matrix %q must have 9 ';' separated values, got %d", s, len(fields))
	}
	values := make([]float64, 0, 9)
	for i, field := range fields {
		v, err := cast.ToFloat64E(strings.TrimSpace(field))
		if err != nil {
			return KMatrix{}, errors.Wrapf(err, "calibration matrix value %d (%q) is not a number", i, field)
		}
		values = append(values, v)
	}
	return KMatrix{mat.NewDense(3, 3, values)}, nil
}

// FocalLengthPix returns the matrix's focal length in pixels.
func (k KMatrix) FocalLengthPix() float64 {
	return k.At(0, 0)
}

// Ppx returns the x coordinate of the principal point.
func (k KMatrix) Ppx() float64 {
	return k.At(0, 2)
}

// Ppy returns the y coordinate of the principal point.
func (k KMatrix) Ppy() float64 {
	return k.At(1, 2)
}
