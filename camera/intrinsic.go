package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/pkg/errors"
)

// ErrNoIntrinsics is when a camera does not have usable intrinsic parameters.
var ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")

// NewNoIntrinsicsError is used when the intrinsics are not defined.
func NewNoIntrinsicsError(msg string) error {
	return errors.Wrap(ErrNoIntrinsics, msg)
}

// Intrinsic is the initial guess of a camera's internal parameters. It is a tagged variant over
// Model: the pinhole-family fields are only meaningful when Type.IsPinholeFamily() holds, which
// AsPinhole exposes.
type Intrinsic struct {
	Type   Model `json:"type"`
	Width  int   `json:"width"`
	Height int   `json:"height"`

	FocalLengthPix float64   `json:"focal_length_px"`
	PrincipalPoint r2.Point  `json:"principal_point"`
	Distortion     []float64 `json:"distortion_params"`

	// InitialFocalLengthPix is the focal length derived from metadata, or -1.
	InitialFocalLengthPix float64  `json:"initial_focal_length_px"`
	SerialNumber          string   `json:"serial_number"`
	InitializationMode    InitMode `json:"initialization_mode"`
}

// Pinhole is the pinhole-family view of an intrinsic.
type Pinhole struct {
	intrinsic *Intrinsic
}

// NewPinhole returns a pinhole-family intrinsic of the given model with zeroed distortion.
func NewPinhole(model Model, width, height int, focalLengthPix, ppx, ppy float64) (*Intrinsic, error) {
	if !model.IsPinholeFamily() {
		return nil, errors.Errorf("%q is not a pinhole camera model", model)
	}
	return &Intrinsic{
		Type:                  model,
		Width:                 width,
		Height:                height,
		FocalLengthPix:        focalLengthPix,
		PrincipalPoint:        r2.Point{X: ppx, Y: ppy},
		Distortion:            make([]float64, model.DistortionParamCount()),
		InitialFocalLengthPix: -1,
		InitializationMode:    InitFromDefaultFieldOfView,
	}, nil
}

// AsPinhole returns the pinhole-family accessors of the intrinsic, if its model has them.
func (intr *Intrinsic) AsPinhole() (Pinhole, bool) {
	if intr == nil || !intr.Type.IsPinholeFamily() {
		return Pinhole{}, false
	}
	return Pinhole{intrinsic: intr}, true
}

// FocalLengthPix returns the focal length in pixels.
func (p Pinhole) FocalLengthPix() float64 {
	return p.intrinsic.FocalLengthPix
}

// PrincipalPoint returns the principal point in pixels.
func (p Pinhole) PrincipalPoint() r2.Point {
	return p.intrinsic.PrincipalPoint
}

// IsInitialized reports whether the focal length is known.
func (p Pinhole) IsInitialized() bool {
	return p.intrinsic.FocalLengthPix > 0
}

// IsComplete reports whether the intrinsic is a pinhole-family model with a positive focal length.
func (intr *Intrinsic) IsComplete() bool {
	pinhole, ok := intr.AsPinhole()
	return ok && pinhole.IsInitialized()
}

// CheckValid checks the intrinsic can be used for reconstruction.
func (intr *Intrinsic) CheckValid() error {
	if intr == nil {
		return NewNoIntrinsicsError("intrinsics do not exist")
	}
	if !intr.Type.IsPinholeFamily() {
		return NewNoIntrinsicsError(fmt.Sprintf("unsupported camera model %q", intr.Type))
	}
	if intr.Width <= 0 || intr.Height <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("invalid size (%d, %d)", intr.Width, intr.Height))
	}
	if intr.FocalLengthPix <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("invalid focal length %v", intr.FocalLengthPix))
	}
	if n := intr.Type.DistortionParamCount(); len(intr.Distortion) != n {
		return NewNoIntrinsicsError(fmt.Sprintf("%q expects %d distortion parameters, got %d", intr.Type, n, len(intr.Distortion)))
	}
	return nil
}

// signature holds the fields that define an intrinsic's identity. The initialization mode is
// bookkeeping and does not take part.
type signature struct {
	Type           Model
	Width          int
	Height         int
	FocalLengthPix float64
	PrincipalPoint [2]float64
	Distortion     []float64
	SerialNumber   string
}

// HashValue returns a content hash of the intrinsic's defining parameters: two intrinsics hash
// equal iff their model, size, focal length, principal point, distortion and serial number are
// equal. The value is never math.MaxUint64, which callers use as "undefined".
func (intr *Intrinsic) HashValue() (uint64, error) {
	hash, err := hashstructure.Hash(signature{
		Type:           intr.Type,
		Width:          intr.Width,
		Height:         intr.Height,
		FocalLengthPix: intr.FocalLengthPix,
		PrincipalPoint: [2]float64{intr.PrincipalPoint.X, intr.PrincipalPoint.Y},
		Distortion:     intr.Distortion,
		SerialNumber:   intr.SerialNumber,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, errors.Wrap(err, "cannot hash intrinsic")
	}
	if hash == math.MaxUint64 {
		hash--
	}
	return hash, nil
}
