package sfm

import (
	"strings"

	"github.com/spf13/cast"
)

// Metadata keys understood by View. Lookups ignore case, and each accessor tries its keys in order.
var (
	MakeKeys              = []string{"Make", "cameraMake"}
	ModelKeys             = []string{"Model", "cameraModel"}
	FocalLengthKeys       = []string{"Exif:FocalLength", "FocalLength"}
	FocalLengthIn35mmKeys = []string{"Exif:FocalLengthIn35mmFilm", "FocalLengthIn35mmFilm"}
	BodySerialNumberKeys  = []string{"Exif:BodySerialNumber", "BodySerialNumber", "SerialNumber"}
	LensSerialNumberKeys  = []string{"Exif:LensSerialNumber", "LensSerialNumber"}
)

// View is one input image.
type View struct {
	ViewID      Index `json:"viewId"`
	IntrinsicID Index `json:"intrinsicId"`
	RigID       Index `json:"rigId"`
	SubPoseID   Index `json:"subPoseId"`
	FrameID     Index `json:"frameId"`

	ImagePath string            `json:"path"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewView returns a view with every identity other than its own left undefined.
func NewView(viewID Index, imagePath string, width, height int, metadata map[string]string) *View {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &View{
		ViewID:      viewID,
		IntrinsicID: UndefinedIndex,
		RigID:       UndefinedIndex,
		SubPoseID:   UndefinedIndex,
		FrameID:     UndefinedIndex,
		ImagePath:   imagePath,
		Width:       width,
		Height:      height,
		Metadata:    metadata,
	}
}

// IsPartOfRig reports whether the view was taken by one camera of a rig.
func (v *View) IsPartOfRig() bool {
	return v.RigID.IsDefined() && v.SubPoseID.IsDefined()
}

// SetRig records the view as a capture of the given sub-pose of a rig.
func (v *View) SetRig(rigID, subPoseID, frameID Index) {
	v.RigID = rigID
	v.SubPoseID = subPoseID
	v.FrameID = frameID
}

// GetMetadata returns the first non-empty value among the given keys, ignoring case.
func (v *View) GetMetadata(keys ...string) string {
	for _, key := range keys {
		if value, ok := v.Metadata[key]; ok && value != "" {
			return strings.TrimSpace(value)
		}
		for k, value := range v.Metadata {
			if value != "" && strings.EqualFold(k, key) {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// HasMetadata reports whether any of the keys has a non-empty value.
func (v *View) HasMetadata(keys ...string) bool {
	return v.GetMetadata(keys...) != ""
}

// Make returns the camera make, or "".
func (v *View) Make() string {
	return v.GetMetadata(MakeKeys...)
}

// Model returns the camera model, or "".
func (v *View) Model() string {
	return v.GetMetadata(ModelKeys...)
}

// HasMakeOrModel reports whether the image says anything about the camera that took it.
func (v *View) HasMakeOrModel() bool {
	return v.HasMetadata(MakeKeys...) || v.HasMetadata(ModelKeys...)
}

// FocalLength returns the focal length in millimeters, or -1 if it is missing or not a number.
func (v *View) FocalLength() float64 {
	focal, err := cast.ToFloat64E(v.GetMetadata(FocalLengthKeys...))
	if err != nil || focal <= 0 {
		return -1
	}
	return focal
}

// FocalLengthIn35mm returns the 35mm-equivalent focal length, if the image has a usable one.
func (v *View) FocalLengthIn35mm() (float64, bool) {
	raw := v.GetMetadata(FocalLengthIn35mmKeys...)
	if raw == "" {
		return 0, false
	}
	focal, err := cast.ToFloat64E(raw)
	if err != nil || focal <= 0 {
		return 0, false
	}
	return focal, true
}

// BodySerialNumber returns the camera body serial number, or "".
func (v *View) BodySerialNumber() string {
	return v.GetMetadata(BodySerialNumberKeys...)
}

// LensSerialNumber returns the lens serial number, or "".
func (v *View) LensSerialNumber() string {
	return v.GetMetadata(LensSerialNumberKeys...)
}

// AspectRatio returns width / height, or 0 for an image without dimensions.
func (v *View) AspectRatio() float64 {
	if v.Height <= 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}
