package camera

// InitMode records how an intrinsic's initial focal length was obtained.
type InitMode string

const (
	// InitFromDefaultFieldOfView means no metadata gave the focal length; it comes from the
	// configured defaults, if any.
	InitFromDefaultFieldOfView = InitMode("from_default_fov")
	// InitComputedFromMetadata means the focal length was computed from the metadata focal
	// length and a sensor width found in the sensor table.
	InitComputedFromMetadata = InitMode("computed_from_metadata")
	// InitEstimatedFromMetadata means the 35mm-equivalent focal length metadata was needed to
	// estimate the sensor width or the focal length.
	InitEstimatedFromMetadata = InitMode("estimated_from_metadata")
)
