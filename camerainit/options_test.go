package camerainit

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/camerainit/camera"
)

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	test.That(t, opts.Validate(), test.ShouldBeNil)
	test.That(t, opts.GroupCameraModel, test.ShouldEqual, GroupByMetadataOrFolder)
	test.That(t, opts.MinCompleteViews(), test.ShouldEqual, 2)
	opts.AllowSingleView = true
	test.That(t, opts.MinCompleteViews(), test.ShouldEqual, 1)

	defaults, err := opts.Defaults()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, defaults.FocalLengthPix, test.ShouldEqual, -1)
	test.That(t, defaults.FieldOfView, test.ShouldEqual, -1)
	test.That(t, defaults.PrincipalPoint, test.ShouldBeNil)
	test.That(t, defaults.Model, test.ShouldEqual, camera.Model(""))
}

func TestOptionsOverrides(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultIntrinsic = "1200;0;640;0;1200;360;0;0;1"
	opts.DefaultCameraModel = "Pinhole"
	defaults, err := opts.Defaults()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, defaults.FocalLengthPix, test.ShouldEqual, 1200)
	test.That(t, *defaults.PrincipalPoint, test.ShouldResemble, [2]float64{640, 360})
	test.That(t, defaults.Model, test.ShouldEqual, camera.PinholeModel)

	opts = DefaultOptions()
	opts.DefaultFieldOfView = 70
	defaults, err = opts.Defaults()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, defaults.FieldOfView, test.ShouldEqual, 70)
	test.That(t, defaults.FocalLengthPix, test.ShouldEqual, -1)
}

func TestOptionsInvalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Options)
		errStr string
	}{
		{
			"matrix and focal",
			func(o *Options) {
				o.DefaultIntrinsic = "1200;0;640;0;1200;360;0;0;1"
				o.DefaultFocalLengthPix = 1000
			},
			"only one of",
		},
		{
			"focal and field of view",
			func(o *Options) {
				o.DefaultFocalLengthPix = 1000
				o.DefaultFieldOfView = 60
			},
			"only one of",
		},
		{"malformed matrix", func(o *Options) { o.DefaultIntrinsic = "1200;0;640" }, "defaultIntrinsic"},
		{"non numeric matrix", func(o *Options) { o.DefaultIntrinsic = "f;0;640;0;f;360;0;0;1" }, "not a number"},
		{"unknown model", func(o *Options) { o.DefaultCameraModel = "spherical" }, "defaultCameraModel"},
		{"group mode", func(o *Options) { o.GroupCameraModel = 3 }, "groupCameraModel"},
		{"field of view", func(o *Options) { o.DefaultFieldOfView = 200 }, "below 180"},
		{"workers", func(o *Options) { o.Workers = -2 }, "workers"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			tc.modify(&opts)
			err := opts.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}

	opts := DefaultOptions()
	opts.DefaultCameraModel = "spherical"
	opts.GroupCameraModel = -1
	err := opts.Validate()
	test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "defaultCameraModel")
	test.That(t, err.Error(), test.ShouldContainSubstring, "groupCameraModel")
	_, isMultiError := err.(interface{ Errors() []error })
	test.That(t, isMultiError, test.ShouldBeFalse)
}
