package camerainit

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/sfm"
)

func noDefaults() Defaults {
	return Defaults{FocalLengthPix: -1, FieldOfView: -1}
}

func TestSelectModel(t *testing.T) {
	canon := sfm.NewView(1, "a.jpg", 100, 100, map[string]string{"Make": "Canon", "Model": "EOS 5D"})
	custom := sfm.NewView(2, "b.jpg", 100, 100, map[string]string{"Make": "Custom", "Model": "fisheye1"})
	customUnknown := sfm.NewView(3, "c.jpg", 100, 100, map[string]string{"Make": "custom", "Model": "my lens"})

	withModel := noDefaults()
	withModel.Model = camera.BrownModel
	wide := noDefaults()
	wide.FieldOfView = 120

	for _, tc := range []struct {
		name        string
		view        *sfm.View
		focalIn35mm float64
		defaults    Defaults
		expected    camera.Model
	}{
		{"default", canon, 50, noDefaults(), camera.Radial3Model},
		{"unknown focal", canon, -1, noDefaults(), camera.Radial3Model},
		{"short lens", canon, 12, noDefaults(), camera.Fisheye4Model},
		{"wide field of view", canon, -1, wide, camera.Fisheye4Model},
		{"configured model", canon, 12, withModel, camera.BrownModel},
		{"custom make", custom, 50, withModel, camera.Fisheye1Model},
		{"custom make with unknown model", customUnknown, 50, noDefaults(), camera.Radial3Model},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, SelectModel(tc.view, tc.focalIn35mm, tc.defaults), test.ShouldEqual, tc.expected)
		})
	}
}

func TestBuildIntrinsicFromMetadata(t *testing.T) {
	view := sfm.NewView(1, "/images/a.jpg", 5760, 3840, map[string]string{
		"Make":                  "Canon",
		"Model":                 "EOS 5D",
		"Exif:BodySerialNumber": "0123",
		"Exif:LensSerialNumber": "L45",
	})
	intr, err := BuildIntrinsic(view, 50, 36, camera.InitComputedFromMetadata, noDefaults())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.Type, test.ShouldEqual, camera.Radial3Model)
	test.That(t, intr.FocalLengthPix, test.ShouldEqual, 8000)
	test.That(t, intr.InitialFocalLengthPix, test.ShouldEqual, 8000)
	test.That(t, intr.PrincipalPoint.X, test.ShouldEqual, 2880)
	test.That(t, intr.PrincipalPoint.Y, test.ShouldEqual, 1920)
	test.That(t, intr.Distortion, test.ShouldResemble, []float64{0, 0, 0})
	test.That(t, intr.SerialNumber, test.ShouldEqual, "0123L45")
	test.That(t, intr.InitializationMode, test.ShouldEqual, camera.InitComputedFromMetadata)
	test.That(t, intr.IsComplete(), test.ShouldBeTrue)
}

func TestBuildIntrinsicDefaults(t *testing.T) {
	view := sfm.NewView(1, "/images/a.jpg", 2000, 1000, map[string]string{"Make": "Canon", "Model": "EOS 5D"})

	focal := noDefaults()
	focal.FocalLengthPix = 1500
	intr, err := BuildIntrinsic(view, 50, 36, camera.InitComputedFromMetadata, focal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.FocalLengthPix, test.ShouldEqual, 1500)
	test.That(t, intr.InitialFocalLengthPix, test.ShouldAlmostEqual, 50*2000/36.0, 1e-9)
	test.That(t, intr.InitializationMode, test.ShouldEqual, camera.InitFromDefaultFieldOfView)

	fov := noDefaults()
	fov.FieldOfView = 90
	intr, err = BuildIntrinsic(view, -1, -1, camera.InitFromDefaultFieldOfView, fov)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.FocalLengthPix, test.ShouldAlmostEqual, 1000, 1e-9)
	test.That(t, intr.InitialFocalLengthPix, test.ShouldEqual, -1)
	test.That(t, intr.IsComplete(), test.ShouldBeTrue)

	k := noDefaults()
	k.FocalLengthPix = 1200
	k.PrincipalPoint = &[2]float64{990, 510}
	intr, err = BuildIntrinsic(view, -1, -1, camera.InitFromDefaultFieldOfView, k)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.FocalLengthPix, test.ShouldEqual, 1200)
	test.That(t, intr.PrincipalPoint.X, test.ShouldEqual, 990)
	test.That(t, intr.PrincipalPoint.Y, test.ShouldEqual, 510)
}

func TestBuildIntrinsicIncomplete(t *testing.T) {
	view := sfm.NewView(1, "/images/a.jpg", 640, 480, nil)
	intr, err := BuildIntrinsic(view, 4, -1, camera.InitFromDefaultFieldOfView, noDefaults())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.FocalLengthPix, test.ShouldEqual, -1)
	test.That(t, intr.IsComplete(), test.ShouldBeFalse)
	test.That(t, intr.InitializationMode, test.ShouldEqual, camera.InitFromDefaultFieldOfView)

	_, err = BuildIntrinsic(sfm.NewView(2, "/images/b.jpg", 0, 0, nil), 4, 6, camera.InitComputedFromMetadata, noDefaults())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildIntrinsicGoPro(t *testing.T) {
	view := sfm.NewView(1, "/images/gopro.jpg", 4000, 3000, map[string]string{"Make": "GoPro", "Model": "HERO5 Black"})
	intr, err := BuildIntrinsic(view, 3, 6.17, camera.InitComputedFromMetadata, noDefaults())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intr.Type, test.ShouldEqual, camera.Fisheye4Model)
	test.That(t, intr.Distortion, test.ShouldResemble, []float64{0.0524, 0.0094, -0.0037, -0.0004})
	test.That(t, intr.CheckValid(), test.ShouldBeNil)
}
