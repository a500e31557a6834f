package camerainit

import (
	"testing"

	"go.viam.com/test"
)

func TestEstimateFrom35mmRatioOnly(t *testing.T) {
	// A 3:2 image has the proportions of a 35mm frame.
	sensorWidth, focalLength, ok := EstimateFrom35mm(-1, -1, 35, 1.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sensorWidth, test.ShouldAlmostEqual, 36, 1e-9)
	test.That(t, focalLength, test.ShouldAlmostEqual, 35, 1e-9)

	sensorWidth, focalLength, ok = EstimateFrom35mm(-1, -1, 50, 4.0/3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sensorWidth, test.ShouldAlmostEqual, diag35mm*0.8, 1e-9)
	test.That(t, focalLength, test.ShouldAlmostEqual, sensorWidth*50/36, 1e-9)
}

func TestEstimateFrom35mmRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name        string
		sensorWidth float64
		focal35mm   float64
		ratio       float64
	}{
		{"full frame", 36, 50, 1.5},
		{"aps-c", 23.5, 28, 1.5},
		{"compact", 6.17, 24, 4.0 / 3},
		{"portrait", 13.2, 70, 2.0 / 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// sensor width -> focal length
			sw, focal, ok := EstimateFrom35mm(tc.sensorWidth, -1, tc.focal35mm, tc.ratio)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, sw, test.ShouldEqual, tc.sensorWidth)
			test.That(t, focal, test.ShouldBeGreaterThan, 0)

			// focal length -> sensor width gives back the original
			sw, focalAgain, ok := EstimateFrom35mm(-1, focal, tc.focal35mm, tc.ratio)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, focalAgain, test.ShouldEqual, focal)
			test.That(t, sw, test.ShouldAlmostEqual, tc.sensorWidth, 1e-9)
		})
	}
}

func TestEstimateFrom35mmNoop(t *testing.T) {
	sw, focal, ok := EstimateFrom35mm(36, 50, 50, 1.5)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, sw, test.ShouldEqual, 36)
	test.That(t, focal, test.ShouldEqual, 50)

	_, _, ok = EstimateFrom35mm(-1, -1, -1, 1.5)
	test.That(t, ok, test.ShouldBeFalse)
	_, _, ok = EstimateFrom35mm(-1, -1, 35, 0)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestFocalLengthIn35mm(t *testing.T) {
	test.That(t, FocalLengthIn35mm(50, 36), test.ShouldEqual, 50)
	test.That(t, FocalLengthIn35mm(3, 6), test.ShouldEqual, 18)
	test.That(t, FocalLengthIn35mm(-1, 36), test.ShouldEqual, -1)
	test.That(t, FocalLengthIn35mm(50, -1), test.ShouldEqual, -1)
}
