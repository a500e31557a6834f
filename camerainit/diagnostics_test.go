package camerainit

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/logging"
	"go.viam.com/camerainit/sensordb"
	"go.viam.com/camerainit/sfm"
)

func TestDiagnosticsMerge(t *testing.T) {
	diag := NewDiagnostics()
	nikon := SensorKey{Make: "NIKON", Model: "d750"}
	pentax := SensorKey{Make: "Pentax", Model: "K-1"}
	ds := sensordb.Datasheet{Brand: "Nikon", Model: "D750", SensorWidth: 35.9}

	outcomes := []ViewOutcome{
		{ImagePath: "/a.jpg", UnsureSensor: &nikon, UnsureMatch: ds, Complete: true},
		{ImagePath: "/b.jpg", UnsureSensor: &nikon, UnsureMatch: ds, Complete: true},
		{ImagePath: "/c.jpg", UnknownSensor: &pentax},
		{ImagePath: "/d.jpg", UnknownSensor: &pentax},
		{ImagePath: "/e.jpg", NoMetadata: true, Focal35mm: &Focal35mmEstimate{SensorWidth: 36, FocalLength: 35}, Complete: true},
		{ImagePath: "/rig/x/1.jpg", InvalidRigPath: ErrInvalidRigPath},
		{ImagePath: "/rig/0/1.jpg", Rig: &RigInfo{RigID: 3, SubPoseID: 0, FrameID: 1}},
	}
	for i := range outcomes {
		diag.Merge(&outcomes[i])
	}

	test.That(t, diag.CompleteViewCount, test.ShouldEqual, 3)
	test.That(t, diag.UnsureSensors[nikon], test.ShouldResemble, UnsureSensor{ImagePath: "/a.jpg", Datasheet: ds})
	test.That(t, diag.UnknownSensors[pentax], test.ShouldEqual, "/c.jpg")
	test.That(t, diag.NoMetadataImages, test.ShouldResemble, []string{"/e.jpg"})
	test.That(t, diag.Focal35mmEstimates["/e.jpg"].FocalLength, test.ShouldEqual, 35)
	test.That(t, diag.InvalidRigPaths, test.ShouldResemble, []string{"/rig/x/1.jpg"})
	test.That(t, diag.RigObservations[3][0], test.ShouldEqual, 1)
}

func TestReduce(t *testing.T) {
	data := sfm.NewData()
	for i := 1; i <= 4; i++ {
		data.AddView(sfm.NewView(sfm.Index(i), "/img.jpg", 640, 480, nil))
	}
	stale, err := camera.NewPinhole(camera.Radial3Model, 640, 480, -1, 320, 240)
	test.That(t, err, test.ShouldBeNil)
	data.Intrinsics[50] = stale
	data.Views[3].IntrinsicID = 50
	data.Views[4].IntrinsicID = 60

	first, err := camera.NewPinhole(camera.Radial3Model, 640, 480, 500, 320, 240)
	test.That(t, err, test.ShouldBeNil)
	second, err := camera.NewPinhole(camera.Radial3Model, 640, 480, 500, 320, 240)
	test.That(t, err, test.ShouldBeNil)
	second.SerialNumber = "second"
	rebuilt, err := camera.NewPinhole(camera.Radial3Model, 640, 480, 600, 320, 240)
	test.That(t, err, test.ShouldBeNil)

	outcomes := []ViewOutcome{
		{ViewID: 1, Intrinsic: first, IntrinsicHash: 7, Complete: true},
		{ViewID: 2, Intrinsic: second, IntrinsicHash: 7, Complete: true},
		{ViewID: 3, Intrinsic: rebuilt, IntrinsicHash: 8, Complete: true, Rig: &RigInfo{RigID: 9, SubPoseID: 1, FrameID: 2}},
		{ViewID: 4, Unresolved: true, UnknownSensor: &SensorKey{Make: "Pentax"}},
	}
	diag, err := Reduce(data, outcomes, GroupingPolicy{Mode: GroupByMetadata})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, data.Views[1].IntrinsicID, test.ShouldEqual, sfm.Index(7))
	test.That(t, data.Views[2].IntrinsicID, test.ShouldEqual, sfm.Index(7))
	test.That(t, data.Intrinsics[7], test.ShouldEqual, first)
	// the uninitialized intrinsic the view came with is replaced
	test.That(t, data.Views[3].IntrinsicID, test.ShouldEqual, sfm.Index(50))
	test.That(t, data.Intrinsics[50], test.ShouldEqual, rebuilt)
	test.That(t, data.Views[3].IsPartOfRig(), test.ShouldBeTrue)
	test.That(t, data.Views[3].FrameID, test.ShouldEqual, sfm.Index(2))
	test.That(t, data.Views[4].IntrinsicID, test.ShouldEqual, sfm.UndefinedIndex)

	test.That(t, diag.ViewCount, test.ShouldEqual, 4)
	test.That(t, diag.IntrinsicCount, test.ShouldEqual, 2)
	test.That(t, diag.CompleteViewCount, test.ShouldEqual, 3)

	_, err = Reduce(data, []ViewOutcome{{ViewID: 99}}, GroupingPolicy{Mode: GroupByMetadata})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDiagnosticsCheck(t *testing.T) {
	opts := DefaultOptions()

	diag := NewDiagnostics()
	diag.CompleteViewCount = 2
	test.That(t, diag.Check(opts), test.ShouldBeNil)

	diag.CompleteViewCount = 1
	test.That(t, errors.Is(diag.Check(opts), ErrInsufficientCompleteViews), test.ShouldBeTrue)
	single := opts
	single.AllowSingleView = true
	test.That(t, diag.Check(single), test.ShouldBeNil)

	diag.CompleteViewCount = 0
	test.That(t, errors.Is(diag.Check(single), ErrInsufficientCompleteViews), test.ShouldBeTrue)

	diag.CompleteViewCount = 5
	diag.UnknownSensors[SensorKey{Make: "Pentax", Model: "K-1"}] = "/a.jpg"
	test.That(t, errors.Is(diag.Check(opts), ErrUnknownSensor), test.ShouldBeTrue)

	incomplete := opts
	incomplete.AllowIncompleteOutput = true
	diag.CompleteViewCount = 0
	test.That(t, diag.Check(incomplete), test.ShouldBeNil)
}

func TestDiagnosticsReport(t *testing.T) {
	diag := NewDiagnostics()
	diag.ViewCount = 3
	diag.IntrinsicCount = 1
	diag.CompleteViewCount = 2
	diag.UnsureSensors[SensorKey{Make: "NIKON", Model: "d750"}] = UnsureSensor{
		ImagePath: "/images/a.jpg",
		Datasheet: sensordb.Datasheet{Brand: "Nikon", Model: "D750", SensorWidth: 35.9},
	}
	diag.UnknownSensors[SensorKey{Make: "Pentax", Model: "K-1"}] = "/images/b.jpg"
	diag.NoMetadataImages = []string{"/images/c.jpg"}
	diag.InvalidRigPaths = []string{"/images/rig/left/1.jpg"}

	logger, logs := logging.NewObservedTestLogger(t)
	diag.Log(logger)
	test.That(t, logs.FilterMessage("the camera found in the database is slightly different").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("sensor width not found in the database").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("invalid rig structure, used as single image").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("no metadata in images").Len(), test.ShouldEqual, 1)
	report := logs.FilterMessage("camera initialization report").All()
	test.That(t, report, test.ShouldHaveLength, 1)
	test.That(t, report[0].ContextMap()["initialized_views"], test.ShouldEqual, int64(2))

	rendered := diag.String()
	test.That(t, rendered, test.ShouldContainSubstring, "unsure match")
	test.That(t, rendered, test.ShouldContainSubstring, "Nikon D750 (35.9 mm)")
	test.That(t, rendered, test.ShouldContainSubstring, "Pentax")
	test.That(t, rendered, test.ShouldContainSubstring, "b.jpg")
}
