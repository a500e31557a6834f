package camerainit

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/sfm"
)

func TestCounterGenerator(t *testing.T) {
	gen := NewCounterGenerator(10)
	test.That(t, gen.NextID(), test.ShouldEqual, sfm.Index(10))
	test.That(t, gen.NextID(), test.ShouldEqual, sfm.Index(11))

	gen = NewCounterGenerator(sfm.UndefinedIndex)
	test.That(t, gen.NextID(), test.ShouldEqual, sfm.Index(0))
}

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := map[sfm.Index]struct{}{}
	for i := 0; i < 100; i++ {
		id := gen.NextID()
		test.That(t, id.IsDefined(), test.ShouldBeTrue)
		seen[id] = struct{}{}
	}
	test.That(t, seen, test.ShouldHaveLength, 100)
}

func TestOverrideSerial(t *testing.T) {
	newIntrinsic := func() *camera.Intrinsic {
		intr, err := camera.NewPinhole(camera.Radial3Model, 640, 480, 500, 320, 240)
		test.That(t, err, test.ShouldBeNil)
		intr.SerialNumber = "body"
		return intr
	}
	withMetadata := sfm.NewView(1, "/seq/a/0001.jpg", 640, 480, map[string]string{"Make": "GoPro"})
	bare := sfm.NewView(2, "/seq/a/0002.jpg", 640, 480, nil)
	rig := &RigInfo{RigID: 42, SubPoseID: 1, FrameID: 3}

	byFolder := GroupingPolicy{Mode: GroupByMetadataOrFolder}
	byMetadata := GroupingPolicy{Mode: GroupByMetadata}

	intr := newIntrinsic()
	byFolder.OverrideSerial(withMetadata, nil, intr)
	test.That(t, intr.SerialNumber, test.ShouldEqual, "body")

	intr = newIntrinsic()
	byFolder.OverrideSerial(bare, nil, intr)
	test.That(t, intr.SerialNumber, test.ShouldEqual, filepath.Dir("/seq/a/0002.jpg"))

	intr = newIntrinsic()
	byMetadata.OverrideSerial(bare, nil, intr)
	test.That(t, intr.SerialNumber, test.ShouldEqual, "/seq/a/0002.jpg")

	intr = newIntrinsic()
	GroupingPolicy{Mode: GroupNever}.OverrideSerial(bare, nil, intr)
	test.That(t, intr.SerialNumber, test.ShouldEqual, "body")

	for _, policy := range []GroupingPolicy{{Mode: GroupNever}, byMetadata, byFolder} {
		intr = newIntrinsic()
		policy.OverrideSerial(bare, rig, intr)
		test.That(t, intr.SerialNumber, test.ShouldEqual, "no_metadata_rig_42_1")
	}

	tagged := sfm.NewView(3, "/seq/a/0003.jpg", 640, 480, nil)
	tagged.SetRig(7, 0, 0)
	intr = newIntrinsic()
	byMetadata.OverrideSerial(tagged, nil, intr)
	test.That(t, intr.SerialNumber, test.ShouldEqual, NoMetadataRigSerial(7, 0))
}

func TestAssignID(t *testing.T) {
	none := func(sfm.Index) bool { return false }

	shared := GroupingPolicy{Mode: GroupByMetadata}
	test.That(t, shared.AssignID(sfm.UndefinedIndex, 1234, none), test.ShouldEqual, sfm.Index(1234))
	test.That(t, shared.AssignID(9, 1234, none), test.ShouldEqual, sfm.Index(9))

	never := GroupingPolicy{Mode: GroupNever, IDs: NewCounterGenerator(0)}
	taken := func(id sfm.Index) bool { return id < 3 }
	test.That(t, never.AssignID(9, 1234, taken), test.ShouldEqual, sfm.Index(3))
	test.That(t, never.AssignID(sfm.UndefinedIndex, 1234, taken), test.ShouldEqual, sfm.Index(4))
}
