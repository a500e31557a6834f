package camerainit

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"go.viam.com/camerainit/camera"
	"go.viam.com/camerainit/sfm"
)

// IDGenerator hands out intrinsic identities for views that never share an intrinsic.
type IDGenerator interface {
	NextID() sfm.Index
}

type counterGenerator struct {
	next *atomic.Uint64
}

// NewCounterGenerator returns a generator counting up from start.
func NewCounterGenerator(start sfm.Index) IDGenerator {
	return &counterGenerator{next: atomic.NewUint64(uint64(start))}
}

func (gen *counterGenerator) NextID() sfm.Index {
	id := sfm.Index(gen.next.Inc() - 1)
	if id == sfm.UndefinedIndex {
		return gen.NextID()
	}
	return id
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a generator of random identities.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NextID() sfm.Index {
	for {
		u := uuid.New()
		if id := sfm.Index(binary.BigEndian.Uint64(u[:8])); id.IsDefined() {
			return id
		}
	}
}

// GroupingPolicy decides which views share an intrinsic.
type GroupingPolicy struct {
	Mode GroupMode
	IDs  IDGenerator
}

// NoMetadataRigSerial is the serial number given to a rig camera whose images have no metadata.
func NoMetadataRigSerial(rigID, subPoseID sfm.Index) string {
	return fmt.Sprintf("no_metadata_rig_%s_%s", rigID, subPoseID)
}

// OverrideSerial sets the serial number of the intrinsic of a view without camera metadata. Rig
// cameras are grouped by sub-pose in every mode. Other views are grouped by folder in
// GroupByMetadataOrFolder mode and get an intrinsic of their own in GroupByMetadata mode.
func (p GroupingPolicy) OverrideSerial(view *sfm.View, rig *RigInfo, intr *camera.Intrinsic) {
	if view.HasMakeOrModel() {
		return
	}
	switch p.Mode {
	case GroupByMetadataOrFolder:
		intr.SerialNumber = filepath.Dir(view.ImagePath)
	case GroupByMetadata:
		intr.SerialNumber = view.ImagePath
	}
	switch {
	case rig != nil:
		intr.SerialNumber = NoMetadataRigSerial(rig.RigID, rig.SubPoseID)
	case view.IsPartOfRig():
		intr.SerialNumber = NoMetadataRigSerial(view.RigID, view.SubPoseID)
	}
}

// AssignID returns the intrinsic identity of a view. inputID is the identity the view came with,
// hash the content hash of its built intrinsic, and taken reports identities already in use.
func (p GroupingPolicy) AssignID(inputID sfm.Index, hash uint64, taken func(sfm.Index) bool) sfm.Index {
	if p.Mode == GroupNever {
		for {
			if id := p.IDs.NextID(); !taken(id) {
				return id
			}
		}
	}
	if inputID.IsDefined() {
		return inputID
	}
	return sfm.Index(hash)
}
