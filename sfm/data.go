package sfm

import (
	"slices"

	"github.com/samber/lo"

	"go.viam.com/camerainit/camera"
)

// Rig is an assembly of cameras capturing synchronized frames.
type Rig struct {
	NbSubPoses int `json:"nbSubPoses"`
}

// Data is a scene: views, the intrinsics they reference and the rigs they belong to.
type Data struct {
	Views      map[Index]*View
	Intrinsics map[Index]*camera.Intrinsic
	Rigs       map[Index]*Rig
}

// NewData returns an empty scene.
func NewData() *Data {
	return &Data{
		Views:      map[Index]*View{},
		Intrinsics: map[Index]*camera.Intrinsic{},
		Rigs:       map[Index]*Rig{},
	}
}

// AddView adds or replaces a view.
func (d *Data) AddView(v *View) {
	d.Views[v.ViewID] = v
}

// SortedViewIDs returns the view ids in increasing order; this is the order views are processed in.
func (d *Data) SortedViewIDs() []Index {
	ids := lo.Keys(d.Views)
	slices.Sort(ids)
	return ids
}

// SortedIntrinsicIDs returns the intrinsic ids in increasing order.
func (d *Data) SortedIntrinsicIDs() []Index {
	ids := lo.Keys(d.Intrinsics)
	slices.Sort(ids)
	return ids
}

// SortedRigIDs returns the rig ids in increasing order.
func (d *Data) SortedRigIDs() []Index {
	ids := lo.Keys(d.Rigs)
	slices.Sort(ids)
	return ids
}

// Intrinsic returns the intrinsic used by the view, or nil.
func (d *Data) Intrinsic(v *View) *camera.Intrinsic {
	if !v.IntrinsicID.IsDefined() {
		return nil
	}
	return d.Intrinsics[v.IntrinsicID]
}
