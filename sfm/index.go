// Package sfm holds the scene description shared by the reconstruction stages: the views, the
// camera intrinsics they use and the rigs they belong to.
package sfm

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Index identifies a view, an intrinsic, a rig, a sub-pose or a frame.
type Index uint64

// UndefinedIndex marks an identity that has not been assigned.
const UndefinedIndex = Index(math.MaxUint64)

// IsDefined reports whether the index has been assigned.
func (i Index) IsDefined() bool {
	return i != UndefinedIndex
}

func (i Index) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// MarshalJSON encodes the index as a decimal string, since JSON numbers cannot hold every uint64.
func (i Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (i *Index) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint64
		if numErr := json.Unmarshal(data, &n); numErr != nil {
			return errors.Errorf("invalid index %s", data)
		}
		*i = Index(n)
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid index %q", s)
	}
	*i = Index(n)
	return nil
}
