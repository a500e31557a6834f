package camerainit

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/camerainit/sfm"
)

// RigFolderName is the folder holding one sub-folder per rig camera: .../rig/<subPose>/<frame>.<ext>.
const RigFolderName = "rig"

// RigInfo places a view within a rig.
type RigInfo struct {
	RigID     sfm.Index
	SubPoseID sfm.Index
	FrameID   sfm.Index
}

// DetectRig recognizes images laid out as .../rig/<subPose>/<frame>.<ext>. It returns false for
// any other layout, and ErrInvalidRigPath when the sub-pose or frame names are not numbers.
func DetectRig(imagePath string) (RigInfo, bool, error) {
	normalized := path.Clean(strings.ReplaceAll(imagePath, `\`, "/"))
	subPoseDir := path.Dir(normalized)
	rigDir := path.Dir(subPoseDir)
	if path.Base(rigDir) != RigFolderName {
		return RigInfo{}, false, nil
	}

	subPose, err := parseDecimal(path.Base(subPoseDir))
	if err != nil {
		return RigInfo{}, false, errors.Wrapf(ErrInvalidRigPath, "%q: sub-pose %v", imagePath, err)
	}
	fileName := path.Base(normalized)
	frame, err := parseDecimal(strings.TrimSuffix(fileName, path.Ext(fileName)))
	if err != nil {
		return RigInfo{}, false, errors.Wrapf(ErrInvalidRigPath, "%q: frame %v", imagePath, err)
	}
	return RigInfo{RigID: RigID(rigDir), SubPoseID: subPose, FrameID: frame}, true, nil
}

// RigID is the identity of the rig rooted at rigDir. It only depends on the path text, with
// either separator, so it is the same on every platform and run.
func RigID(rigDir string) sfm.Index {
	id := sfm.Index(xxhash.Sum64String(path.Clean(strings.ReplaceAll(rigDir, `\`, "/"))))
	if id == sfm.UndefinedIndex {
		id--
	}
	return id
}

func parseDecimal(s string) (sfm.Index, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, errors.Errorf("%q is not a number", s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return sfm.Index(n), nil
}

// RigObservations counts the views seen for each sub-pose of each rig.
type RigObservations map[sfm.Index]map[sfm.Index]int

// Observe records one view of a rig's sub-pose.
func (obs RigObservations) Observe(info RigInfo) {
	subPoses, ok := obs[info.RigID]
	if !ok {
		subPoses = map[sfm.Index]int{}
		obs[info.RigID] = subPoses
	}
	subPoses[info.SubPoseID]++
}

// ValidateRigs checks that each observed rig has sub-poses numbered 0 to n-1 and the same number of
// views for every sub-pose, and returns the rigs. Rigs are checked in id order.
func ValidateRigs(obs RigObservations) (map[sfm.Index]*sfm.Rig, error) {
	rigs := make(map[sfm.Index]*sfm.Rig, len(obs))
	rigIDs := lo.Keys(obs)
	slices.Sort(rigIDs)
	for _, rigID := range rigIDs {
		subPoses := obs[rigID]
		if len(subPoses) == 0 {
			continue
		}
		subPoseIDs := lo.Keys(subPoses)
		slices.Sort(subPoseIDs)
		nbSubPoses := len(subPoseIDs)
		nbPoses := subPoses[subPoseIDs[0]]
		for _, subPoseID := range subPoseIDs {
			if subPoseID >= sfm.Index(nbSubPoses) {
				return nil, errors.Wrapf(ErrInvalidRigStructure,
					"rig %s: sub-pose %s is out of range for %d sub-poses", rigID, subPoseID, nbSubPoses)
			}
			if count := subPoses[subPoseID]; count != nbPoses {
				return nil, errors.Wrapf(ErrInvalidRigStructure,
					"rig %s: sub-pose %s has %d poses, expected %d", rigID, subPoseID, count, nbPoses)
			}
		}
		rigs[rigID] = &sfm.Rig{NbSubPoses: nbSubPoses}
	}
	return rigs, nil
}
