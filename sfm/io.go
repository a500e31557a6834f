package sfm

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.viam.com/utils/artifact"

	"go.viam.com/camerainit/camera"
)

// FormatVersion is written to every saved scene.
var FormatVersion = [3]int{1, 2, 0}

type document struct {
	Version    [3]int            `json:"version"`
	Views      []json.RawMessage `json:"views"`
	Intrinsics []intrinsicEntry  `json:"intrinsics"`
	Rigs       []rigEntry        `json:"rigs,omitempty"`
}

type intrinsicEntry struct {
	IntrinsicID Index `json:"intrinsicId"`
	*camera.Intrinsic
}

type rigEntry struct {
	RigID Index `json:"rigId"`
	Rig
}

// Load reads a scene saved by Save.
func Load(path string) (*Data, error) {
	//nolint:gosec
	md, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read scene")
	}
	data, err := Unmarshal(md)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse scene %q", path)
	}
	return data, nil
}

// Unmarshal decodes a scene from its JSON form. Identities a view omits stay undefined.
func Unmarshal(md []byte) (*Data, error) {
	var doc document
	if err := json.Unmarshal(md, &doc); err != nil {
		return nil, err
	}
	data := NewData()
	for i, raw := range doc.Views {
		v := NewView(UndefinedIndex, "", 0, 0, nil)
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, errors.Wrapf(err, "view %d", i)
		}
		if !v.ViewID.IsDefined() {
			return nil, errors.Errorf("view %d (%q) has no id", i, v.ImagePath)
		}
		if _, ok := data.Views[v.ViewID]; ok {
			return nil, errors.Errorf("duplicate view id %s", v.ViewID)
		}
		if v.Metadata == nil {
			v.Metadata = map[string]string{}
		}
		data.AddView(v)
	}
	for _, entry := range doc.Intrinsics {
		if entry.Intrinsic == nil {
			continue
		}
		data.Intrinsics[entry.IntrinsicID] = entry.Intrinsic
	}
	for _, entry := range doc.Rigs {
		rig := entry.Rig
		data.Rigs[entry.RigID] = &rig
	}
	return data, nil
}

// Marshal encodes a scene as indented JSON, with views, intrinsics and rigs in id order.
func Marshal(data *Data) ([]byte, error) {
	doc := document{Version: FormatVersion}
	for _, id := range data.SortedViewIDs() {
		raw, err := json.Marshal(data.Views[id])
		if err != nil {
			return nil, err
		}
		doc.Views = append(doc.Views, raw)
	}
	for _, id := range data.SortedIntrinsicIDs() {
		doc.Intrinsics = append(doc.Intrinsics, intrinsicEntry{IntrinsicID: id, Intrinsic: data.Intrinsics[id]})
	}
	for _, id := range data.SortedRigIDs() {
		doc.Rigs = append(doc.Rigs, rigEntry{RigID: id, Rig: *data.Rigs[id]})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Save writes the scene to path atomically, creating its directory if needed.
func Save(data *Data, path string) error {
	md, err := Marshal(data)
	if err != nil {
		return errors.Wrap(err, "cannot encode scene")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "cannot create output directory")
	}
	return artifact.AtomicStore(path, bytes.NewReader(md), filepath.Base(path))
}
