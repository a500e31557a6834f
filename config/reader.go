package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Read reads a config from the given file, expanding environment variables first. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. Unset values keep their defaults.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg := New()
	cfg.ConfigFilePath = originalPath

	switch strings.ToLower(filepath.Ext(originalPath)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to decode Config from yaml")
		}
	default:
		if err := json.NewDecoder(r).Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to decode Config from json")
		}
	}
	return cfg, nil
}
