// Package config defines the configuration of a camera initialization run.
package config

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/camerainit/camerainit"
	"go.viam.com/camerainit/logging"
)

// DefaultOutput is where the initialized scene is written when no output is configured.
const DefaultOutput = "cameraInit.sfm"

// A Config describes the inputs, output and options of a run.
type Config struct {
	// Input is a scene file to complete. Exactly one of Input and ImageFolder is required.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`
	// ImageFolder is a folder of images to build the scene from.
	ImageFolder    string `json:"imageFolder,omitempty" yaml:"imageFolder,omitempty"`
	SensorDatabase string `json:"sensorDatabase" yaml:"sensorDatabase"`
	Output         string `json:"output" yaml:"output"`

	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFile  string `json:"logFile,omitempty" yaml:"logFile,omitempty"`

	camerainit.Options `yaml:",inline"`

	ConfigFilePath string `json:"-" yaml:"-"`
}

// New returns a config holding the defaults.
func New() *Config {
	return &Config{
		Output:   DefaultOutput,
		LogLevel: logging.INFO.String(),
		Options:  camerainit.DefaultOptions(),
	}
}

// Ensure ensures all parts of the config are valid.
func (c *Config) Ensure() error {
	switch {
	case c.Input == "" && c.ImageFolder == "":
		return utils.NewConfigValidationError("input", errors.New("one of input or imageFolder is required"))
	case c.Input != "" && c.ImageFolder != "":
		return utils.NewConfigValidationError("input", errors.New("input and imageFolder cannot be combined"))
	}
	if c.SensorDatabase == "" {
		return utils.NewConfigValidationFieldRequiredError("config", "sensorDatabase")
	}
	if c.Output == "" {
		return utils.NewConfigValidationFieldRequiredError("config", "output")
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			return utils.NewConfigValidationError("logLevel", err)
		}
	}
	return c.Options.Validate()
}
