package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var errMissingPalette = errors.New("a palette catalog is required (--palette or palette: in the job file)")

var configValidate = validator.New()

// JobConfig is a pattern job as described in a YAML file. Flags given on the
// command line override the file.
type JobConfig struct {
	Palette     string `yaml:"palette" validate:"required"`
	Brand       string `yaml:"brand"`
	Width       int    `yaml:"width" validate:"gte=0"`
	MaxColors   int    `yaml:"max_colors" validate:"gt=0"`
	Workers     int    `yaml:"workers" validate:"gte=0"`
	Seed        int64  `yaml:"seed"`
	Output      string `yaml:"output" validate:"required"`
	Report      string `yaml:"report"`
	MetricsFile string `yaml:"metrics_file"`
}

// Validate checks the job configuration.
func (c *JobConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}
	return nil
}

func loadConfig(path string, cfg *JobConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse job config %s: %w", path, err)
	}
	return nil
}
