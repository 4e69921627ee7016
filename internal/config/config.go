// Package config holds the printer constants and the colour palette.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/printplate/pkg/estimate"
	"github.com/philipparndt/printplate/pkg/placement"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation
var ErrInvalid = errors.New("invalid configuration")

// Config holds the constants used for estimating and placing models.
// Values are fixed for the lifetime of a plate.
type Config struct {
	LayerHeight  float64 `yaml:"layer_height"`  // mm
	Infill       float64 `yaml:"infill"`        // fraction in (0, 1]
	TimePerArea  float64 `yaml:"time_per_area"` // minutes per mm² of infilled area
	BuildVolume  float64 `yaml:"build_volume"`  // build cube edge, mm
	HourlyRate   float64 `yaml:"hourly_rate"`   // charged per started 15 minutes
	Currency     string  `yaml:"currency"`
	DefaultColor string  `yaml:"default_color,omitempty"` // empty picks a random colour
	Palette      Palette `yaml:"palette"`
}

// Default returns the built-in configuration
func Default() Config {
	s := estimate.DefaultSettings()
	return Config{
		LayerHeight: s.LayerHeight,
		Infill:      s.Infill,
		TimePerArea: s.TimePerArea,
		BuildVolume: 180,
		HourlyRate:  0.5,
		Currency:    "$",
		Palette:     DefaultPalette(),
	}
}

// Estimator returns the estimator settings of this configuration
func (c Config) Estimator() estimate.Settings {
	return estimate.Settings{
		LayerHeight: c.LayerHeight,
		Infill:      c.Infill,
		TimePerArea: c.TimePerArea,
	}
}

// Placement returns the placement policy for the build volume
func (c Config) Placement() placement.Policy {
	return placement.NewPolicy(c.BuildVolume)
}

// Validate checks all values
func (c Config) Validate() error {
	if err := c.Estimator().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.BuildVolume <= 0 {
		return fmt.Errorf("%w: build volume must be > 0, got %v", ErrInvalid, c.BuildVolume)
	}
	if c.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must be >= 0, got %v", ErrInvalid, c.HourlyRate)
	}
	if err := c.Palette.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.DefaultColor != "" && !c.Palette.Has(c.DefaultColor) {
		return fmt.Errorf("%w: default colour %q is not in the palette", ErrInvalid, c.DefaultColor)
	}
	return nil
}

// DefaultDir returns the default directory for configuration, ~/.printplate
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".printplate")
}

// DefaultPath returns the default configuration file path
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads a configuration file. A missing file yields Default() without
// error. Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
