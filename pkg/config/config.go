// Package config provides configuration loading and management for variogrest.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Grid parameters
	Grid struct {
		// Dx, Dy and Dz are the physical cell sizes in meters
		Dx float64 `yaml:"dx"`
		Dy float64 `yaml:"dy"`
		Dz float64 `yaml:"dz"`
	} `yaml:"grid"`

	// Estimation parameters
	Estimation struct {
		// Families lists the parametric variogram families to fit
		Families []string `yaml:"families"`

		// SigmaWeight controls the distance-based masking of the
		// empirical map during fitting, in cells. Zero disables it.
		SigmaWeight float64 `yaml:"sigmaWeight"`
	} `yaml:"estimation"`

	// Output parameters
	Output struct {
		// Dir is the directory for summary files and QC imagery
		Dir string `yaml:"dir"`

		// SaveImages determines whether to render QC imagery
		SaveImages bool `yaml:"saveImages"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default grid parameters
	cfg.Grid.Dx = 1.0
	cfg.Grid.Dy = 1.0
	cfg.Grid.Dz = 1.0

	// Set default estimation parameters
	cfg.Estimation.Families = []string{"exponential", "spherical", "gaussian", "general_exponential"}
	cfg.Estimation.SigmaWeight = 0.0

	// Set default output parameters
	cfg.Output.Dir = "variogrest_output"
	cfg.Output.SaveImages = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig reads a YAML configuration file over the defaults. A
// missing file is not an error; the defaults are returned as-is.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML, creating the parent
// directory when needed.
func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("config: creating directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", configPath, err)
	}
	return nil
}

// CreateDefaultConfigFile writes the default configuration to the given
// path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
