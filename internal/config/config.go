// Package config provides configuration management for the CLI: JSON file
// defaults overridden by OCPI_COST_* environment variables.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"ocpi-cost/internal/errors"
	"ocpi-cost/internal/logging"
)

// Config is the main application configuration.
type Config struct {
	// Version is the configuration version.
	Version string `json:"version" ignored:"true"`

	// Pricing contains pricing configuration.
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration.
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration.
	Logging logging.Config `json:"logging" ignored:"true"`
}

// PricingConfig contains pricing-related settings.
type PricingConfig struct {
	// DefaultZone is the IANA zone used when none is given on the command
	// line and none can be detected from the CDR.
	DefaultZone string `json:"default_zone" envconfig:"ZONE"`

	// DetectZone enables country-code based zone detection.
	DetectZone bool `json:"detect_zone" envconfig:"DETECT_ZONE"`

	// ToleranceScale is the decimal scale at which validate compares
	// computed totals to reported totals (2 = currency minor units).
	ToleranceScale int32 `json:"tolerance_scale" envconfig:"TOLERANCE_SCALE"`
}

// OutputConfig contains output-related settings.
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json).
	DefaultFormat string `json:"default_format" envconfig:"FORMAT"`

	// NoColor disables ANSI colors in table output.
	NoColor bool `json:"no_color" envconfig:"NO_COLOR"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultZone:    "Europe/Amsterdam",
			DetectZone:     true,
			ToleranceScale: 2,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath is the configuration file looked up when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ocpi-cost.json")
}

// Load reads configuration from a file, falling back to defaults when the
// file does not exist, then applies OCPI_COST_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(errors.KindConfig, "parsing config file", err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return nil, errors.Wrap(errors.KindConfig, "reading config file", err)
		}
	}

	if err := envconfig.Process("ocpi_cost", cfg); err != nil {
		return nil, errors.Wrap(errors.KindConfig, "applying environment overrides", err)
	}

	return cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Global configuration instance.
var globalConfig = Default()

// Get returns the global configuration.
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration.
func Set(cfg *Config) {
	globalConfig = cfg
}
