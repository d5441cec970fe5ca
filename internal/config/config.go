package config

// Configuration loading and validation for pktprof

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tturner/pktprof/internal/errors"
)

// Direction tags accepted in session logs.
const (
	DirectionRecv    = "RECV"
	DirectionSend    = "SEND"
	DirectionUnknown = "UNKNOWN"
)

// ProfileConfig controls aggregation and classification.
type ProfileConfig struct {
	SampleSizes int    `yaml:"sample_sizes"` // distinct sizes listed per suggestion
	Direction   string `yaml:"direction"`    // only packets with this tag are profiled
}

// InspectConfig controls the single-opcode detail dump.
type InspectConfig struct {
	MaxPackets   int `yaml:"max_packets"`
	MaxBytes     int `yaml:"max_bytes"`
	BytesPerLine int `yaml:"bytes_per_line"`
}

// ReportConfig controls console output.
type ReportConfig struct {
	Details bool  `yaml:"details"`
	Color   *bool `yaml:"color,omitempty"`
}

// Config is the tool configuration
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Inspect InspectConfig `yaml:"inspect"`
	Report  ReportConfig  `yaml:"report"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Load loads a configuration from a YAML file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapConfigError(
				fmt.Errorf("config file not found: %s", path),
				path,
			)
		}
		return nil, errors.WrapConfigError(
			fmt.Errorf("read config file: %w", err),
			path,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}

	return &cfg, nil
}

// Validate validates a configuration
func Validate(cfg *Config) error {
	if cfg.Profile.SampleSizes <= 0 {
		return fmt.Errorf("profile.sample_sizes must be > 0")
	}
	switch cfg.Profile.Direction {
	case DirectionRecv, DirectionSend, DirectionUnknown:
	default:
		return fmt.Errorf("profile.direction must be RECV, SEND, or UNKNOWN, got '%s'", cfg.Profile.Direction)
	}
	if cfg.Inspect.MaxPackets <= 0 {
		return fmt.Errorf("inspect.max_packets must be > 0")
	}
	if cfg.Inspect.MaxBytes <= 0 {
		return fmt.Errorf("inspect.max_bytes must be > 0")
	}
	if cfg.Inspect.BytesPerLine < 8 || cfg.Inspect.BytesPerLine > 64 {
		return fmt.Errorf("inspect.bytes_per_line must be between 8 and 64, got %d", cfg.Inspect.BytesPerLine)
	}
	return nil
}

// ColorEnabled reports whether styled headings should be rendered.
func (c *Config) ColorEnabled() bool {
	return c.Report.Color == nil || *c.Report.Color
}

func applyDefaults(cfg *Config) {
	if cfg.Profile.SampleSizes == 0 {
		cfg.Profile.SampleSizes = 5
	}
	if cfg.Profile.Direction == "" {
		cfg.Profile.Direction = DirectionRecv
	}
	cfg.Profile.Direction = strings.ToUpper(cfg.Profile.Direction)
	if cfg.Inspect.MaxPackets == 0 {
		cfg.Inspect.MaxPackets = 3
	}
	if cfg.Inspect.MaxBytes == 0 {
		cfg.Inspect.MaxBytes = 64
	}
	if cfg.Inspect.BytesPerLine == 0 {
		cfg.Inspect.BytesPerLine = 16
	}
	cfg.Report.Color = boolPtrDefault(cfg.Report.Color, true)
}

func boolPtrDefault(value *bool, def bool) *bool {
	if value != nil {
		return value
	}
	v := def
	return &v
}
