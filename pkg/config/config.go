// Package config loads fixture settings from YAML so a test suite can share
// one profile (collection sizes, seed, recursion handling, log level).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// RecursionThrow fails a request for a type that is already being built.
	RecursionThrow = "throw"
	// RecursionOmit uses the zero value instead.
	RecursionOmit = "omit"
)

// Config holds fixture settings. The zero Seed means a random seed.
type Config struct {
	RepeatCount int    `yaml:"repeat_count" validate:"gte=0,lte=1000"`
	Seed        uint64 `yaml:"seed"`
	Recursion   string `yaml:"recursion" validate:"omitempty,oneof=throw omit"`
	MaxDepth    int    `yaml:"max_depth" validate:"gte=0"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New()

// Default returns the settings a fixture uses without configuration.
func Default() Config {
	return Config{
		RepeatCount: 3,
		Recursion:   RecursionThrow,
		LogLevel:    "info",
	}
}

// Load reads and validates a YAML file. Keys missing from the file keep
// their Default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading fixture config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding fixture config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid fixture config: %w", err)
	}
	return nil
}

// OmitOnRecursion reports whether recursive requests yield zero values.
func (c Config) OmitOnRecursion() bool {
	return c.Recursion == RecursionOmit
}

// Level maps LogLevel to a slog level. Unknown or empty values mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
