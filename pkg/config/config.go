// Package config loads settings for the nanodur command.
//
// Settings come from an optional YAML file; command-line flags override
// individual fields afterwards. Durations in the file may be written in
// duration syntax ("1s", "+1h30m") or as integer nanosecond counts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nanodur/nanodur-go/pkg/duration"
	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidGrain    = errors.New("invalid grain")
)

// Config holds nanodur settings.
type Config struct {
	// Journal is the path of the CBOR calculation journal. Empty disables it.
	Journal string `yaml:"journal"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Prompt is the REPL prompt.
	Prompt string `yaml:"prompt"`

	// Unit is the default unit for the convert command.
	Unit string `yaml:"unit"`

	// Grain, when non-zero, truncates every REPL result to a multiple of it.
	Grain duration.Duration `yaml:"grain"`

	// History is the REPL history file. Empty keeps history in memory only.
	History string `yaml:"history"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Prompt:   "dur> ",
		Unit:     "s",
	}
}

// Load reads the YAML file at path on top of Default. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q (want debug, info, warn or error)", ErrInvalidLogLevel, c.LogLevel)
	}
	if _, ok := duration.LookupUnit(c.Unit); !ok {
		return fmt.Errorf("%w: %q (want ns, us, ms, s, m or h)", ErrInvalidUnit, c.Unit)
	}
	if c.Grain < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidGrain, c.Grain)
	}
	return nil
}
