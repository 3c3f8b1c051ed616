// Package config loads the planner configuration from ~/.metis/config.yaml.
// The file is optional: a missing file yields the defaults, a malformed or
// invalid file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full config.yaml configuration.
type Config struct {
	HoursPerDay  int    `yaml:"hours_per_day"`
	DatabasePath string `yaml:"database_path"`
	Color        string `yaml:"color"` // auto, always, never
	// HistoryWindowDays bounds how far back completion history is read
	// when deriving preferences. Zero means unbounded.
	HistoryWindowDays int `yaml:"history_window_days"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".metis", "config.yaml"), nil
}

// DefaultDatabasePath returns the standard database location.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".metis", "metis.db"), nil
}

// Load reads and parses a config file, applying defaults and validation.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses raw YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HoursPerDay == 0 {
		cfg.HoursPerDay = 4
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.HistoryWindowDays == 0 {
		cfg.HistoryWindowDays = 180
	}
}

// Validate checks a Config for logical errors.
func Validate(cfg *Config) error {
	if cfg.HoursPerDay < 1 || cfg.HoursPerDay > 30 {
		return fmt.Errorf("hours_per_day must be 1-30, got %d", cfg.HoursPerDay)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always, or never, got %q", cfg.Color)
	}
	if cfg.HistoryWindowDays < 0 {
		return fmt.Errorf("history_window_days must be >= 0, got %d", cfg.HistoryWindowDays)
	}
	return nil
}
