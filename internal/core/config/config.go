// Package config handles configuration loading and validation for waymark.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// StartPath is the address-bar path the application opens on.
	StartPath string `yaml:"start_path"`
	// Seed pre-populates the todo list, one entry per content string.
	Seed    []string      `yaml:"seed"`
	History HistoryConfig `yaml:"history"`
	TUI     TUIConfig     `yaml:"tui"`
}

// HistoryConfig bounds the navigation history.
type HistoryConfig struct {
	// Limit is the maximum number of retained entries; 0 = unbounded.
	Limit int `yaml:"limit"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	// Theme selects the markdown rendering style for the detail view
	// (one of glamour's standard styles, e.g. "dark", "light", "notty").
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		StartPath: "/todos",
		History:   HistoryConfig{Limit: 100},
		TUI:       TUIConfig{Theme: "dark"},
	}
}

// Load reads the config file at configPath, falling back to defaults
// when the file does not exist.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.StartPath == "" {
		c.StartPath = defaults.StartPath
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.StartPath, "/") {
		return fmt.Errorf("start_path %q must begin with /", c.StartPath)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	for i, s := range c.Seed {
		if s == "" {
			return fmt.Errorf("seed[%d] must not be empty", i)
		}
	}
	return nil
}
