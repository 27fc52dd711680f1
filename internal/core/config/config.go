// Package config handles configuration loading and validation for markview.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Preview PreviewConfig `yaml:"preview"`
	Editor  EditorConfig  `yaml:"editor"`
	Layout  LayoutConfig  `yaml:"layout"`
}

// PreviewConfig controls page rendering.
type PreviewConfig struct {
	Placeholder string `yaml:"placeholder"` // overrides the localized placeholder
	Locale      string `yaml:"locale"`      // BCP 47 or POSIX locale, empty = environment
	Sanitize    bool   `yaml:"sanitize"`    // run fragments through a UGC policy
	Output      string `yaml:"output"`      // HTML mirror written by the editor
}

// EditorConfig controls the editing surface.
type EditorConfig struct {
	VimMode        bool     `yaml:"vim_mode"`
	LineNumbers    *bool    `yaml:"line_numbers"`
	Schemes        []string `yaml:"schemes"`         // preferred scheme ids, in order
	FallbackScheme string   `yaml:"fallback_scheme"` // used when the host has no schemes
}

// ShowLineNumbers returns the configured value, defaulting to true.
func (e EditorConfig) ShowLineNumbers() bool {
	return e.LineNumbers == nil || *e.LineNumbers
}

// LayoutConfig controls the split between editor and preview.
type LayoutConfig struct {
	// DefaultSplit is the editor width in percent restored when the preview
	// is shown without a remembered size.
	DefaultSplit int `yaml:"default_split"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			FallbackScheme: "github",
		},
		Layout: LayoutConfig{
			DefaultSplit: 50,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
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

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Editor.FallbackScheme == "" {
		c.Editor.FallbackScheme = defaults.Editor.FallbackScheme
	}
	if c.Layout.DefaultSplit == 0 {
		c.Layout.DefaultSplit = defaults.Layout.DefaultSplit
	}
}
