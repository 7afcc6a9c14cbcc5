package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents bundler configuration options. It covers how a run
// writes and reports, never which files are selected.
type Config struct {
	// Output is the artifact path, relative to the working directory
	Output string `yaml:"output"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files in this directory when non-empty
	LogDir string `yaml:"log_dir"`

	// SeparatorWidth is the length of the rule lines around file headers
	SeparatorWidth int `yaml:"separator_width"`

	// Report is the path of the YAML run report (empty = no report)
	Report string `yaml:"report"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Output:         "project_bundle.txt",
		LogLevel:       "info",
		LogDir:         "",
		SeparatorWidth: 80,
		Report:         "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF
	if err := decoder.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.SeparatorWidth != 0 {
		cfg.SeparatorWidth = yamlCfg.SeparatorWidth
	}
	if yamlCfg.Report != "" {
		cfg.Report = yamlCfg.Report
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(output *string, logLevel *string, logDir *string, report *string) {
	if output != nil {
		c.Output = *output
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if report != nil {
		c.Report = *report
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.SeparatorWidth < 1 || c.SeparatorWidth > 1000 {
		return fmt.Errorf("separator_width must be between 1 and 1000, got %d", c.SeparatorWidth)
	}

	if c.Report != "" && c.Report == c.Output {
		return fmt.Errorf("report and output must be different files, both are %q", c.Output)
	}

	return nil
}
