// Package config loads launchgen's own settings: where templates and
// configurations live, where launch.json goes, and how strict a run is.
//
// Sources are layered with the highest precedence first:
//
//	CLI flags (applied by the caller) > LAUNCHGEN_* env > .launchgen.yaml > defaults
//
// .env and .env.local files in the workspace root are loaded into the process
// environment before LAUNCHGEN_* variables are read. Existing variables are
// never overwritten.
package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

const (
	// DefaultFileName is looked up in the workspace root when no --config is given.
	DefaultFileName = ".launchgen.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LAUNCHGEN_"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat case-folds raw. Empty input maps to text.
func ParseLogFormat(raw string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", LogFormatText:
		return LogFormatText, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf("invalid log format %q (valid: text, json)", raw)
	}
}

// Config holds the effective settings of one invocation. Directory and file
// paths may be relative; they are resolved against the workspace root.
type Config struct {
	TemplatesDir   string `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	ConfigsDir     string `yaml:"configs_dir" env:"CONFIGS_DIR"`
	Output         string `yaml:"output" env:"OUTPUT"`
	LogFormat      string `yaml:"log_format" env:"LOG_FORMAT"`
	Verbose        bool   `yaml:"verbose" env:"VERBOSE"`
	DisabledPolicy string `yaml:"disabled_policy" env:"DISABLED_POLICY"`
	KeepGoing      bool   `yaml:"keep_going" env:"KEEP_GOING"`
	SkipUnreadable bool   `yaml:"skip_unreadable" env:"SKIP_UNREADABLE"`
	Concurrency    int    `yaml:"concurrency" env:"CONCURRENCY"`
	MetricsFile    string `yaml:"metrics_file" env:"METRICS_FILE"`

	// File is the configuration file that was read, empty when none existed.
	File string `yaml:"-"`
}

// Defaults returns the built-in settings.
func Defaults() *Config {
	return &Config{
		TemplatesDir:   ".launchgen/templates",
		ConfigsDir:     ".launchgen/configs",
		Output:         ".vscode/launch.json",
		LogFormat:      string(LogFormatText),
		DisabledPolicy: string(diagnostics.DefaultDisabledPolicy),
		Concurrency:    8,
	}
}

// Validate checks enumerations and bounds.
func (c *Config) Validate() error {
	if _, err := ParseLogFormat(c.LogFormat); err != nil {
		return invalid(err, "log_format")
	}
	if _, err := diagnostics.ParseDisabledPolicy(c.DisabledPolicy); err != nil {
		return invalid(err, "disabled_policy")
	}
	if c.Concurrency < 0 {
		return invalid(fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency), "concurrency")
	}
	if strings.TrimSpace(c.Output) == "" {
		return invalid(fmt.Errorf("output path must not be empty"), "output")
	}
	return nil
}

// Mode maps KeepGoing and Verbose onto a diagnostics mode.
func (c *Config) Mode() diagnostics.Mode {
	if c.KeepGoing || c.Verbose {
		return diagnostics.CollectAll
	}
	return diagnostics.FailFast
}

// Policy returns the parsed disabled-entry policy. Call Validate first.
func (c *Config) Policy() diagnostics.DisabledPolicy {
	p, err := diagnostics.ParseDisabledPolicy(c.DisabledPolicy)
	if err != nil {
		return diagnostics.DefaultDisabledPolicy
	}
	return p
}

func invalid(err error, field string) error {
	return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
		WithContext("field", field).
		Fatal().
		Build()
}
