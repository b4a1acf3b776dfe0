// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "TABULA_CONFIG"

// Config is the master configuration for tabula.
type Config struct {
	// Table configures paging and empty states.
	Table TableConfig `yaml:"table"`

	// Display configures cell presentation.
	Display DisplayConfig `yaml:"display"`

	// Highlight configures deep-link highlighting.
	Highlight HighlightConfig `yaml:"highlight"`

	// Data names default input files.
	Data DataConfig `yaml:"data"`

	// Logging configures the command logger.
	Logging LoggingConfig `yaml:"logging"`
}

// TableConfig configures paging and empty states.
type TableConfig struct {
	// PageSize is the default number of rows per page.
	// Default: 10
	PageSize int `yaml:"page_size"`

	// EmptyText is shown when there are no rows at all.
	// Default: "No data"
	EmptyText string `yaml:"empty_text"`

	// NoMatchesText is shown when search or filters exclude every row.
	// Default: "No rows match the current search or filters"
	NoMatchesText string `yaml:"no_matches_text"`
}

// DisplayConfig configures cell presentation.
type DisplayConfig struct {
	// Locale is a BCP 47 tag controlling number grouping.
	// Default: en-US
	Locale string `yaml:"locale"`

	// CurrencySymbol prefixes currency cells.
	// Default: $
	CurrencySymbol string `yaml:"currency_symbol"`

	// DateLayout is a Go time layout for date cells.
	// Default: Jan 2, 2006
	DateLayout string `yaml:"date_layout"`

	// RelativeDates renders dates as "3 days ago".
	RelativeDates bool `yaml:"relative_dates"`

	// Fallback replaces missing values.
	// Default: N/A
	Fallback string `yaml:"fallback"`
}

// HighlightConfig configures deep-link highlighting.
type HighlightConfig struct {
	// QueryParam is the deep-link parameter naming the row to
	// highlight, removed once the highlight expires.
	// Default: highlight
	QueryParam string `yaml:"query_param"`

	// Duration is how long a highlight stays active.
	// Default: 3s
	Duration string `yaml:"duration"`
}

// DataConfig names default input files. Both may be overridden on
// the command line.
type DataConfig struct {
	// File is the row file (.json, .jsonl, .cbor, optionally .zst or
	// .lz4 compressed).
	File string `yaml:"file"`

	// View is the view definition (.jsonc, .json, .yaml).
	View string `yaml:"view"`
}

// LoggingConfig configures the command logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			PageSize:      10,
			EmptyText:     "No data",
			NoMatchesText: "No rows match the current search or filters",
		},
		Display: DisplayConfig{
			Locale:         "en-US",
			CurrencySymbol: "$",
			DateLayout:     "Jan 2, 2006",
			Fallback:       "N/A",
		},
		Highlight: HighlightConfig{
			QueryParam: "highlight",
			Duration:   "3s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the TABULA_CONFIG environment
// variable. It fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tabula.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default]. The result is not validated; call [Config.Validate].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Data.File = expandVars(c.Data.File, vars)
	c.Data.View = expandVars(c.Data.View, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Provided
// vars take precedence over the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Table.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("table.page_size must be positive, got %d", c.Table.PageSize))
	}

	if _, err := c.LocaleTag(); err != nil {
		errs = append(errs, err)
	}

	if c.Display.DateLayout == "" {
		errs = append(errs, errors.New("display.date_layout is required"))
	}

	if c.Highlight.QueryParam == "" {
		errs = append(errs, errors.New("highlight.query_param is required"))
	}

	if _, err := c.HighlightDuration(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DefaultPageSize returns the configured page size.
func (c *Config) DefaultPageSize() int {
	return c.Table.PageSize
}

// LocaleTag parses the display locale.
func (c *Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("display.locale %q: %w", c.Display.Locale, err)
	}
	return tag, nil
}

// HighlightDuration parses the highlight lifetime.
func (c *Config) HighlightDuration() (time.Duration, error) {
	duration, err := time.ParseDuration(c.Highlight.Duration)
	if err != nil {
		return 0, fmt.Errorf("highlight.duration %q: %w", c.Highlight.Duration, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("highlight.duration must be positive, got %s", duration)
	}
	return duration, nil
}

// LogLevel parses the logging level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
