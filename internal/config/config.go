// Package config loads tablemd CLI settings from a YAML file, environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/tsawler/tablemd/markdown"
	"github.com/tsawler/tablemd/tables"
)

// FileName is the config file name looked up without an explicit path.
const FileName = "tablemd"

// EnvPrefix prefixes environment variable overrides (TABLEMD_SEPARATOR, ...).
const EnvPrefix = "TABLEMD"

// Config represents the tablemd configuration
type Config struct {
	Separator        string `mapstructure:"separator"`
	HeaderMode       string `mapstructure:"header_mode"`        // all or any
	EmptyHeaderLabel string `mapstructure:"empty_header_label"` // e.g. col_%d
	BlankLines       bool   `mapstructure:"blank_lines"`
	Workers          int    `mapstructure:"workers"` // 0 = NumCPU
	LogLevel         string `mapstructure:"log_level"`
	Glob             string `mapstructure:"glob"`

	// File is the config file that was read, or "" when none was found.
	File string `mapstructure:"-"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Separator:        tables.DefaultSeparator,
		HeaderMode:       tables.HeaderAllCells.String(),
		EmptyHeaderLabel: "",
		BlankLines:       true,
		Workers:          0,
		LogLevel:         "info",
		Glob:             "**/*.{html,htm}",
	}
}

// GetConfigDir returns the XDG config directory for tablemd.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "tablemd"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tablemd"), nil
}

// Load reads the configuration. With an empty path, tablemd.yaml is looked
// up in the config directory and then the working directory, and a missing
// file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		if dir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("separator", defaults.Separator)
	v.SetDefault("header_mode", defaults.HeaderMode)
	v.SetDefault("empty_header_label", defaults.EmptyHeaderLabel)
	v.SetDefault("blank_lines", defaults.BlankLines)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("glob", defaults.Glob)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if _, ok := tables.ParseHeaderMode(c.HeaderMode); !ok {
		return fmt.Errorf("invalid header_mode %q (must be all or any)", c.HeaderMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Glob == "" || !doublestar.ValidatePattern(c.Glob) {
		return fmt.Errorf("invalid glob pattern %q", c.Glob)
	}
	if err := markdown.ValidateLabel(c.EmptyHeaderLabel); err != nil {
		return fmt.Errorf("invalid empty_header_label: %w", err)
	}
	return nil
}

// HeaderModeValue returns the parsed header mode. Call Validate first.
func (c *Config) HeaderModeValue() tables.HeaderMode {
	mode, _ := tables.ParseHeaderMode(c.HeaderMode)
	return mode
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
