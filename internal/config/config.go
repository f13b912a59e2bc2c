// Package config loads the exporter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "~/.psvr-exporter/config.yaml"
	DefaultStateDir   = "~/.psvr-exporter/state"
	DefaultLogFile    = "~/.psvr-exporter/logs/app.log"

	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Config holds every setting the exporter reads at startup.
type Config struct {
	// Source log and export destination
	LogPath   string `yaml:"log_path"`
	ExportDir string `yaml:"export_dir"`

	// Ledger persistence
	StateDir string `yaml:"state_dir"`
	Ledger   string `yaml:"ledger"` // json, sqlite, memory

	// Input decoding and hand time rendering
	Encoding       string `yaml:"encoding"`
	SourceTimezone string `yaml:"source_timezone"`
	TimezoneAbbr   string `yaml:"timezone_abbr"`

	PollInterval time.Duration `yaml:"poll_interval"`
	LineEnding   string        `yaml:"line_ending"` // lf, crlf

	// Logging
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text, json
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		StateDir:       DefaultStateDir,
		Ledger:         model.StoreJSON,
		Encoding:       "utf-8",
		SourceTimezone: "Local",
		PollInterval:   constants.PollInterval,
		LineEnding:     LineEndingLF,
		LogFile:        DefaultLogFile,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills empty fields with defaults and rejects unknown values.
func (c *Config) Validate() error {
	def := Default()

	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
	if c.Ledger == "" {
		c.Ledger = def.Ledger
	}
	if c.Encoding == "" {
		c.Encoding = def.Encoding
	}
	if c.SourceTimezone == "" {
		c.SourceTimezone = def.SourceTimezone
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.LineEnding == "" {
		c.LineEnding = def.LineEnding
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}

	switch c.Ledger {
	case model.StoreJSON, model.StoreSQLite, model.StoreMemory:
	default:
		return fmt.Errorf("invalid ledger %q: must be json, sqlite or memory", c.Ledger)
	}

	c.LineEnding = strings.ToLower(c.LineEnding)
	if c.LineEnding != LineEndingLF && c.LineEnding != LineEndingCRLF {
		return fmt.Errorf("invalid line_ending %q: must be lf or crlf", c.LineEnding)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	if c.SourceTimezone != "Local" {
		if _, err := time.LoadLocation(c.SourceTimezone); err != nil {
			return fmt.Errorf("invalid source_timezone %q: %w", c.SourceTimezone, err)
		}
	}

	return nil
}

// Terminator returns the byte sequence written after each exported line.
func (c *Config) Terminator() string {
	if c.LineEnding == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ExpandPath resolves a leading "~/" and makes the path absolute.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
