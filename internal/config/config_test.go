package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "\n", cfg.Terminator())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_path: /games/psvr/hands.log
export_dir: /games/export
ledger: sqlite
encoding: windows-1252
source_timezone: Europe/Paris
timezone_abbr: CET
poll_interval: 250ms
line_ending: CRLF
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/games/psvr/hands.log", cfg.LogPath)
	assert.Equal(t, "/games/export", cfg.ExportDir)
	assert.Equal(t, model.StoreSQLite, cfg.Ledger)
	assert.Equal(t, "windows-1252", cfg.Encoding)
	assert.Equal(t, "Europe/Paris", cfg.SourceTimezone)
	assert.Equal(t, "CET", cfg.TimezoneAbbr)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, LineEndingCRLF, cfg.LineEnding)
	assert.Equal(t, "\r\n", cfg.Terminator())
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultStateDir, cfg.StateDir)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty fields refilled", func(c *Config) { *c = Config{} }, ""},
		{"bad ledger", func(c *Config) { c.Ledger = "redis" }, "invalid ledger"},
		{"bad line ending", func(c *Config) { c.LineEnding = "cr" }, "invalid line_ending"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log_format"},
		{"bad timezone", func(c *Config) { c.SourceTimezone = "Mars/Olympus" }, "invalid source_timezone"},
		{"utc timezone", func(c *Config) { c.SourceTimezone = "UTC" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotZero(t, cfg.PollInterval)
				assert.NotEmpty(t, cfg.Ledger)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.ExportDir = "/tmp/export"
	cfg.PollInterval = time.Second
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".psvr-exporter", "state"), ExpandPath("~/.psvr-exporter/state"))
	assert.Equal(t, "", ExpandPath(""))
	assert.True(t, filepath.IsAbs(ExpandPath("relative/dir")))
}
