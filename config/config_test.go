package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, 5*time.Minute, cfg.Prices.BulkTimeout.Std())
	assert.Equal(t, 6, cfg.Tracker.HistorySteps)
	assert.True(t, cfg.Tracker.SeedSample)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown store type",
			mutate:  func(c *Config) { c.Store.Type = "csv" },
			wantErr: true,
			errMsg:  "store.type must be 'sqlite' or 'dir'",
		},
		{
			name:    "missing store path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: true,
			errMsg:  "store.path is required",
		},
		{
			name:    "missing bulk url",
			mutate:  func(c *Config) { c.Prices.BulkURL = "" },
			wantErr: true,
			errMsg:  "prices.bulk_url is required",
		},
		{
			name:    "missing fallback url",
			mutate:  func(c *Config) { c.Prices.FallbackURL = "" },
			wantErr: true,
			errMsg:  "prices.fallback_url is required",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Prices.FallbackTimeout = 0 },
			wantErr: true,
			errMsg:  "timeouts must be positive",
		},
		{
			name:    "negative history",
			mutate:  func(c *Config) { c.Tracker.HistorySteps = -1 },
			wantErr: true,
			errMsg:  "tracker.history_steps",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Store.Path = "/var/lib/mtg/trades.sqlite"
			cfg.Prices.FallbackTimeout = Duration(12 * time.Second)
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Store, loaded.Store)
			assert.Equal(t, cfg.Prices, loaded.Prices)
			assert.Equal(t, cfg.Tracker, loaded.Tracker)
			assert.Equal(t, cfg.Log, loaded.Log)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: dir\n  path: ./blobs\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dir", cfg.Store.Type)
	assert.Equal(t, "https://api.scryfall.com", cfg.Prices.FallbackURL)
	assert.Equal(t, 30*time.Second, cfg.Prices.FallbackTimeout.Std())
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MTG_DB_PATH", "/tmp/override.sqlite")
	t.Setenv("MTG_FALLBACK_TIMEOUT", "3s")
	t.Setenv("MTG_SEED_SAMPLE", "false")
	t.Setenv("MTG_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.sqlite", cfg.Store.Path)
	assert.Equal(t, 3*time.Second, cfg.Prices.FallbackTimeout.Std())
	assert.False(t, cfg.Tracker.SeedSample)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("MTG_BULK_TIMEOUT", "forever")

	_, err := Load("")
	assert.Error(t, err)
}
