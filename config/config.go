package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tracker configuration
type Config struct {
	Store   StoreConfig   `json:"store" yaml:"store" envPrefix:"MTG_"`
	Prices  PricesConfig  `json:"prices" yaml:"prices" envPrefix:"MTG_"`
	Tracker TrackerConfig `json:"tracker" yaml:"tracker" envPrefix:"MTG_"`
	Log     LogConfig     `json:"log" yaml:"log" envPrefix:"MTG_"`
}

// StoreConfig selects where trades and prices are persisted
type StoreConfig struct {
	Type string `json:"type" yaml:"type" env:"STORE_TYPE"` // "sqlite" or "dir"
	Path string `json:"path" yaml:"path" env:"DB_PATH"`
}

// PricesConfig contains the price service endpoints
type PricesConfig struct {
	BulkURL         string   `json:"bulk_url" yaml:"bulk_url" env:"BULK_URL"`
	FallbackURL     string   `json:"fallback_url" yaml:"fallback_url" env:"FALLBACK_URL"`
	BulkTimeout     Duration `json:"bulk_timeout" yaml:"bulk_timeout" env:"BULK_TIMEOUT"`
	FallbackTimeout Duration `json:"fallback_timeout" yaml:"fallback_timeout" env:"FALLBACK_TIMEOUT"`
	// AutoFetch runs the bulk download on startup when the cache is empty.
	AutoFetch bool `json:"auto_fetch" yaml:"auto_fetch" env:"AUTO_FETCH"`
}

// TrackerConfig contains trade list behavior
type TrackerConfig struct {
	SeedSample   bool `json:"seed_sample" yaml:"seed_sample" env:"SEED_SAMPLE"`
	HistorySteps int  `json:"history_steps" yaml:"history_steps" env:"HISTORY_STEPS"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format" env:"LOG_FORMAT"` // "json" or "console"
}

// Duration is a time.Duration written as "30s", "5m" in config files
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText is also what the env parser uses
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadFromFile loads configuration from a file (JSON or YAML), then applies
// environment overrides
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path when it is set, otherwise starts from Default. Environment
// overrides apply either way.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MTG_* environment variables
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.Type != "sqlite" && c.Store.Type != "dir" {
		return fmt.Errorf("store.type must be 'sqlite' or 'dir'")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Prices.BulkURL == "" {
		return fmt.Errorf("prices.bulk_url is required")
	}
	if c.Prices.FallbackURL == "" {
		return fmt.Errorf("prices.fallback_url is required")
	}
	if c.Prices.BulkTimeout <= 0 || c.Prices.FallbackTimeout <= 0 {
		return fmt.Errorf("prices timeouts must be positive")
	}
	if c.Tracker.HistorySteps < 0 {
		return fmt.Errorf("tracker.history_steps must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Type: "sqlite",
			Path: "./mtgtrades.sqlite",
		},
		Prices: PricesConfig{
			BulkURL:         "https://mtgjson.com/api/v5/AllPrices.json",
			FallbackURL:     "https://api.scryfall.com",
			BulkTimeout:     Duration(5 * time.Minute),
			FallbackTimeout: Duration(30 * time.Second),
			AutoFetch:       true,
		},
		Tracker: TrackerConfig{
			SeedSample:   true,
			HistorySteps: 6,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
