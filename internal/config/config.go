// Package config carries the file-backed settings for the fitch surfaces:
// logging, the HTTP service, the proof store, rendering, and the watcher.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	HTTP   HTTPConfig   `yaml:"http"`
	Store  StoreConfig  `yaml:"store"`
	Render RenderConfig `yaml:"render"`
	Watch  WatchConfig  `yaml:"watch"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig configures the proof service.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`
}

// StoreConfig configures proof persistence.
type StoreConfig struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// RenderConfig controls terminal output.
type RenderConfig struct {
	Color bool `yaml:"color"`
}

// WatchConfig tunes the file watcher used by check --watch.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ValidationError reports one rejected configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		HTTP:   HTTPConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Store:  StoreConfig{Path: defaultStorePath()},
		Render: RenderConfig{Color: true},
		Watch:  WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitch"
	}
	return filepath.Join(home, ".fitch", "proofs")
}

// Load reads the config file, layers FITCH_* environment overrides on top,
// and validates the result. A missing file is not an error; the defaults
// apply.
func Load(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML config over the defaults. Unknown keys are
// rejected; a missing file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays FITCH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("FITCH_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("FITCH_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("FITCH_HTTP_ADDR"); ok {
		c.HTTP.Addr = v
	}
	if v, ok := os.LookupEnv("FITCH_STORE_PATH"); ok {
		c.Store.Path = v
	}
	if v, ok := os.LookupEnv("FITCH_STORE_IN_MEMORY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: FITCH_STORE_IN_MEMORY: %w", err)
		}
		c.Store.InMemory = b
	}
	if v, ok := os.LookupEnv("FITCH_RENDER_COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: FITCH_RENDER_COLOR: %w", err)
		}
		c.Render.Color = b
	}
	if v, ok := os.LookupEnv("FITCH_WATCH_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: FITCH_WATCH_DEBOUNCE: %w", err)
		}
		c.Watch.Debounce = d
	}
	return nil
}

// Validate rejects settings the surfaces cannot run with.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	if c.HTTP.Addr == "" {
		return &ValidationError{Field: "http.addr", Message: "must not be empty"}
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return &ValidationError{Field: "http.shutdown_timeout", Message: "must be positive"}
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return &ValidationError{Field: "store.path", Message: "required unless store.in_memory is set"}
	}
	if c.Watch.Debounce <= 0 {
		return &ValidationError{Field: "watch.debounce", Message: "must be positive"}
	}
	return nil
}
