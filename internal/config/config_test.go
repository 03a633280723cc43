package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.Render.Color)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadFromFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitch.yaml")
	data := []byte("log:\n  level: debug\nhttp:\n  addr: \":9090\"\n  debug: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.Debug)

	// Untouched sections keep their defaults.
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FITCH_LOG_LEVEL", "error")
	t.Setenv("FITCH_STORE_IN_MEMORY", "true")
	t.Setenv("FITCH_WATCH_DEBOUNCE", "1s")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Store.InMemory)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("FITCH_STORE_IN_MEMORY", "sometimes")
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())
}

func TestValidateFlagsBadFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(c *Config)
	}{
		{"log.level", func(c *Config) { c.Log.Level = "loud" }},
		{"log.format", func(c *Config) { c.Log.Format = "xml" }},
		{"http.addr", func(c *Config) { c.HTTP.Addr = "" }},
		{"http.shutdown_timeout", func(c *Config) { c.HTTP.ShutdownTimeout = 0 }},
		{"store.path", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = false }},
		{"watch.debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestLoadCombinesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
	t.Setenv("FITCH_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
