package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCKPILOT_CONFIG_PATH", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("STOCKPILOT_HTTP_ADDR", "")
	t.Setenv("STOCKPILOT_STORE_URL", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Store.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout.Duration)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxRequestBytes)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
http:
  addr: ":9090"
  shutdown_timeout: 30s
store:
  base_url: http://store.internal:8000/
  timeout: 3s
`), 0o600))

	t.Setenv("STOCKPILOT_CONFIG_PATH", path)
	t.Setenv("LOG_MODE", "")
	t.Setenv("STOCKPILOT_HTTP_ADDR", "")
	t.Setenv("STOCKPILOT_STORE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout.Duration)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout.Duration)
	assert.Equal(t, "http://store.internal:8000", cfg.Store.BaseURL,
		"trailing slash trimmed")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
store:
  base_url: http://store.internal:8000
`), 0o600))

	t.Setenv("STOCKPILOT_CONFIG_PATH", path)
	t.Setenv("LOG_MODE", "development")
	t.Setenv("STOCKPILOT_HTTP_ADDR", ":7070")
	t.Setenv("STOCKPILOT_STORE_URL", "http://127.0.0.1:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Store.BaseURL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  timeout: soon
`), 0o600))

	t.Setenv("STOCKPILOT_CONFIG_PATH", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestDurationYAMLRoundTrip(t *testing.T) {
	var d Duration
	require.NoError(t, yaml.Unmarshal([]byte("5s"), &d))
	assert.Equal(t, 5*time.Second, d.Duration)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "5s\n", string(out))

	var empty Duration
	require.NoError(t, yaml.Unmarshal([]byte(`""`), &empty))
	assert.Zero(t, empty.Duration)
}
