package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.Endpoint)
	assert.Equal(t, 25, cfg.Overpass.TimeoutSecs)
	assert.InDelta(t, 1.0, cfg.Overpass.RatePerSecond, 0.001)
	// The base URL is handed to the geocoding provider verbatim, so the
	// default must carry the /search API path, not the site root.
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Nominatim.BaseURL)
	assert.Contains(t, cfg.Nominatim.UserAgent, "portscout")
	assert.Equal(t, 5, cfg.Resolve.URLTimeoutSecs)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
overpass:
  endpoint: https://overpass.kumi.systems/api/interpreter
  timeout_secs: 40
log:
  level: debug
  format: console
server:
  port: 9090
batch:
  concurrency: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://overpass.kumi.systems/api/interpreter", cfg.Overpass.Endpoint)
	assert.Equal(t, 40, cfg.Overpass.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Batch.Concurrency)
	// Defaults still apply for unset values
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Nominatim.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("PORTSCOUT_LOG_LEVEL", "warn")
	t.Setenv("PORTSCOUT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("PORTSCOUT_BATCH_CONCURRENCY", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Batch.Concurrency)
}

func TestDurationHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25*time.Second, OverpassConfig{TimeoutSecs: 25}.Timeout())
	assert.Equal(t, 10*time.Second, ResolveConfig{URLTimeoutSecs: 10}.URLTimeout())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	cfg.Overpass.TimeoutSecs = 25
	cfg.Overpass.RatePerSecond = 1.0
	cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	cfg.Batch.Concurrency = 5
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateScore(t *testing.T) {
	t.Parallel()

	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("score"))

	cfg.Overpass.Endpoint = ""
	err := cfg.Validate("score")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "overpass.endpoint is required")
}

func TestValidateBatchConcurrencyBounds(t *testing.T) {
	t.Parallel()

	cfg := validDefaults()

	cfg.Batch.Concurrency = 0
	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency must be between 1 and 50")

	cfg.Batch.Concurrency = 51
	err = cfg.Validate("batch")
	assert.Error(t, err)

	cfg.Batch.Concurrency = 50
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidateServePort(t *testing.T) {
	t.Parallel()

	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Server.Port = 0
	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be between 1 and 65535")
}

func TestValidateUnknownMode(t *testing.T) {
	t.Parallel()

	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
