package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
listen: 0.0.0.0:9000
logLevel: debug
corsOrigins: ["https://example.com"]
writeTimeout: 10s
openBrowser: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.True(t, cfg.OpenBrowser)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "listne: :8000\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvListen:      "127.0.0.1:9999",
		EnvLogLevel:    "warn",
		EnvOpenBrowser: "true",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.OpenBrowser)

	env[EnvOpenBrowser] = "maybe"
	assert.Error(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Listen = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	b, err := Default().YAML()
	require.NoError(t, err)
	cfg, err := Load(writeFile(t, string(b)))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
