package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HPRCALC_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 9090\nlogging:\n  level: debug\npaths:\n  data_dir: /tmp/hprcalc\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	t.Setenv("HPRCALC_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/hprcalc", cfg.Paths.DataDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Output)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("HPRCALC_CONFIG_FILE", file)
	t.Setenv("HPRCALC_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("HPRCALC_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	t.Setenv("HPRCALC_SERVER_PORT", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("HPRCALC_SERVER_PORT", "8080")
	t.Setenv("HPRCALC_LOGGING_LEVEL", "loud")
	_, err = Load()
	assert.Error(t, err)
}
