package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "original", cfg.Defaults.Schema)
	assert.Equal(t, "last", cfg.Defaults.Duplicates)
	assert.Equal(t, ',', cfg.Defaults.Comma)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFromEnvAndFile(t *testing.T) {
	resetViper(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(home, ".csvsync.yaml"),
		[]byte("key_column: sku\ntrim: true\ncomma: \";\"\n"), 0o600))
	t.Setenv("DUPLICATES", "reject")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sku", cfg.Defaults.KeyColumn)
	assert.True(t, cfg.Defaults.Keys.Trim)
	assert.Equal(t, ';', cfg.Defaults.Comma)
	assert.Equal(t, "reject", cfg.Defaults.Duplicates)
	assert.Equal(t, filepath.Join(home, ".csvsync.yaml"), cfg.ConfigFile)
}

func TestLoadConfigDotEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CASE_INSENSITIVE=true\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CASE_INSENSITIVE") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Defaults.Keys.CaseInsensitive)
}

func TestConfigReload(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("key_column: code\nformat: yaml\n"), 0o600))

	require.NoError(t, cfg.Reload(file))
	assert.Equal(t, "code", cfg.Defaults.KeyColumn)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, file, cfg.ConfigFile)

	assert.Error(t, cfg.Reload(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", LogLevel: "info"}
	cfg.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.UpdateFromFlags(false, true, false, "json", "debug")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}
