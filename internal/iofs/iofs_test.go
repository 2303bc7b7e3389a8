package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/migward/migward/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Verify config directory exists
	configDir := filepath.Join(tmpDir, ".config", "migward")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Config directory should exist")

	// Verify cache directory exists
	cacheDir := filepath.Join(tmpDir, ".cache", "migward")
	info, err = os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Cache directory should exist")

	// Verify log directory exists
	logDir := filepath.Join(tmpDir, ".local", "share", "migward",
		"logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Log directory should exist")
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureDirs(tmpDir)
	require.NoError(t, err)
}

// TestEnsureConfigFile_WritesTemplate verifies the embedded template
// is written on first run and left alone afterwards.
func TestEnsureConfigFile_WritesTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	// An existing file is not overwritten.
	err = os.WriteFile(configPath, []byte("touched: true"), 0644)
	require.NoError(t, err)
	require.NoError(t, EnsureConfigFile(tmpDir))

	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "touched: true", string(data))
}

// TestConfigTemplate_IsValid verifies the embedded template parses
// into a Config and matches the built-in defaults.
func TestConfigTemplate_IsValid(t *testing.T) {
	var cfg config.Config
	err := yaml.Unmarshal([]byte(ConfigYAML), &cfg)
	require.NoError(t, err)

	defaults := config.New()
	assert.Equal(t, defaults.Database.Driver, cfg.Database.Driver)
	assert.Equal(t, defaults.Database.Host, cfg.Database.Host)
	assert.Equal(t, defaults.Database.Port, cfg.Database.Port)
	assert.Equal(t, defaults.History.Table, cfg.History.Table)
	assert.Equal(t, defaults.Log.Level, cfg.Log.Level)
	assert.True(t, cfg.Clean.Disabled,
		"the template must ship with clean disabled")
}
