package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delorenj/imi/internal/config"
)

func TestLoad_DefaultsWhenNoConfigFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("IMI_ROOT", "")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.GitSettings.DefaultBranch)
	assert.Equal(t, "origin", cfg.GitSettings.RemoteName)
	assert.True(t, cfg.SyncSettings.Enabled)
	assert.Equal(t, []string{".env"}, cfg.SymlinkFiles)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	markerDir := filepath.Join(root, ".imi")
	require.NoError(t, os.MkdirAll(markerDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(markerDir, "config.toml"),
		[]byte("log_level = \"debug\"\n\n[git_settings]\ndefault_branch = \"trunk\"\n"),
		0o640,
	))

	cfg, err := config.Load(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "trunk", cfg.GitSettings.DefaultBranch)
}

func TestLoad_EnvOverridesProjectConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("IMI_LOG_LEVEL", "warn")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_IMIRootOverridesRootPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("IMI_ROOT", "/override/root")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "/override/root", cfg.RootPath)
}

func TestLoadFromPaths_MergesGlobalAndProject(t *testing.T) {
	globalDir := t.TempDir()
	globalPath := filepath.Join(globalDir, "config.toml")
	require.NoError(t, os.WriteFile(globalPath, []byte("root_path = \"/global/root\"\n"), 0o640))

	projectDir := t.TempDir()
	projectPath := filepath.Join(projectDir, "config.toml")
	require.NoError(t, os.WriteFile(projectPath, []byte("log_level = \"debug\"\n"), 0o640))

	cfg, err := config.LoadFromPaths(context.Background(), projectPath, globalPath)
	require.NoError(t, err)

	assert.Equal(t, "/global/root", cfg.RootPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}
