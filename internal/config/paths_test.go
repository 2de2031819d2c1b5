package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delorenj/imi/internal/config"
)

func TestGlobalConfigDir_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	dir, err := config.GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/config/imi", dir)
}

func TestGlobalConfigDir_FallsBackToHomeConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	dir, err := config.GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.config/imi", dir)
}

func TestFindProjectConfigPath_FindsNearestAncestor(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "acme")
	markerDir := filepath.Join(repoDir, ".imi")
	require.NoError(t, os.MkdirAll(markerDir, 0o750))

	configPath := filepath.Join(markerDir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("root_path = \"/tmp\"\n"), 0o640))

	nested := filepath.Join(repoDir, "feat-auth", "src")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, ok := config.FindProjectConfigPath(nested)
	require.True(t, ok)
	assert.Equal(t, configPath, found)
}

func TestFindProjectConfigPath_NoMarker(t *testing.T) {
	root := t.TempDir()
	_, ok := config.FindProjectConfigPath(root)
	assert.False(t, ok)
}

func TestFindMarkerDir_ReturnsRepositoryRoot(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "acme")
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, ".imi"), 0o750))

	nested := filepath.Join(repoDir, "feat-auth")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, ok := config.FindMarkerDir(nested)
	require.True(t, ok)
	assert.Equal(t, repoDir, found)
}

func TestRepoPath_TrunkPath_WorktreePath_SyncPath(t *testing.T) {
	cfg := &config.Config{
		RootPath: "/workspace",
		SyncSettings: config.SyncSettings{
			GlobalSyncPath: "sync/global",
			RepoSyncPath:   "sync",
		},
	}

	assert.Equal(t, "/workspace/acme", config.RepoPath(cfg, "acme"))
	assert.Equal(t, "/workspace/acme/trunk-main", config.TrunkPath(cfg, "acme", "main"))
	assert.Equal(t, "/workspace/acme/feat-auth", config.WorktreePath(cfg, "acme", "feat-auth"))
	assert.Equal(t, "/workspace/acme/sync/global", config.SyncPath(cfg, "acme", true))
	assert.Equal(t, "/workspace/acme/sync", config.SyncPath(cfg, "acme", false))
}
