package choreographer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delorenj/imi/internal/config"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		RootPath: root,
		SyncSettings: config.SyncSettings{
			Enabled:        true,
			GlobalSyncPath: "sync/global",
			RepoSyncPath:   "sync/repo",
		},
		SymlinkFiles: []string{".env", ".editorconfig"},
	}
}

func TestEnsureSyncDirectories_CreatesAndSeeds(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)

	require.NoError(t, EnsureSyncDirectories(cfg, "widget"))

	rulesPath := filepath.Join(root, "widget", "sync", "global", "coding-rules.md")
	stackPath := filepath.Join(root, "widget", "sync", "global", "stack-specific.md")

	assert.FileExists(t, rulesPath)
	assert.FileExists(t, stackPath)

	content, err := os.ReadFile(rulesPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Coding Rules")
}

func TestEnsureSyncDirectories_DoesNotOverwriteExisting(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)

	globalSync := filepath.Join(root, "widget", "sync", "global")
	require.NoError(t, os.MkdirAll(globalSync, 0o750))
	rulesPath := filepath.Join(globalSync, "coding-rules.md")
	require.NoError(t, os.WriteFile(rulesPath, []byte("custom content"), 0o640))

	require.NoError(t, EnsureSyncDirectories(cfg, "widget"))

	content, err := os.ReadFile(rulesPath)
	require.NoError(t, err)
	assert.Equal(t, "custom content", string(content))
}

func TestEnsureSyncDirectories_DisabledIsNoop(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.SyncSettings.Enabled = false

	require.NoError(t, EnsureSyncDirectories(cfg, "widget"))

	_, err := os.Stat(filepath.Join(root, "widget", "sync"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallSymlinks_CreatesSymlinkWhenSourceExists(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)

	repoSync := filepath.Join(root, "widget", "sync", "repo")
	require.NoError(t, os.MkdirAll(repoSync, 0o750))
	envSource := filepath.Join(repoSync, ".env")
	require.NoError(t, os.WriteFile(envSource, []byte("KEY=value"), 0o640))

	worktreePath := filepath.Join(root, "widget", "feat-auth")
	require.NoError(t, os.MkdirAll(worktreePath, 0o750))

	require.NoError(t, InstallSymlinks(cfg, "widget", worktreePath))

	target := filepath.Join(worktreePath, ".env")
	info, err := os.Lstat(target)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestInstallSymlinks_SkipsWhenSourceMissing(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)

	worktreePath := filepath.Join(root, "widget", "feat-auth")
	require.NoError(t, os.MkdirAll(worktreePath, 0o750))

	require.NoError(t, InstallSymlinks(cfg, "widget", worktreePath))

	_, err := os.Lstat(filepath.Join(worktreePath, ".env"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallSymlinks_SkipsWhenTargetAlreadyExists(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)

	repoSync := filepath.Join(root, "widget", "sync", "repo")
	require.NoError(t, os.MkdirAll(repoSync, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(repoSync, ".env"), []byte("KEY=value"), 0o640))

	worktreePath := filepath.Join(root, "widget", "feat-auth")
	require.NoError(t, os.MkdirAll(worktreePath, 0o750))
	existingTarget := filepath.Join(worktreePath, ".env")
	require.NoError(t, os.WriteFile(existingTarget, []byte("local override"), 0o640))

	require.NoError(t, InstallSymlinks(cfg, "widget", worktreePath))

	info, err := os.Lstat(existingTarget)
	require.NoError(t, err)
	assert.False(t, info.Mode()&os.ModeSymlink != 0)
}

func TestRestructure_MovesSourceIntoTrunkPath(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "widget")
	require.NoError(t, os.MkdirAll(source, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(source, "README.md"), []byte("hello"), 0o640))

	container := filepath.Join(root, "widget-container")
	trunkPath := filepath.Join(container, "trunk-main")

	plan := RestructurePlan{Source: source, Container: container, TrunkPath: trunkPath}
	require.NoError(t, Restructure(plan))

	assert.FileExists(t, filepath.Join(trunkPath, "README.md"))
	_, err := os.Stat(source)
	assert.True(t, os.IsNotExist(err))
}

func TestRestructurePlan_String(t *testing.T) {
	plan := RestructurePlan{Source: "/a", Container: "/a-container", TrunkPath: "/a-container/trunk-main"}
	s := plan.String()
	assert.Contains(t, s, "/a-container")
	assert.Contains(t, s, "trunk-main")
}
