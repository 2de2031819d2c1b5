package config

import (
	"os"
	"path/filepath"

	"github.com/delorenj/imi/internal/constants"
	"github.com/delorenj/imi/internal/errors"
)

// GlobalConfigDir returns the imi global configuration directory:
// $XDG_CONFIG_HOME/imi, falling back to ~/.config/imi.
func GlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "imi"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".config", "imi"), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// FindProjectConfigPath searches startDir and its ancestors for a marker
// directory (.imi) containing a project config file, returning the config
// file path and true on success. It stops at the filesystem root.
func FindProjectConfigPath(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, constants.MarkerDirName, constants.ProjectConfigName)
		if fileExists(candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FindMarkerDir searches startDir and its ancestors for a directory
// containing the .imi marker directory, returning that ancestor directory
// (the repository root) and true on success.
func FindMarkerDir(startDir string) (string, bool) {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, constants.MarkerDirName)); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// RepoPath returns the container directory for repo under the workspace root.
func RepoPath(cfg *Config, repo string) string {
	return filepath.Join(cfg.RootPath, repo)
}

// TrunkPath returns the trunk worktree path for repo given its default branch.
func TrunkPath(cfg *Config, repo, defaultBranch string) string {
	return filepath.Join(RepoPath(cfg, repo), constants.TrunkDirPrefix+defaultBranch)
}

// WorktreePath returns the path of the worktree named name under repo.
func WorktreePath(cfg *Config, repo, name string) string {
	return filepath.Join(RepoPath(cfg, repo), name)
}

// SyncPath returns the sync directory for repo: the global sync fragment
// when global is true, otherwise the per-repository sync fragment.
func SyncPath(cfg *Config, repo string, global bool) string {
	fragment := cfg.SyncSettings.RepoSyncPath
	if global {
		fragment = cfg.SyncSettings.GlobalSyncPath
	}
	return filepath.Join(RepoPath(cfg, repo), fragment)
}

// DefaultDatabasePath returns the registry database path to use when
// DatabasePath is left unset in configuration: <global config dir>/registry.db.
func DefaultDatabasePath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.RegistryDBFileName), nil
}
