// Package config provides configuration management for imi with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence last):
//  1. Built-in defaults
//  2. Global config ($XDG_CONFIG_HOME/imi/config.toml or ~/.config/imi/config.toml)
//  3. Project config (<ancestor>/.imi/config.toml)
//  4. Environment variables (IMI_* prefix, "." replaced with "_")
//
// Each higher level overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for imi.
type Config struct {
	// DatabasePath is the absolute filesystem path to the registry's SQLite database.
	DatabasePath string `toml:"database_path" mapstructure:"database_path"`

	// RootPath is the workspace root under which every managed repository's
	// container directory is materialized.
	RootPath string `toml:"root_path" mapstructure:"root_path"`

	// SyncSettings controls sync-directory seeding.
	SyncSettings SyncSettings `toml:"sync_settings" mapstructure:"sync_settings"`

	// GitSettings controls version-control defaults.
	GitSettings GitSettings `toml:"git_settings" mapstructure:"git_settings"`

	// MonitoringSettings controls the activity monitor.
	MonitoringSettings MonitoringSettings `toml:"monitoring_settings" mapstructure:"monitoring_settings"`

	// SymlinkFiles is the ordered list of path fragments, each relative to a
	// worktree, that are fanned in from sync/repo on worktree creation.
	SymlinkFiles []string `toml:"symlink_files" mapstructure:"symlink_files"`

	// GitHubSettings controls repository bootstrap defaults.
	GitHubSettings GitHubSettings `toml:"github_settings" mapstructure:"github_settings"`

	// LogLevel is one of trace, debug, info, warn, error, and is checked by
	// Validate. The logger's level is set from --verbose/--quiet only; it
	// does not read this field.
	LogLevel string `toml:"log_level" mapstructure:"log_level"`
}

// SyncSettings controls the filesystem choreographer's sync-directory behavior.
type SyncSettings struct {
	// Enabled toggles sync-directory creation and dotfile symlink fan-in.
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// GlobalSyncPath is the path fragment, relative to a repository root,
	// holding state shared across every repository.
	GlobalSyncPath string `toml:"global_sync_path" mapstructure:"global_sync_path"`

	// RepoSyncPath is the path fragment, relative to a repository root,
	// holding state shared across that repository's worktrees.
	RepoSyncPath string `toml:"repo_sync_path" mapstructure:"repo_sync_path"`
}

// GitSettings controls version-control defaults applied by the coordinator.
type GitSettings struct {
	// DefaultBranch names the branch materialized as the trunk worktree
	// when a repository is registered without one already detected.
	DefaultBranch string `toml:"default_branch" mapstructure:"default_branch"`

	// RemoteName is the git remote consulted for fetch/prune operations.
	RemoteName string `toml:"remote_name" mapstructure:"remote_name"`

	// AutoFetch enables fetching from RemoteName before creating a worktree.
	AutoFetch bool `toml:"auto_fetch" mapstructure:"auto_fetch"`

	// PruneOnFetch enables pruning stale remote-tracking refs during fetch.
	PruneOnFetch bool `toml:"prune_on_fetch" mapstructure:"prune_on_fetch"`
}

// MonitoringSettings controls the activity monitor's behavior.
type MonitoringSettings struct {
	// Enabled toggles whether `monitor` does any work at all.
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// WatchFileChanges toggles filesystem-watcher installation.
	WatchFileChanges bool `toml:"watch_file_changes" mapstructure:"watch_file_changes"`

	// TrackAgentActivity is loaded and defaulted to true, but no component
	// reads it: activity logging does not depend on its value.
	TrackAgentActivity bool `toml:"track_agent_activity" mapstructure:"track_agent_activity"`

	// RefreshIntervalMS is the periodic-summary interval, in milliseconds.
	RefreshIntervalMS int `toml:"refresh_interval_ms" mapstructure:"refresh_interval_ms"`
}

// RefreshInterval returns MonitoringSettings.RefreshIntervalMS as a time.Duration.
func (m MonitoringSettings) RefreshInterval() time.Duration {
	return time.Duration(m.RefreshIntervalMS) * time.Millisecond
}

// GitHubSettings controls repository-bootstrap defaults.
type GitHubSettings struct {
	// DefaultOwner is used to resolve a bare "<name>" repository argument to
	// "<default_owner>/<name>" during `init`.
	DefaultOwner string `toml:"default_owner" mapstructure:"default_owner"`
}
