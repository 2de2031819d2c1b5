// Package constants provides centralized constant values used throughout imi.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// ImiHome is the hidden directory name where imi stores host-level state
// (logs) when no override is configured.
// This directory is created in the user's home directory.
const ImiHome = ".imi"

// Category tags identify the kind of worktree a command operates on. They
// double as git branch prefixes and as the suffix separator used when
// deriving a worktree's directory name.
const (
	// CategoryFeat tags a feature-development worktree.
	CategoryFeat = "feat"

	// CategoryReview tags a worktree checked out to review an open pull request.
	CategoryReview = "review"

	// CategoryFix tags a bug-fix worktree.
	CategoryFix = "fix"

	// CategoryAiops tags a worktree dedicated to AI-agent operational work.
	CategoryAiops = "aiops"

	// CategoryDevops tags a worktree dedicated to infrastructure/tooling work.
	CategoryDevops = "devops"

	// CategoryTrunk identifies a repository's primary worktree. Trunk is
	// never created by imi; it is discovered at registration time.
	CategoryTrunk = "trunk"
)

// Directory and file names used inside a managed repository root.
const (
	// TrunkDirPrefix prefixes the trunk worktree's directory name, e.g. "trunk-main".
	TrunkDirPrefix = "trunk-"

	// SyncGlobalDirName is the directory holding files shared across every
	// repository managed by imi.
	SyncGlobalDirName = "global"

	// SyncRepoDirName is the directory, relative to a repository's root,
	// that contains the global and per-repository sync directories.
	SyncRepoDirName = "sync"

	// MarkerDirName names the per-project marker directory that identifies
	// a directory tree as an imi-managed repository.
	MarkerDirName = ".imi"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global imi configuration file,
	// located under the user's XDG config directory.
	GlobalConfigName = "config.toml"

	// ProjectConfigName is the name of the project-specific imi configuration
	// file, located under a repository's marker directory.
	ProjectConfigName = "config.toml"
)

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file for host operations.
	// This file is located in ~/.imi/logs/imi.log by default.
	CLILogFileName = "imi.log"
)

// RegistryDBFileName is the default SQLite database file name, relative to
// the configured database directory.
const RegistryDBFileName = "registry.db"

// Timeout and interval defaults for git subprocess and watcher operations.
const (
	// DefaultGitTimeout bounds any single git subprocess invocation.
	DefaultGitTimeout = 2 * time.Minute

	// DefaultFetchTimeout bounds network-bound fetch operations, which can
	// run longer than local git plumbing.
	DefaultFetchTimeout = 5 * time.Minute

	// ActivityDebounceWindow is the minimum interval between two activity
	// events logged for the same worktree and relative path.
	ActivityDebounceWindow = 1 * time.Second

	// MonitorSummaryInterval is the period between periodic activity summaries
	// emitted by a running monitor session.
	MonitorSummaryInterval = 30 * time.Second

	// RegistryLockTimeout is the maximum duration to wait for the registry's
	// advisory file lock before failing a command.
	RegistryLockTimeout = 5 * time.Second
)

// Log rotation configuration constants.
const (
	// LogMaxSizeMB is the maximum size in megabytes of the log file before it gets rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of old log files to retain.
	LogMaxBackups = 5

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 30

	// LogCompress indicates whether the rotated log files should be compressed using gzip.
	LogCompress = true
)

// File permission constants for imi-managed directories and files.
const (
	// DirPerm is the permission mode for directories created by imi.
	DirPerm = 0o750

	// FilePerm is the permission mode for regular files created by imi.
	FilePerm = 0o640
)

// MaxNameLength is the maximum allowed length for a worktree or repository name.
const MaxNameLength = 255

// DefaultRemote is the default git remote name used for fetch/push operations.
const DefaultRemote = "origin"
