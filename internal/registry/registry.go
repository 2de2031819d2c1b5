// Package registry is the persistent SQLite-backed index of repositories,
// worktrees, and activity events that the coordinator, choreographer, and
// monitor packages consult as the source of truth for what exists on disk.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/delorenj/imi/internal/clock"
	"github.com/delorenj/imi/internal/constants"
)

// Registry provides persistent storage for repository, worktree, and
// activity records using SQLite. It creates its schema automatically on
// first open and enforces foreign-key constraints between worktrees and
// their owning repositories.
type Registry struct {
	db    *sql.DB
	clock clock.Clock
	lock  *fileLock
}

// Open opens (creating if necessary) the SQLite database at dbPath and
// migrates it to the current schema.
func Open(dbPath string) (*Registry, error) {
	return OpenWithClock(dbPath, clock.RealClock{})
}

// OpenWithClock is like Open but allows injecting a Clock for testing.
//
// Opening acquires an exclusive advisory lock on a "<dbPath>.lock" sidecar
// file, held for the Registry's lifetime and released by Close. This
// serializes registry access across separate imi process invocations
// (e.g. a background monitor session and a concurrent CLI command),
// closing the window between a coordinator's idempotency check and its
// subsequent write that SQLite's own per-statement locking doesn't cover.
func OpenWithClock(dbPath string, c clock.Clock) (*Registry, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
			return nil, fmt.Errorf("failed to create registry directory: %w", err)
		}
	}

	lock, err := acquireLock(dbPath+".lock", constants.RegistryLockTimeout)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		_ = lock.release()
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	r := &Registry{db: db, clock: c, lock: lock}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		_ = lock.release()
		return nil, fmt.Errorf("failed to migrate registry database: %w", err)
	}

	return r, nil
}

// Close closes the underlying database connection and releases the
// registry's advisory file lock.
func (r *Registry) Close() error {
	err := r.db.Close()
	if lockErr := r.lock.release(); lockErr != nil && err == nil {
		err = lockErr
	}
	return err
}

func (r *Registry) migrate() error {
	statements := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS repositories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			root_path TEXT NOT NULL,
			remote_url TEXT NOT NULL DEFAULT '',
			default_branch TEXT NOT NULL DEFAULT 'main',
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS worktrees (
			id TEXT PRIMARY KEY,
			repository_name TEXT NOT NULL,
			name TEXT NOT NULL,
			branch TEXT NOT NULL,
			category TEXT NOT NULL,
			path TEXT NOT NULL,
			agent_id TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (repository_name) REFERENCES repositories(name)
		)`,
		`CREATE TABLE IF NOT EXISTS agent_activities (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			worktree_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			relative_path TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			FOREIGN KEY (worktree_id) REFERENCES worktrees(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_worktrees_repository_name ON worktrees(repository_name)`,
		`CREATE INDEX IF NOT EXISTS idx_worktrees_active ON worktrees(active)`,
		// Partial: only one *active* worktree may hold a given (repository_name, name)
		// pair at a time. A deactivated row's name stays taken in history but frees the
		// slot for a new active row, so create -> remove -> create again succeeds.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_worktrees_active_repository_name_name
			ON worktrees(repository_name, name) WHERE active = 1`,
		`CREATE INDEX IF NOT EXISTS idx_agent_activities_worktree_id ON agent_activities(worktree_id)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_activities_created_at ON agent_activities(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}
