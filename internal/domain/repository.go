// Package domain defines the core record types shared by the registry,
// worktree coordinator, filesystem choreographer, and activity monitor.
package domain

import "time"

// Repository is a git repository registered with imi. Its root path is the
// container directory under the configured workspace root that holds the
// trunk worktree and every category worktree materialized for it.
type Repository struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	RootPath      string    `json:"root_path" db:"root_path"`
	RemoteURL     string    `json:"remote_url" db:"remote_url"`
	DefaultBranch string    `json:"default_branch" db:"default_branch"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
