package domain

import "time"

// ActivityKind enumerates the classifications a filesystem or version-control
// event can be logged under.
type ActivityKind string

// Recognized activity kinds.
const (
	ActivityCreated   ActivityKind = "created"
	ActivityModified  ActivityKind = "modified"
	ActivityDeleted   ActivityKind = "deleted"
	ActivityCommitted ActivityKind = "committed"
	ActivityPushed    ActivityKind = "pushed"
)

// MonitorAgentID is the synthetic agent identifier attached to events
// produced by the filesystem watcher rather than a named agent.
const MonitorAgentID = "file-monitor"

// ActivityEvent is a single recorded occurrence against a worktree: a file
// change observed by the monitor, or a version-control action recorded by
// the coordinator.
type ActivityEvent struct {
	ID           string       `json:"id" db:"id"`
	AgentID      string       `json:"agent_id" db:"agent_id"`
	WorktreeID   string       `json:"worktree_id" db:"worktree_id"`
	Kind         ActivityKind `json:"kind" db:"kind"`
	RelativePath string       `json:"relative_path,omitempty" db:"relative_path"`
	Description  string       `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
