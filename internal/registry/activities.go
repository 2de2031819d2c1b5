package registry

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/delorenj/imi/internal/domain"
)

// LogActivity records a single activity event against a worktree.
func (r *Registry) LogActivity(agentID, worktreeID string, kind domain.ActivityKind, relativePath, description string) (*domain.ActivityEvent, error) {
	event := &domain.ActivityEvent{
		ID:           uuid.NewString(),
		AgentID:      agentID,
		WorktreeID:   worktreeID,
		Kind:         kind,
		RelativePath: relativePath,
		Description:  description,
		CreatedAt:    r.clock.Now().UTC(),
	}

	_, err := r.db.Exec(`
		INSERT INTO agent_activities (id, agent_id, worktree_id, kind, relative_path, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.AgentID, event.WorktreeID, string(event.Kind), event.RelativePath, event.Description, event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	return event, nil
}

// RecentActivities returns the most recent activity events, newest first,
// up to limit. When worktreeID is non-empty, results are restricted to that
// worktree.
func (r *Registry) RecentActivities(worktreeID string, limit int) ([]*domain.ActivityEvent, error) {
	var rows *sql.Rows
	var err error

	if worktreeID != "" {
		rows, err = r.db.Query(`
			SELECT id, agent_id, worktree_id, kind, relative_path, description, created_at
			FROM agent_activities WHERE worktree_id = ? ORDER BY created_at DESC, id ASC LIMIT ?
		`, worktreeID, limit)
	} else {
		rows, err = r.db.Query(`
			SELECT id, agent_id, worktree_id, kind, relative_path, description, created_at
			FROM agent_activities ORDER BY created_at DESC, id ASC LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.ActivityEvent
	for rows.Next() {
		var event domain.ActivityEvent
		var kind string
		if err := rows.Scan(&event.ID, &event.AgentID, &event.WorktreeID, &kind, &event.RelativePath, &event.Description, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		event.Kind = domain.ActivityKind(kind)
		events = append(events, &event)
	}
	return events, rows.Err()
}
