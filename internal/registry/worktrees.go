package registry

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
)

// CreateWorktree registers a new worktree under repositoryName. The pair
// (repositoryName, name) must be unique among active worktrees.
func (r *Registry) CreateWorktree(repositoryName, name, branch string, category domain.Category, path, agentID string) (*domain.Worktree, error) {
	now := r.clock.Now().UTC()
	wt := &domain.Worktree{
		ID:             uuid.NewString(),
		RepositoryName: repositoryName,
		Name:           name,
		Branch:         branch,
		Category:       category,
		Path:           path,
		AgentID:        agentID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := r.db.Exec(`
		INSERT INTO worktrees (id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, wt.ID, wt.RepositoryName, wt.Name, wt.Branch, string(wt.Category), wt.Path, wt.AgentID, wt.Active, wt.CreatedAt, wt.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imierrors.ErrReferentialIntegrity, err)
	}

	return wt, nil
}

// GetWorktree fetches an active worktree by repository name and worktree name.
func (r *Registry) GetWorktree(repositoryName, name string) (*domain.Worktree, error) {
	row := r.db.QueryRow(`
		SELECT id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at
		FROM worktrees WHERE repository_name = ? AND name = ? AND active = 1
	`, repositoryName, name)

	wt, err := scanWorktree(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", imierrors.ErrWorktreeNotFound, repositoryName, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worktree %s/%s: %w", repositoryName, name, err)
	}
	return wt, nil
}

// GetWorktreeByID fetches an active worktree by its primary key.
func (r *Registry) GetWorktreeByID(id string) (*domain.Worktree, error) {
	row := r.db.QueryRow(`
		SELECT id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at
		FROM worktrees WHERE id = ? AND active = 1
	`, id)

	wt, err := scanWorktree(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", imierrors.ErrWorktreeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worktree %s: %w", id, err)
	}
	return wt, nil
}

// FindWorktreeByPath looks up the active worktree whose recorded path
// matches exactly. Used by the activity monitor to resolve a filesystem
// event back to its owning worktree.
func (r *Registry) FindWorktreeByPath(path string) (*domain.Worktree, error) {
	row := r.db.QueryRow(`
		SELECT id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at
		FROM worktrees WHERE path = ? AND active = 1
	`, path)

	wt, err := scanWorktree(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", imierrors.ErrWorktreeNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worktree at %s: %w", path, err)
	}
	return wt, nil
}

// ListWorktrees returns active worktrees. When repositoryName is non-empty,
// results are restricted to that repository.
func (r *Registry) ListWorktrees(repositoryName string) ([]*domain.Worktree, error) {
	var rows *sql.Rows
	var err error

	if repositoryName != "" {
		rows, err = r.db.Query(`
			SELECT id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at
			FROM worktrees WHERE repository_name = ? AND active = 1 ORDER BY created_at DESC, id ASC
		`, repositoryName)
	} else {
		rows, err = r.db.Query(`
			SELECT id, repository_name, name, branch, category, path, agent_id, active, created_at, updated_at
			FROM worktrees WHERE active = 1 ORDER BY created_at DESC, id ASC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var worktrees []*domain.Worktree
	for rows.Next() {
		wt, err := scanWorktree(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worktree row: %w", err)
		}
		worktrees = append(worktrees, wt)
	}
	return worktrees, rows.Err()
}

// DeactivateWorktree soft-deletes a worktree. It does not touch the
// filesystem; callers invoke this after (or instead of) removing the
// worktree directory and branch. It is idempotent: when no active worktree
// matches, it succeeds without changing anything.
func (r *Registry) DeactivateWorktree(repositoryName, name string) error {
	now := r.clock.Now().UTC()
	_, err := r.db.Exec(`
		UPDATE worktrees SET active = 0, updated_at = ? WHERE repository_name = ? AND name = ? AND active = 1
	`, now, repositoryName, name)
	if err != nil {
		return fmt.Errorf("failed to deactivate worktree %s/%s: %w", repositoryName, name, err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorktree(row rowScanner) (*domain.Worktree, error) {
	var wt domain.Worktree
	var category string
	err := row.Scan(&wt.ID, &wt.RepositoryName, &wt.Name, &wt.Branch, &category, &wt.Path, &wt.AgentID, &wt.Active, &wt.CreatedAt, &wt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	wt.Category = domain.Category(category)
	return &wt, nil
}
