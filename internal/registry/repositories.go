package registry

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	imierrors "github.com/delorenj/imi/internal/errors"

	"github.com/delorenj/imi/internal/domain"
)

// CreateRepository registers a new repository. name must be unique among
// active and inactive repositories alike, and a non-empty remoteURL must not
// belong to another active repository; a collision returns
// ErrReferentialIntegrity.
func (r *Registry) CreateRepository(name, rootPath, remoteURL, defaultBranch string) (*domain.Repository, error) {
	if remoteURL != "" {
		var n int
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM repositories WHERE remote_url = ? AND active = 1`, remoteURL).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to check remote URL uniqueness: %w", err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: remote URL %s is already registered", imierrors.ErrReferentialIntegrity, remoteURL)
		}
	}

	now := r.clock.Now().UTC()
	repo := &domain.Repository{
		ID:            uuid.NewString(),
		Name:          name,
		RootPath:      rootPath,
		RemoteURL:     remoteURL,
		DefaultBranch: defaultBranch,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := r.db.Exec(`
		INSERT INTO repositories (id, name, root_path, remote_url, default_branch, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, repo.ID, repo.Name, repo.RootPath, repo.RemoteURL, repo.DefaultBranch, repo.Active, repo.CreatedAt, repo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imierrors.ErrReferentialIntegrity, err)
	}

	return repo, nil
}

// GetRepository fetches an active repository by name.
func (r *Registry) GetRepository(name string) (*domain.Repository, error) {
	row := r.db.QueryRow(`
		SELECT id, name, root_path, remote_url, default_branch, active, created_at, updated_at
		FROM repositories WHERE name = ? AND active = 1
	`, name)

	var repo domain.Repository
	err := row.Scan(&repo.ID, &repo.Name, &repo.RootPath, &repo.RemoteURL, &repo.DefaultBranch, &repo.Active, &repo.CreatedAt, &repo.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", imierrors.ErrRepositoryNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s: %w", name, err)
	}

	return &repo, nil
}

// ListRepositories returns every active repository ordered by name.
func (r *Registry) ListRepositories() ([]*domain.Repository, error) {
	rows, err := r.db.Query(`
		SELECT id, name, root_path, remote_url, default_branch, active, created_at, updated_at
		FROM repositories WHERE active = 1 ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var repos []*domain.Repository
	for rows.Next() {
		var repo domain.Repository
		if err := rows.Scan(&repo.ID, &repo.Name, &repo.RootPath, &repo.RemoteURL, &repo.DefaultBranch, &repo.Active, &repo.CreatedAt, &repo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan repository row: %w", err)
		}
		repos = append(repos, &repo)
	}
	return repos, rows.Err()
}

// DeactivateRepository soft-deletes a repository by name. It does not touch
// the filesystem or cascade to the repository's worktrees; callers are
// expected to have already closed or removed them.
func (r *Registry) DeactivateRepository(name string) error {
	now := r.clock.Now().UTC()
	result, err := r.db.Exec(`
		UPDATE repositories SET active = 0, updated_at = ? WHERE name = ? AND active = 1
	`, now, name)
	if err != nil {
		return fmt.Errorf("failed to deactivate repository %s: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm repository deactivation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", imierrors.ErrRepositoryNotFound, name)
	}
	return nil
}

// TouchRepository updates a repository's remote URL and default branch and
// bumps its updated_at timestamp. Used by sync to reconcile drift against
// the actual git remote configuration.
func (r *Registry) TouchRepository(name, remoteURL, defaultBranch string) error {
	now := r.clock.Now().UTC()
	result, err := r.db.Exec(`
		UPDATE repositories SET remote_url = ?, default_branch = ?, updated_at = ?
		WHERE name = ? AND active = 1
	`, remoteURL, defaultBranch, now, name)
	if err != nil {
		return fmt.Errorf("failed to update repository %s: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm repository update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", imierrors.ErrRepositoryNotFound, name)
	}
	return nil
}
