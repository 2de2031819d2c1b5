package coordinator

import (
	"context"
	"os"

	"github.com/delorenj/imi/internal/domain"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// WorktreeStatus pairs a registry record with a live version-control status
// snapshot when the worktree's filesystem path still exists.
type WorktreeStatus struct {
	Worktree  domain.Worktree
	Live      bool
	VCSStatus *vcsrunner.Status
}

// List enumerates active worktrees, optionally restricted to one
// repository, in creation order (newest first, as returned by the
// registry), annotating each with a live status snapshot when its path
// still exists on disk.
func (c *Coordinator) List(ctx context.Context, repository string) ([]WorktreeStatus, error) {
	worktrees, err := c.reg.ListWorktrees(repository)
	if err != nil {
		return nil, err
	}

	statuses := make([]WorktreeStatus, 0, len(worktrees))
	for _, wt := range worktrees {
		entry := WorktreeStatus{Worktree: *wt}

		if _, statErr := os.Stat(wt.Path); statErr == nil {
			entry.Live = true
			if vcsStatus, err := vcsrunner.GetStatus(ctx, wt.Path); err == nil {
				entry.VCSStatus = vcsStatus
			}
		}

		statuses = append(statuses, entry)
	}
	return statuses, nil
}

// Status is an alias for List scoped to a single repository, used by the
// `status` command to summarise one repository's worktrees.
func (c *Coordinator) Status(ctx context.Context, repository string) ([]WorktreeStatus, error) {
	return c.List(ctx, repository)
}
