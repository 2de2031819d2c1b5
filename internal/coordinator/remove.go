package coordinator

import (
	"context"
	"fmt"

	"github.com/delorenj/imi/internal/config"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// RemoveOptions controls branch cleanup during Remove and Close.
// KeepRemote requires KeepBranch; specifying it alone is rejected.
type RemoveOptions struct {
	KeepBranch bool
	KeepRemote bool
}

func (o RemoveOptions) validate() error {
	if o.KeepRemote && !o.KeepBranch {
		return fmt.Errorf("%w: --keep-remote requires --keep-branch", imierrors.ErrConflictingFlags)
	}
	return nil
}

// Remove locates repository's worktree named name, prunes its
// administrative entry and filesystem directory, and deactivates its
// registry record. Branch cleanup follows RemoveOptions: by default both the
// local and remote branch are deleted; divergence is never auto-resolved
// (the local branch is force-deleted regardless, matching `git branch -D`).
func (c *Coordinator) Remove(ctx context.Context, repository, name string, opts RemoveOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return err
	}
	wt, err := c.reg.GetWorktree(repository, name)
	if err != nil {
		return err
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)

	if err := vcsrunner.RemoveWorktree(ctx, trunkPath, wt.Path, true); err != nil {
		return err
	}

	if err := c.cleanupBranch(ctx, trunkPath, wt.Branch, opts); err != nil {
		return err
	}

	return c.reg.DeactivateWorktree(repository, name)
}

// Close abandons repository's worktree named name: it performs the same
// registry deactivation and branch-cleanup flag handling as Remove, but
// never deletes the worktree directory or its git administrative entry.
// Prune does not reclaim that directory either: it only drops git entries
// whose directories are already gone.
func (c *Coordinator) Close(ctx context.Context, repository, name string, opts RemoveOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return err
	}
	wt, err := c.reg.GetWorktree(repository, name)
	if err != nil {
		return err
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)

	if err := c.cleanupBranch(ctx, trunkPath, wt.Branch, opts); err != nil {
		return err
	}

	return c.reg.DeactivateWorktree(repository, name)
}

func (c *Coordinator) cleanupBranch(ctx context.Context, trunkPath, branch string, opts RemoveOptions) error {
	if !opts.KeepBranch {
		if err := vcsrunner.DeleteBranch(ctx, trunkPath, branch, true); err != nil {
			return err
		}
	}
	if !opts.KeepRemote {
		if err := vcsrunner.DeleteRemoteBranch(ctx, trunkPath, c.cfg.GitSettings.RemoteName, branch); err != nil {
			return err
		}
	}
	return nil
}
