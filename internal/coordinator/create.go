package coordinator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/choreographer"
	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// CreateOptions parameterises the shared creation protocol used by every
// non-trunk category operation.
type CreateOptions struct {
	Category   domain.Category
	Name       string
	Repository string
	// BaseBranch overrides the branch a new branch is cut from. Empty means
	// the repository's default branch (or HEAD, when the branch does not
	// exist locally and no remote base can be determined).
	BaseBranch string
	// AgentID optionally attributes the worktree to an automation agent.
	AgentID string
}

// Create materialises a category worktree, idempotently returning the
// existing path when one is already active and present on disk.
func (c *Coordinator) Create(ctx context.Context, opts CreateOptions) (*domain.Worktree, error) {
	spec, ok := categorySpecs[opts.Category]
	if !ok || !spec.canCreate {
		return nil, fmt.Errorf("%w: category %q cannot be created directly", imierrors.ErrInvalidInput, opts.Category)
	}
	if strings.ContainsAny(opts.Name, `/\`) {
		return nil, fmt.Errorf("%w: worktree name %q contains a path separator", imierrors.ErrInvalidInput, opts.Name)
	}

	repo, err := c.reg.GetRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	worktreeName := worktreeDirName(spec, opts.Name)
	branch := branchName(spec, opts.Name)
	targetPath := config.WorktreePath(c.cfg, opts.Repository, worktreeName)

	if existing, done, err := c.checkIdempotent(opts.Repository, worktreeName, targetPath); err != nil {
		return nil, err
	} else if done {
		return existing, nil
	}

	trunkPath := config.TrunkPath(c.cfg, opts.Repository, repo.DefaultBranch)
	if _, err := os.Stat(trunkPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", imierrors.ErrTrunkNotFound, trunkPath)
	}

	if err := c.cleanStaleArtifacts(ctx, trunkPath, targetPath); err != nil {
		log.Warn().Err(err).Str("path", targetPath).Msg("failed to clean stale worktree artifacts, continuing")
	}

	if c.cfg.GitSettings.AutoFetch {
		if err := vcsrunner.Fetch(ctx, trunkPath, c.cfg.GitSettings.RemoteName, c.cfg.GitSettings.PruneOnFetch); err != nil {
			log.Warn().Err(err).Msg("auto-fetch failed, continuing with local refs")
		}
	}

	baseName := opts.BaseBranch
	if baseName == "" {
		baseName = repo.DefaultBranch
	}
	baseBranch := c.cfg.GitSettings.RemoteName + "/" + baseName
	if _, err := vcsrunner.Run(ctx, trunkPath, "rev-parse", "--verify", "--quiet", baseBranch); err != nil {
		baseBranch = ""
	}

	if err := vcsrunner.AddWorktree(ctx, trunkPath, targetPath, branch, baseBranch); err != nil {
		return nil, err
	}

	if err := c.finishMaterialization(opts.Repository, targetPath); err != nil {
		return nil, err
	}

	return c.reg.CreateWorktree(opts.Repository, worktreeName, branch, opts.Category, targetPath, opts.AgentID)
}

// checkIdempotent implements step 2 of the creation protocol: if an active
// record exists and its path exists, the create call is a no-op. If the
// record exists but the path has vanished, it is deactivated so a fresh one
// can be recorded.
func (c *Coordinator) checkIdempotent(repository, worktreeName, targetPath string) (*domain.Worktree, bool, error) {
	existing, err := c.reg.GetWorktree(repository, worktreeName)
	if err != nil {
		return nil, false, nil //nolint:nilerr // not-found is the expected path to proceed with creation
	}

	if _, statErr := os.Stat(targetPath); statErr == nil {
		return existing, true, nil
	}

	if err := c.reg.DeactivateWorktree(repository, worktreeName); err != nil {
		return nil, false, fmt.Errorf("failed to clear stale registry entry for %s: %w", worktreeName, err)
	}
	return nil, false, nil
}

// cleanStaleArtifacts prunes administrative worktree entries git itself
// considers stale and removes an orphaned directory at targetPath that is
// not a registered git worktree.
func (c *Coordinator) cleanStaleArtifacts(ctx context.Context, trunkPath, targetPath string) error {
	if err := vcsrunner.PruneWorktrees(ctx, trunkPath); err != nil {
		return err
	}

	if _, err := os.Stat(targetPath); err != nil {
		return nil
	}

	worktrees, err := vcsrunner.ListWorktrees(ctx, trunkPath)
	if err != nil {
		return err
	}
	for _, wt := range worktrees {
		if wt.Path == targetPath {
			return nil
		}
	}

	log.Info().Str("path", targetPath).Msg("removing orphaned worktree directory")
	return os.RemoveAll(targetPath)
}

// finishMaterialization runs the filesystem choreographer's sync-directory
// and symlink steps after the git worktree has been created.
func (c *Coordinator) finishMaterialization(repository, targetPath string) error {
	if err := choreographer.EnsureSyncDirectories(c.cfg, repository); err != nil {
		return err
	}
	return choreographer.InstallSymlinks(c.cfg, repository, targetPath)
}
