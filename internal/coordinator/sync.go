package coordinator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// Sync reconciles the registry against the actual git worktree list for
// repository: registry entries whose directory `git worktree list` no
// longer reports are deactivated, and worktrees git reports that the
// registry doesn't know about are inserted using the same naming inference
// applied to category directories.
func (c *Coordinator) Sync(ctx context.Context, repository string) error {
	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return err
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)
	gitWorktrees, err := vcsrunner.ListWorktrees(ctx, trunkPath)
	if err != nil {
		return err
	}

	gitPaths := make(map[string]bool, len(gitWorktrees))
	for _, wt := range gitWorktrees {
		gitPaths[wt.Path] = true
	}

	registered, err := c.reg.ListWorktrees(repository)
	if err != nil {
		return err
	}
	registeredPaths := make(map[string]bool, len(registered))
	for _, wt := range registered {
		registeredPaths[wt.Path] = true
		if !gitPaths[wt.Path] {
			log.Info().Str("path", wt.Path).Msg("deactivating registry entry no longer reported by git")
			if err := c.reg.DeactivateWorktree(repository, wt.Name); err != nil {
				return err
			}
		}
	}

	for _, wt := range gitWorktrees {
		if registeredPaths[wt.Path] || wt.Path == trunkPath {
			continue
		}

		dirName := filepath.Base(wt.Path)
		cat, _, ok := inferCategoryFromDirName(dirName)
		if !ok {
			log.Warn().Str("path", wt.Path).Msg("skipping unrecognized worktree directory during sync")
			continue
		}

		if _, err := c.reg.CreateWorktree(repository, dirName, wt.Branch, cat, wt.Path, ""); err != nil {
			return fmt.Errorf("failed to adopt worktree %s during sync: %w", dirName, err)
		}
	}

	return nil
}
