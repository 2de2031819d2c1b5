package coordinator

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// Prune delegates to the version-control subsystem's stale-reference
// cleanup, then deactivates any registry entry whose filesystem path no
// longer exists.
func (c *Coordinator) Prune(ctx context.Context, repository string) error {
	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return err
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)
	if err := vcsrunner.PruneWorktrees(ctx, trunkPath); err != nil {
		return err
	}

	worktrees, err := c.reg.ListWorktrees(repository)
	if err != nil {
		return err
	}

	for _, wt := range worktrees {
		if _, statErr := os.Stat(wt.Path); os.IsNotExist(statErr) {
			log.Info().Str("path", wt.Path).Msg("deactivating registry entry for vanished worktree")
			if err := c.reg.DeactivateWorktree(repository, wt.Name); err != nil {
				return err
			}
		}
	}

	return nil
}
