package coordinator

import (
	"context"
	"fmt"
	"os"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// CreateReview materialises a review worktree for pull request prNumber. It
// first tries the external PR-checkout tool; on failure it falls back to
// fetching the PR head ref manually and proceeding as an ordinary worktree
// creation.
func (c *Coordinator) CreateReview(ctx context.Context, repository string, prNumber int, agentID string) (*domain.Worktree, error) {
	spec := categorySpecs[domain.CategoryReview]

	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%d", prNumber)
	worktreeName := worktreeDirName(spec, name)
	targetPath := config.WorktreePath(c.cfg, repository, worktreeName)

	if existing, done, err := c.checkIdempotent(repository, worktreeName, targetPath); err != nil {
		return nil, err
	} else if done {
		return existing, nil
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)
	if _, err := os.Stat(trunkPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", imierrors.ErrTrunkNotFound, trunkPath)
	}

	if err := vcsrunner.CheckoutPR(ctx, trunkPath, targetPath, prNumber, c.cfg.GitSettings.RemoteName); err != nil {
		return nil, err
	}

	branch := fmt.Sprintf("pr-%d", prNumber)

	if err := c.finishMaterialization(repository, targetPath); err != nil {
		return nil, err
	}

	return c.reg.CreateWorktree(repository, worktreeName, branch, domain.CategoryReview, targetPath, agentID)
}
