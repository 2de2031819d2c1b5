package coordinator

import (
	"fmt"
	"os"

	"github.com/delorenj/imi/internal/config"
	imierrors "github.com/delorenj/imi/internal/errors"
)

// GetTrunkWorktree returns the path to repository's trunk worktree. Unlike
// the other category operations, trunk is never created by the coordinator:
// it is discovered at registration time and fails here if missing.
func (c *Coordinator) GetTrunkWorktree(repository string) (string, error) {
	repo, err := c.reg.GetRepository(repository)
	if err != nil {
		return "", err
	}

	trunkPath := config.TrunkPath(c.cfg, repository, repo.DefaultBranch)
	if _, err := os.Stat(trunkPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", imierrors.ErrTrunkNotFound, trunkPath)
	}
	return trunkPath, nil
}
