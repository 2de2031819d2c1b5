package coordinator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/delorenj/imi/internal/choreographer"
	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// RegisterOptions controls Register's handling of a pre-existing, non-opinionated checkout.
type RegisterOptions struct {
	// Force re-registers even when a repository of the same name is already active.
	Force bool
	// Consent authorizes an automatic restructuring into the opinionated
	// layout. Without it, Register fails and names the restructuring it
	// would have performed.
	Consent bool
}

// Register brings a repository under imi's management. When repoArg names a
// bare name, "owner/name", or an https GitHub URL, it is cloned directly
// into the opinionated layout. Otherwise the current working directory is
// registered in place, restructured into <container>/trunk-<branch> first
// if it is not already laid out that way.
func (c *Coordinator) Register(ctx context.Context, repoArg, cwd string, opts RegisterOptions) (*domain.Repository, error) {
	if repoArg != "" {
		if _, statErr := os.Stat(repoArg); statErr != nil {
			return c.registerByClone(ctx, repoArg, opts)
		}
		cwd = repoArg
	}

	return c.registerInPlace(ctx, cwd, opts)
}

func (c *Coordinator) registerByClone(ctx context.Context, repoArg string, opts RegisterOptions) (*domain.Repository, error) {
	sshURL, _, name, err := vcsrunner.ResolveCloneURL(repoArg, c.cfg.GitHubSettings.DefaultOwner)
	if err != nil {
		return nil, err
	}

	trunkPath := config.TrunkPath(c.cfg, name, c.cfg.GitSettings.DefaultBranch)
	if err := vcsrunner.Clone(ctx, sshURL, trunkPath); err != nil {
		return nil, fmt.Errorf("%w: authentication or network failure cloning %s; verify SSH key or credential helper setup", err, sshURL)
	}

	return c.finishRegistration(name, trunkPath, opts)
}

func (c *Coordinator) registerInPlace(ctx context.Context, cwd string, opts RegisterOptions) (*domain.Repository, error) {
	info, err := vcsrunner.DetectRepo(ctx, cwd)
	if err != nil {
		return nil, err
	}

	name := shortNameFromRemote(info.RemoteURL)
	if name == "" {
		name = filepath.Base(info.Root)
	}

	if filepath.Base(info.Root) == "trunk-"+info.DefaultBranch {
		return c.finishRegistration(name, info.Root, opts)
	}

	container := config.RepoPath(c.cfg, name)
	trunkPath := config.TrunkPath(c.cfg, name, info.DefaultBranch)

	plan := choreographer.RestructurePlan{Source: info.Root, Container: container, TrunkPath: trunkPath}
	if !opts.Consent {
		return nil, fmt.Errorf("%w: restructuring required but not consented to:\n%s", imierrors.ErrOperationCanceled, plan.String())
	}

	if err := choreographer.Restructure(plan); err != nil {
		return nil, err
	}

	return c.finishRegistration(name, trunkPath, opts)
}

func (c *Coordinator) finishRegistration(name, trunkPath string, opts RegisterOptions) (*domain.Repository, error) {
	info, err := vcsrunner.DetectRepo(context.Background(), trunkPath)
	if err != nil {
		return nil, err
	}

	if existing, getErr := c.reg.GetRepository(name); getErr == nil {
		if !opts.Force {
			return existing, nil
		}
		if err := c.reg.TouchRepository(name, info.RemoteURL, info.DefaultBranch); err != nil {
			return nil, err
		}
		return c.reg.GetRepository(name)
	}

	return c.reg.CreateRepository(name, trunkPath, info.RemoteURL, info.DefaultBranch)
}
