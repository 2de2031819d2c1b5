package vcsrunner

import (
	"context"
	"fmt"
	"strings"

	"github.com/delorenj/imi/internal/errors"
)

// BranchExists reports whether a local branch named name exists in the
// repository at path.
func BranchExists(ctx context.Context, path, name string) (bool, error) {
	_, err := Run(ctx, path, "show-ref", "--verify", "refs/heads/"+name)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "exit status 1") || strings.Contains(errStr, "not a valid ref") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check branch existence: %w", err)
	}
	return true, nil
}

// Fetch downloads objects and refs from remote, optionally pruning
// stale remote-tracking refs.
func Fetch(ctx context.Context, path, remote string, prune bool) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"fetch", remote}
	if prune {
		args = append(args, "--prune")
	}
	if _, err := Run(ctx, path, args...); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// AddWorktree materializes a new worktree at worktreePath on branch,
// creating the branch from baseBranch if it does not already exist at the
// repository rooted at repoPath.
func AddWorktree(ctx context.Context, repoPath, worktreePath, branch, baseBranch string) error {
	exists, err := BranchExists(ctx, repoPath, branch)
	if err != nil {
		return fmt.Errorf("checking branch existence: %w", err)
	}

	var args []string
	if exists {
		args = []string{"worktree", "add", worktreePath, branch}
	} else {
		args = []string{"worktree", "add", "-b", branch, worktreePath}
		if baseBranch != "" {
			args = append(args, baseBranch)
		}
	}

	if _, err := Run(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to add worktree %s: %w", worktreePath, err)
	}
	return nil
}

// RemoveWorktree detaches worktreePath from the repository rooted at
// repoPath. force allows removal even with uncommitted changes.
func RemoveWorktree(ctx context.Context, repoPath, worktreePath string, force bool) error {
	args := []string{"worktree", "remove", worktreePath}
	if force {
		args = append(args, "--force")
	}
	if _, err := Run(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to remove worktree %s: %w", worktreePath, err)
	}
	return nil
}

// DeleteBranch deletes a local branch. force uses -D instead of -d.
func DeleteBranch(ctx context.Context, repoPath, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := Run(ctx, repoPath, "branch", flag, branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}

// DeleteRemoteBranch deletes branch on remote.
func DeleteRemoteBranch(ctx context.Context, repoPath, remote, branch string) error {
	if _, err := Run(ctx, repoPath, "push", remote, "--delete", branch); err != nil {
		return fmt.Errorf("failed to delete remote branch %s/%s: %w", remote, branch, err)
	}
	return nil
}

// PruneWorktrees removes administrative files for worktrees whose
// directories no longer exist.
func PruneWorktrees(ctx context.Context, repoPath string) error {
	if _, err := Run(ctx, repoPath, "worktree", "prune"); err != nil {
		return fmt.Errorf("failed to prune worktrees: %w", err)
	}
	return nil
}

// CheckoutPR materializes a review worktree for pull request number prNumber.
// It first tries `gh pr checkout --worktree` (requires a recent gh version);
// on failure it falls back to a manual fetch of the PR head ref followed by
// a plain worktree add.
func CheckoutPR(ctx context.Context, repoPath, worktreePath string, prNumber int, remote string) error {
	if remote == "" {
		remote = "origin"
	}

	_, ghErr := RunGH(ctx, repoPath, "pr", "checkout", fmt.Sprintf("%d", prNumber), "--worktree", worktreePath)
	if ghErr == nil {
		return nil
	}

	branch := fmt.Sprintf("pr-%d", prNumber)
	refSpec := fmt.Sprintf("pull/%d/head:%s", prNumber, branch)
	if _, err := Run(ctx, repoPath, "fetch", remote, refSpec); err != nil {
		return fmt.Errorf("%w: fetching pull request %d: %w", errors.ErrGitCommandFailed, prNumber, err)
	}

	if _, err := Run(ctx, repoPath, "worktree", "add", worktreePath, branch); err != nil {
		return fmt.Errorf("failed to add worktree for pull request %d: %w", prNumber, err)
	}
	return nil
}
