package vcsrunner

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/delorenj/imi/internal/errors"
)

// RepoInfo describes the git repository rooted at a given path.
type RepoInfo struct {
	// Root is the absolute path to the main repository root (not a linked
	// worktree, even when detection started inside one).
	Root string

	// WorktreePath is the toplevel of the working tree detection started in.
	WorktreePath string

	// IsWorktree indicates whether detection started inside a linked worktree.
	IsWorktree bool

	// CommonDir is the path to the shared .git directory.
	CommonDir string

	// DefaultBranch is the repository's configured default branch, derived
	// from the remote HEAD symbolic ref when available.
	DefaultBranch string

	// RemoteURL is the configured URL of the default remote.
	RemoteURL string
}

// WorktreeEntry describes one entry from `git worktree list --porcelain`.
type WorktreeEntry struct {
	Path       string
	Branch     string
	Head       string
	IsPrunable bool
	IsLocked   bool
}

// DetectRepo returns information about the git repository at path, resolving
// worktree vs. main-repo root distinctions via git rev-parse.
func DetectRepo(ctx context.Context, path string) (*RepoInfo, error) {
	toplevel, err := Run(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrNotGitRepo, err)
	}

	gitDir, err := Run(ctx, path, "rev-parse", "--git-dir")
	if err != nil {
		return nil, err
	}

	isWorktree := strings.Contains(gitDir, "worktrees/") || strings.Contains(gitDir, "worktrees\\")

	info := &RepoInfo{
		WorktreePath: toplevel,
		IsWorktree:   isWorktree,
	}

	if isWorktree {
		commonDir, cerr := Run(ctx, path, "rev-parse", "--git-common-dir")
		if cerr != nil {
			return nil, cerr
		}
		if !filepath.IsAbs(commonDir) {
			commonDir = filepath.Join(path, commonDir)
		}
		commonDir = filepath.Clean(commonDir)
		info.CommonDir = commonDir
		info.Root = filepath.Dir(commonDir)
	} else {
		info.Root = toplevel
		info.CommonDir = filepath.Join(toplevel, ".git")
	}

	info.DefaultBranch = detectDefaultBranch(ctx, path)
	info.RemoteURL, _ = Run(ctx, path, "remote", "get-url", "origin") //nolint:errcheck // remote is optional

	return info, nil
}

// detectDefaultBranch inspects origin/HEAD, falling back to the current
// branch, and finally to "main" when neither is available.
func detectDefaultBranch(ctx context.Context, path string) string {
	if ref, err := Run(ctx, path, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		return strings.TrimPrefix(ref, "refs/remotes/origin/")
	}
	if branch, err := Run(ctx, path, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && branch != "HEAD" {
		return branch
	}
	return "main"
}

// ListWorktrees returns every worktree registered against the repository at path.
func ListWorktrees(ctx context.Context, path string) ([]WorktreeEntry, error) {
	output, err := Run(ctx, path, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return parseWorktreeListOutput(output), nil
}

// FindWorktreeByName locates a worktree whose directory name equals name or
// ends with "-<name>".
func FindWorktreeByName(ctx context.Context, path, name string) (*WorktreeEntry, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: worktree name", errors.ErrEmptyValue)
	}

	worktrees, err := ListWorktrees(ctx, path)
	if err != nil {
		return nil, err
	}

	for i := range worktrees {
		wt := &worktrees[i]
		base := filepath.Base(wt.Path)
		if base == name || strings.HasSuffix(base, "-"+name) {
			return wt, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", errors.ErrWorktreeNotFound, name)
}

func parseWorktreeListOutput(output string) []WorktreeEntry {
	var worktrees []WorktreeEntry
	var current *WorktreeEntry

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				worktrees = append(worktrees, *current)
			}
			current = &WorktreeEntry{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD ") && current != nil:
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch ") && current != nil:
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "prunable" && current != nil:
			current.IsPrunable = true
		case strings.HasPrefix(line, "locked") && current != nil:
			current.IsLocked = true
		}
	}
	if current != nil {
		worktrees = append(worktrees, *current)
	}
	return worktrees
}

// Status summarizes a worktree's working-tree state.
type Status struct {
	Branch    string
	Ahead     int
	Behind    int
	Modified  int
	Untracked int
	Deleted   int
}

// GetStatus parses `git status --porcelain -uall --branch` for path.
func GetStatus(ctx context.Context, path string) (*Status, error) {
	output, err := Run(ctx, path, "status", "--porcelain", "-uall", "--branch")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parseStatus(output), nil
}

func parseStatus(output string) *Status {
	status := &Status{}

	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}
		if strings.HasPrefix(line, "## ") {
			parseBranchLine(line, status)
			continue
		}

		indexStatus, workTreeStatus := line[0], line[1]
		switch {
		case indexStatus == '?' && workTreeStatus == '?':
			status.Untracked++
		case indexStatus == 'D' || workTreeStatus == 'D':
			status.Deleted++
		default:
			status.Modified++
		}
	}
	return status
}

func parseBranchLine(line string, status *Status) {
	line = strings.TrimPrefix(line, "## ")
	parts := strings.SplitN(line, "...", 2)
	status.Branch = parts[0]
	if len(parts) < 2 {
		return
	}

	remotePart := parts[1]
	bracketStart := strings.Index(remotePart, " [")
	if bracketStart == -1 || len(remotePart) < bracketStart+4 || remotePart[len(remotePart)-1] != ']' {
		return
	}

	info := remotePart[bracketStart+2 : len(remotePart)-1]
	status.Ahead = parseAheadBehind(info, "ahead ")
	status.Behind = parseAheadBehind(info, "behind ")
}

func parseAheadBehind(info, prefix string) int {
	idx := strings.Index(info, prefix)
	if idx == -1 {
		return 0
	}
	numStr := info[idx+len(prefix):]
	if comma := strings.Index(numStr, ","); comma != -1 {
		numStr = numStr[:comma]
	}
	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return 0
	}
	return n
}
