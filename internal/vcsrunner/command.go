// Package vcsrunner wraps the git and gh command-line tools for worktree
// materialization. Every operation shells out rather than using a git
// library: worktree add/remove semantics are simplest to get right by
// delegating to the real git porcelain.
package vcsrunner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/delorenj/imi/internal/ctxutil"
	"github.com/delorenj/imi/internal/errors"
)

// Run executes a git command in workDir and returns its trimmed stdout.
// Interactive credential prompts are disabled so network failures surface
// as errors rather than hanging the process.
func Run(ctx context.Context, workDir string, args ...string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	return runTool(ctx, workDir, "git", args...)
}

// RunGH executes a gh (GitHub CLI) command in workDir and returns its
// trimmed stdout.
func RunGH(ctx context.Context, workDir string, args ...string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	return runTool(ctx, workDir, "gh", args...)
}

func runTool(ctx context.Context, workDir, tool string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, tool, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s %s failed: %s: %w", tool, firstArg(args), strings.TrimSpace(stderr.String()), errors.ErrGitCommandFailed)
		}
		return "", fmt.Errorf("%s %s failed: %w", tool, firstArg(args), errors.ErrGitCommandFailed)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
