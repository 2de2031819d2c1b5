package coordinator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/delorenj/imi/internal/vcsrunner"
)

// ResolveRepositoryName determines which repository a command applies to
// when the user did not name one explicitly. It tries, in order:
//  1. The remote-derived short name of the git repository rooted at or
//     above cwd.
//  2. If cwd looks like a worktree directory ("<category>-<name>"), the
//     name of its parent directory.
//  3. The base name of cwd itself.
func ResolveRepositoryName(ctx context.Context, explicit, cwd string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if info, err := vcsrunner.DetectRepo(ctx, cwd); err == nil {
		root := info.Root
		if name := shortNameFromRemote(info.RemoteURL); name != "" {
			return name, nil
		}
		return filepath.Base(root), nil
	}

	base := filepath.Base(cwd)
	if _, _, ok := inferCategoryFromDirName(base); ok {
		return filepath.Base(filepath.Dir(cwd)), nil
	}

	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("could not resolve a repository name from %s", cwd)
	}
	return base, nil
}

// shortNameFromRemote derives a repository's short name from its remote URL:
// the last path segment, with any ".git" suffix stripped.
func shortNameFromRemote(remoteURL string) string {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return ""
	}

	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	idx := strings.LastIndexAny(remoteURL, "/:")
	if idx == -1 || idx == len(remoteURL)-1 {
		return ""
	}
	return remoteURL[idx+1:]
}
