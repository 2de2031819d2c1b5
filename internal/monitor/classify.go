package monitor

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/delorenj/imi/internal/domain"
)

// classify maps an fsnotify operation to an activity kind. Rename and Chmod
// are dropped: a rename surfaces as a paired create/remove on most platforms,
// and permission-only changes aren't meaningful worktree activity.
func classify(op fsnotify.Op) (domain.ActivityKind, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return domain.ActivityCreated, true
	case op&fsnotify.Write == fsnotify.Write:
		return domain.ActivityModified, true
	case op&fsnotify.Remove == fsnotify.Remove:
		return domain.ActivityDeleted, true
	default:
		return "", false
	}
}

// isIgnorable reports whether a relative path should never generate an
// activity event: dotfiles are noise, except .env files, which are the kind
// of change an agent working on configuration actually cares about.
func isIgnorable(relPath string) bool {
	name := filepath.Base(relPath)
	if !strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.HasPrefix(name, ".env")
}
