// Package choreographer owns the opinionated on-disk layout: per-repository
// sync directories, dotfile symlink fan-in into newly materialised
// worktrees, and the one-time restructuring of a pre-existing checkout into
// that layout.
package choreographer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/constants"
)

const defaultCodingRules = "# Coding Rules\n\n## Style Guidelines\n\n## Best Practices\n"

const defaultStackSpecific = "# Stack-Specific Guidelines\n\n## Frontend\n\n## Backend\n\n## Database\n"

// EnsureSyncDirectories creates the repository's global and repo-scoped sync
// directories if missing and seeds the two default guideline files when
// they are not already present. It is a no-op when sync is disabled.
func EnsureSyncDirectories(cfg *config.Config, repo string) error {
	if !cfg.SyncSettings.Enabled {
		return nil
	}

	globalSync := config.SyncPath(cfg, repo, true)
	repoSync := config.SyncPath(cfg, repo, false)

	if err := os.MkdirAll(globalSync, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create global sync directory: %w", err)
	}
	if err := os.MkdirAll(repoSync, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create repo sync directory: %w", err)
	}

	if err := seedIfAbsent(filepath.Join(globalSync, constants.CodingRulesFileName), defaultCodingRules); err != nil {
		return err
	}
	if err := seedIfAbsent(filepath.Join(globalSync, constants.StackSpecificFileName), defaultStackSpecific); err != nil {
		return err
	}

	return nil
}

func seedIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), constants.FilePerm); err != nil {
		return fmt.Errorf("failed to seed %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("seeded default sync file")
	return nil
}
