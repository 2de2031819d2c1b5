package choreographer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/config"
	imierrors "github.com/delorenj/imi/internal/errors"
)

// InstallSymlinks fans the configured symlink files in from the repository's
// repo-scoped sync directory into worktreePath, skipping any entry whose
// source is absent or whose target already exists. It is a no-op when sync
// is disabled.
func InstallSymlinks(cfg *config.Config, repo, worktreePath string) error {
	if !cfg.SyncSettings.Enabled {
		return nil
	}

	repoSync := config.SyncPath(cfg, repo, false)

	for _, fileName := range cfg.SymlinkFiles {
		source := filepath.Join(repoSync, fileName)
		target := filepath.Join(worktreePath, fileName)

		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("%w: creating parent of %s: %w", imierrors.ErrSymlinkCreationFailed, target, err)
		}

		if _, err := os.Stat(source); os.IsNotExist(err) {
			continue
		}
		if _, err := os.Lstat(target); err == nil {
			continue
		}

		if err := os.Symlink(source, target); err != nil {
			return fmt.Errorf("%w: %s -> %s: %w", imierrors.ErrSymlinkCreationFailed, target, source, err)
		}
		log.Info().Str("target", target).Str("source", source).Msg("created symlink")
	}

	return nil
}
