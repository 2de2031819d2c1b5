package choreographer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/constants"
	imierrors "github.com/delorenj/imi/internal/errors"
)

// RestructurePlan describes the directory move a Restructure call is about
// to perform, so the caller can present it to the user before asking for
// consent.
type RestructurePlan struct {
	// Source is the existing repository checkout.
	Source string
	// Container is the new per-repository directory to create.
	Container string
	// TrunkPath is where Source will be moved to, inside Container.
	TrunkPath string
}

// String renders the plan as the three-step description surfaced to the
// user before they are asked to consent.
func (p RestructurePlan) String() string {
	return fmt.Sprintf(
		"1. Create container directory: %s\n2. Move current repository into: %s\n3. Register with imi",
		p.Container, p.TrunkPath,
	)
}

// Restructure moves an existing checkout at plan.Source into the opinionated
// <container>/trunk-<branch> layout. It backs the source tree up to a
// temporary location first; any failure triggers a rollback from that
// backup and the original tree is left untouched. The backup is deleted on
// success.
func Restructure(plan RestructurePlan) error {
	backup := filepath.Join(os.TempDir(), "imi-backup-"+filepath.Base(plan.Source))

	if err := copyTree(plan.Source, backup); err != nil {
		return fmt.Errorf("%w: creating restructure backup: %w", imierrors.ErrIOFailure, err)
	}

	if err := restructure(plan); err != nil {
		log.Error().Err(err).Str("backup", backup).Msg("restructuring failed, attempting rollback")
		if rbErr := rollback(backup, plan.Source); rbErr != nil {
			return fmt.Errorf("restructuring failed (%w) and rollback failed: %w; manual recovery required from backup at %s", err, rbErr, backup)
		}
		_ = os.RemoveAll(backup)
		return fmt.Errorf("restructuring failed, rolled back successfully: %w", err)
	}

	_ = os.RemoveAll(backup)
	return nil
}

func restructure(plan RestructurePlan) error {
	if err := os.MkdirAll(plan.Container, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create container directory: %w", err)
	}
	if err := os.Rename(plan.Source, plan.TrunkPath); err != nil {
		return fmt.Errorf("failed to move repository into trunk directory: %w", err)
	}
	return nil
}

func rollback(backup, original string) error {
	if parent := filepath.Dir(original); parent != "" {
		if entries, err := os.ReadDir(parent); err == nil && len(entries) <= 1 {
			if err := os.RemoveAll(parent); err != nil {
				return fmt.Errorf("failed to clear partial restructure state: %w", err)
			}
		}
	}
	return copyTree(backup, original)
}

// copyTree recursively copies src to dst, creating directories as needed.
func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, constants.DirPerm); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
