package registry

import (
	"fmt"
	"os"
	"time"

	"github.com/delorenj/imi/internal/constants"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/flock"
)

// fileLock holds an exclusive advisory lock on a sidecar file next to the
// registry database, serializing access across separate imi process
// invocations. SQLite already guards the database file itself; this lock
// additionally protects the read-check-then-write sequences coordinator
// operations perform across multiple registry calls (e.g. idempotency
// checks before CreateWorktree).
type fileLock struct {
	file *os.File
}

// acquireLock opens (creating if necessary) path and blocks, retrying at a
// short interval, until it acquires an exclusive lock or timeout elapses.
func acquireLock(path string, timeout time.Duration) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, constants.FilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	interval := 50 * time.Millisecond

	for {
		if err := flock.Exclusive(file.Fd()); err == nil {
			return &fileLock{file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: after %v", imierrors.ErrRegistryLocked, timeout)
		}

		time.Sleep(interval)
	}
}

// release unlocks and closes the underlying lock file.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = flock.Unlock(l.file.Fd())
	return l.file.Close()
}
