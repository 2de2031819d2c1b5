// Package monitor implements the activity watcher: a debounced fsnotify
// pipeline that resolves filesystem events back to the worktree they
// occurred in, filters noise, and logs the survivors to the registry. A
// second goroutine periodically summarizes recent activity.
package monitor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/constants"
	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/registry"
)

// ignoredDirNames are never descended into when installing recursive watches.
var ignoredDirNames = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Monitor watches every active worktree's filesystem for changes and
// records a debounced activity trail in the registry.
type Monitor struct {
	reg     *registry.Registry
	cfg     *config.Config
	watcher *fsnotify.Watcher

	mu          sync.Mutex
	watchedDirs map[string]string // watched directory -> owning worktree path
	lastEmitted map[string]time.Time

	stopCh chan struct{}
	group  *errgroup.Group
}

// New constructs a Monitor over reg and cfg. It does not start watching
// until Start is called.
func New(reg *registry.Registry, cfg *config.Config) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imierrors.ErrWatcherFailed, err)
	}

	return &Monitor{
		reg:         reg,
		cfg:         cfg,
		watcher:     watcher,
		watchedDirs: make(map[string]string),
		lastEmitted: make(map[string]time.Time),
		stopCh:      make(chan struct{}),
	}, nil
}

// Start installs watches on every active worktree and launches the event and
// summary loops. It returns once the initial watch set has been installed;
// the loops themselves run until ctx is canceled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	if !m.cfg.MonitoringSettings.Enabled {
		log.Info().Msg("activity monitor disabled by configuration")
		return nil
	}

	worktrees, err := m.reg.ListWorktrees("")
	if err != nil {
		return fmt.Errorf("failed to list worktrees for monitoring: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	m.group = g

	if m.cfg.MonitoringSettings.WatchFileChanges {
		for _, wt := range worktrees {
			if err := m.watchWorktree(wt.Path); err != nil {
				log.Warn().Err(err).Str("path", wt.Path).Msg("failed to install watch for worktree")
			}
		}

		g.Go(func() error {
			m.eventLoop(gctx)
			return nil
		})
	}

	if m.cfg.MonitoringSettings.RefreshInterval() > 0 {
		g.Go(func() error {
			m.summaryLoop(gctx)
			return nil
		})
	}

	return nil
}

// Stop closes the underlying watcher and waits for both loops to exit.
func (m *Monitor) Stop() error {
	close(m.stopCh)
	err := m.watcher.Close()
	if m.group != nil {
		_ = m.group.Wait()
	}
	return err
}

// watchWorktree recursively installs fsnotify watches rooted at path,
// skipping .git and common build-output directories.
func (m *Monitor) watchWorktree(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", imierrors.ErrWatcherFailed, path)
	}

	return filepath.WalkDir(path, func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if ignoredDirNames[d.Name()] {
			return filepath.SkipDir
		}
		if err := m.watcher.Add(entryPath); err != nil {
			log.Debug().Err(err).Str("path", entryPath).Msg("failed to watch directory")
			return nil
		}

		m.mu.Lock()
		m.watchedDirs[entryPath] = path
		m.mu.Unlock()
		return nil
	})
}

func (m *Monitor) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleEvent(event)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("filesystem watcher error")
		}
	}
}

func (m *Monitor) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := m.watchWorktree(event.Name); err != nil {
				log.Debug().Err(err).Str("path", event.Name).Msg("failed to extend watch to new directory")
			}
		}
	}

	kind, ok := classify(event.Op)
	if !ok {
		return
	}

	worktreePath, relPath, ok := m.resolve(event.Name)
	if !ok {
		return
	}

	if isIgnorable(relPath) {
		return
	}

	if !m.shouldEmit(worktreePath, relPath) {
		return
	}

	wt, err := m.reg.FindWorktreeByPath(worktreePath)
	if err != nil {
		log.Debug().Err(err).Str("path", worktreePath).Msg("activity event for unregistered worktree")
		return
	}

	description := fmt.Sprintf("File %s: %s", kind, relPath)
	if _, err := m.reg.LogActivity(domain.MonitorAgentID, wt.ID, kind, relPath, description); err != nil {
		log.Warn().Err(err).Str("worktree", wt.Name).Msg("failed to log activity event")
		return
	}
	log.Info().Str("worktree", wt.Name).Msg(description)
}

// resolve maps a changed filesystem path back to the worktree root that
// contains it and the path relative to that root. Among the watched
// directories that contain the change, it picks the one whose owning
// worktree root is longest, since nested worktrees are not expected but a
// worst-case ancestor match should never be wrong.
func (m *Monitor) resolve(changedPath string) (worktreePath, relPath string, ok bool) {
	dir := filepath.Dir(changedPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	var best string
	for watched, owner := range m.watchedDirs {
		if (dir == watched || strings.HasPrefix(dir, watched+string(filepath.Separator))) && len(owner) > len(best) {
			best = owner
		}
	}
	if best == "" {
		return "", "", false
	}

	rel, err := filepath.Rel(best, changedPath)
	if err != nil {
		return "", "", false
	}
	return best, rel, true
}

func (m *Monitor) shouldEmit(worktreePath, relPath string) bool {
	key := worktreePath + "\x00" + relPath

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if last, ok := m.lastEmitted[key]; ok && now.Sub(last) < constants.ActivityDebounceWindow {
		return false
	}
	m.lastEmitted[key] = now
	return true
}
