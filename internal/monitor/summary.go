package monitor

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/delorenj/imi/internal/vcsrunner"
)

// recentActivityCount is how many of the most recent activity-log rows
// logSummary fetches before trimming down to the 3 it actually displays.
const recentActivityCount = 5

// recentActivityShown is how many recent activity descriptions the summary
// prints, per original_source's display_status_summary.
const recentActivityShown = 3

// summaryLoop periodically logs a status summary: active worktree and
// per-category counts, per-worktree dirty counts from a live git status,
// and the most recent activity descriptions.
func (m *Monitor) summaryLoop(ctx context.Context) {
	interval := m.cfg.MonitoringSettings.RefreshInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.logSummary(ctx)
		}
	}
}

func (m *Monitor) logSummary(ctx context.Context) {
	worktrees, err := m.reg.ListWorktrees("")
	if err != nil {
		log.Debug().Err(err).Msg("failed to gather worktrees for status summary")
		return
	}

	activeCount := 0
	categoryCounts := make(map[string]int)

	for _, wt := range worktrees {
		if _, statErr := os.Stat(wt.Path); statErr != nil {
			continue
		}
		activeCount++
		categoryCounts[string(wt.Category)]++

		status, statusErr := vcsrunner.GetStatus(ctx, wt.Path)
		if statusErr != nil {
			continue
		}
		dirty := status.Modified + status.Untracked + status.Deleted
		if dirty > 0 {
			log.Info().
				Str("repository", wt.RepositoryName).
				Str("worktree", wt.Name).
				Int("dirty", dirty).
				Msg("worktree has uncommitted changes")
		}
	}

	entry := log.Info().Int("active_worktrees", activeCount)
	for category, n := range categoryCounts {
		entry = entry.Int(category, n)
	}
	entry.Msg("activity summary")

	events, err := m.reg.RecentActivities("", recentActivityCount)
	if err != nil {
		log.Debug().Err(err).Msg("failed to gather recent activities for status summary")
		return
	}
	if len(events) == 0 {
		log.Debug().Msg("no recent activity")
		return
	}

	now := time.Now()
	shown := events
	if len(shown) > recentActivityShown {
		shown = shown[:recentActivityShown]
	}
	for _, event := range shown {
		log.Info().
			Str("description", event.Description).
			Int("minutes_ago", int(now.Sub(event.CreatedAt).Minutes())).
			Msg("recent activity")
	}
}
