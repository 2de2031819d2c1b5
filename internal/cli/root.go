// Package cli provides the command-line interface for imi.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	imierrors "github.com/delorenj/imi/internal/errors"
	"github.com/delorenj/imi/internal/logging"
)

// BuildInfo carries version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g. "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger initialized from flags during
// PersistentPreRunE. Subcommands read it through Logger() rather than
// threading it through every RunE signature.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // protects globalLogger
)

// Logger returns the logger initialized by the root command.
//
// IMPORTANT: only call this after PersistentPreRunE has executed (i.e. from
// within a subcommand's RunE). Safe for concurrent use.
func Logger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd builds the root command, wiring global flags, logger and
// application-state initialization, and every subcommand.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "imi",
		Short:   "imi manages git worktrees across an opinionated multi-repository workspace",
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return imierrors.NewExitCode2Error(
					fmt.Errorf("%w: %q must be one of %v", imierrors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats()),
				)
			}

			globalLoggerMu.Lock()
			globalLogger = logging.InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			if skipAppInit(cmd) {
				return nil
			}

			return initApp(cmd.Context(), flags.ConfigPath)
		},
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	AddInitCommand(cmd)
	AddCreateCommands(cmd)
	AddReviewCommand(cmd)
	AddTrunkCommand(cmd)
	AddStatusCommand(cmd)
	AddListCommand(cmd)
	AddRemoveCommand(cmd)
	AddCloseCommand(cmd)
	AddMonitorCommand(cmd)
	AddSyncCommand(cmd)
	AddPruneCommand(cmd)
	AddDoctorCommand(cmd)
	AddCompletionCommand(cmd)

	return cmd
}

// skipAppInit reports whether cmd (or any of its ancestors) is the
// completion or help command, neither of which needs a registry connection.
func skipAppInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" || c.Name() == "help" {
			return true
		}
	}
	return false
}

// formatVersion renders build info into cobra's version string, filling
// unset fields with placeholders so `imi --version` never prints blanks.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with ctx and info, releasing application
// resources (the registry connection) before returning.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	closeApp()
	return err
}

// CloseLogFile flushes and closes the rotating log file, if one is open.
// Intended to be deferred from main.
func CloseLogFile() {
	logging.CloseLogFile()
}
