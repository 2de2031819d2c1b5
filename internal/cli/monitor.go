package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/delorenj/imi/internal/monitor"
)

// AddMonitorCommand registers the monitor command, which runs the activity
// watcher in the foreground until interrupted.
func AddMonitorCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch every registered worktree's filesystem and log activity until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := App()

			m, err := monitor.New(app.reg, app.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := m.Start(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watching for activity, press ctrl-c to stop")
			<-ctx.Done()

			return m.Stop()
		},
	}

	root.AddCommand(cmd)
}
