package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddSyncCommand registers the sync command.
func AddSyncCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync [repo]",
		Short: "Reconcile the registry against git's own worktree list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitRepo := ""
			if len(args) > 0 {
				explicitRepo = args[0]
			}
			repo, err := repositoryArg(cmd.Context(), explicitRepo)
			if err != nil {
				return err
			}

			if err := App().coord.Sync(cmd.Context(), repo); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "synced %s\n", repo)
			return err
		},
	}

	root.AddCommand(cmd)
}
