package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddPruneCommand registers the prune/cleanup command.
func AddPruneCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "prune [repo]",
		Aliases: []string{"cleanup"},
		Short:   "Prune stale git worktree entries and deactivate registry records whose directories are gone",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitRepo := ""
			if len(args) > 0 {
				explicitRepo = args[0]
			}
			repo, err := repositoryArg(cmd.Context(), explicitRepo)
			if err != nil {
				return err
			}

			if err := App().coord.Prune(cmd.Context(), repo); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %s\n", repo)
			return err
		},
	}

	root.AddCommand(cmd)
}
