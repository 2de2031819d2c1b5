package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/delorenj/imi/internal/coordinator"
)

// AddCloseCommand registers the close/cancel command.
func AddCloseCommand(root *cobra.Command) {
	var opts coordinator.RemoveOptions

	cmd := &cobra.Command{
		Use:     "close <name> [repo]",
		Aliases: []string{"cancel"},
		Short:   "Abandon a worktree, leaving its directory and git worktree entry in place",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitRepo := ""
			if len(args) > 1 {
				explicitRepo = args[1]
			}
			repo, err := repositoryArg(cmd.Context(), explicitRepo)
			if err != nil {
				return err
			}

			if err := App().coord.Close(cmd.Context(), repo, args[0], opts); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "closed %s/%s\n", repo, args[0])
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.KeepBranch, "keep-branch", false, "don't delete the local branch")
	cmd.Flags().BoolVar(&opts.KeepRemote, "keep-remote", false, "don't delete the remote branch (requires --keep-branch)")

	root.AddCommand(cmd)
}
