package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddTrunkCommand registers the trunk command, which prints the trunk
// worktree's path so it can be consumed by shell substitution, e.g.
// `cd $(imi trunk)`.
func AddTrunkCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "trunk [repo]",
		Short: "Print the trunk worktree's path",
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

			path, err := App().coord.GetTrunkWorktree(repo)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	root.AddCommand(cmd)
}
