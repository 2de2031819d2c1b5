package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	imierrors "github.com/delorenj/imi/internal/errors"
)

// AddReviewCommand registers the review/pr command.
func AddReviewCommand(root *cobra.Command) {
	var agentID string

	cmd := &cobra.Command{
		Use:     "review <n> [repo]",
		Aliases: []string{"pr"},
		Short:   "Create a review worktree checked out to a pull request",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return imierrors.NewExitCode2Error(err)
			}

			explicitRepo := ""
			if len(args) > 1 {
				explicitRepo = args[1]
			}
			repo, err := repositoryArg(cmd.Context(), explicitRepo)
			if err != nil {
				return err
			}

			wt, err := App().coord.CreateReview(cmd.Context(), repo, prNumber, agentID)
			if err != nil {
				return err
			}

			return printCreatedWorktree(cmd, wt)
		},
	}

	cmd.Flags().StringVar(&agentID, "agent", "", "attribute this worktree to an automation agent")

	root.AddCommand(cmd)
}
