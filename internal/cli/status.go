package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// AddStatusCommand registers the status command.
func AddStatusCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status [repo]",
		Short: "Print a status summary of a repository's worktrees",
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

			statuses, err := App().coord.Status(cmd.Context(), repo)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if cmd.Flag("output").Value.String() == OutputJSON {
				return printJSON(w, statuses)
			}

			dim := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
			_, _ = fmt.Fprintf(w, "%s: %d worktree(s)\n", repo, len(statuses))
			for _, s := range statuses {
				line := fmt.Sprintf("  %-8s %-24s %s", s.Worktree.Category, s.Worktree.Name, s.Worktree.Path)
				if s.VCSStatus != nil {
					line += fmt.Sprintf(" [+%d ~%d -%d, ahead %d behind %d]",
						s.VCSStatus.Untracked, s.VCSStatus.Modified, s.VCSStatus.Deleted, s.VCSStatus.Ahead, s.VCSStatus.Behind)
				} else if !s.Live {
					line += " " + dim.Render("(missing on disk)")
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}
