package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listTableStyles holds lipgloss styles for the list table.
type listTableStyles struct {
	header lipgloss.Style
	dim    lipgloss.Style
}

func newListTableStyles() listTableStyles {
	return listTableStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// AddListCommand registers the list/ls command.
func AddListCommand(root *cobra.Command) {
	var worktreesOnly, projectsOnly bool

	cmd := &cobra.Command{
		Use:     "list [repo]",
		Aliases: []string{"ls"},
		Short:   "List worktrees and registered repositories",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var repo string
			if len(args) > 0 {
				repo = args[0]
			}

			if !worktreesOnly {
				if err := printRepositories(cmd); err != nil {
					return err
				}
			}
			if !projectsOnly {
				if err := printWorktreeList(cmd, repo); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&worktreesOnly, "worktrees", "w", false, "list worktrees only")
	cmd.Flags().BoolVarP(&projectsOnly, "projects", "p", false, "list registered repositories only")
	cmd.MarkFlagsMutuallyExclusive("worktrees", "projects")

	root.AddCommand(cmd)
}

func printRepositories(cmd *cobra.Command) error {
	repos, err := App().reg.ListRepositories()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	output := cmd.Flag("output").Value.String()

	if output == OutputJSON {
		return printJSON(w, repos)
	}

	if len(repos) == 0 {
		_, _ = fmt.Fprintln(w, "No registered repositories. Run 'imi init' in one.")
		return nil
	}

	styles := newListTableStyles()
	_, _ = fmt.Fprintln(w, styles.header.Render(fmt.Sprintf("%-20s %-10s %s", "REPOSITORY", "BRANCH", "ROOT")))
	for _, repo := range repos {
		_, _ = fmt.Fprintf(w, "%-20s %-10s %s\n", repo.Name, repo.DefaultBranch, repo.RootPath)
	}
	return nil
}

func printWorktreeList(cmd *cobra.Command, repo string) error {
	statuses, err := App().coord.List(cmd.Context(), repo)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	output := cmd.Flag("output").Value.String()

	if output == OutputJSON {
		return printJSON(w, statuses)
	}

	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(w, "No worktrees.")
		return nil
	}

	styles := newListTableStyles()
	_, _ = fmt.Fprintln(w, styles.header.Render(fmt.Sprintf("%-8s %-22s %-24s %-6s %s", "CATEGORY", "NAME", "BRANCH", "LIVE", "PATH")))
	for _, s := range statuses {
		live := "yes"
		if !s.Live {
			live = styles.dim.Render("no")
		}
		_, _ = fmt.Fprintf(w, "%-8s %-22s %-24s %-6s %s\n", s.Worktree.Category, s.Worktree.Name, s.Worktree.Branch, live, s.Worktree.Path)
	}
	return nil
}
