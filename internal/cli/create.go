package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/delorenj/imi/internal/coordinator"
	"github.com/delorenj/imi/internal/domain"
)

// categoryCommand describes one of the category-typed creation subcommands.
// The four non-review, non-trunk categories share this single factory
// rather than each reimplementing argument parsing and output rendering.
type categoryCommand struct {
	use      string
	category domain.Category
	short    string
}

var categoryCommands = []categoryCommand{
	{use: "feat", category: domain.CategoryFeat, short: "Create a feature worktree"},
	{use: "fix", category: domain.CategoryFix, short: "Create a fix worktree"},
	{use: "aiops", category: domain.CategoryAiops, short: "Create an aiops worktree"},
	{use: "devops", category: domain.CategoryDevops, short: "Create a devops worktree"},
}

// AddCreateCommands registers feat, fix, aiops, and devops on root.
func AddCreateCommands(root *cobra.Command) {
	for _, cc := range categoryCommands {
		root.AddCommand(newCategoryCreateCmd(cc))
	}
}

func newCategoryCreateCmd(cc categoryCommand) *cobra.Command {
	var baseBranch string
	var agentID string

	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s <name> [repo]", cc.use),
		Aliases: aliasesFor(cc.use),
		Short:   cc.short,
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

			wt, err := App().coord.Create(cmd.Context(), coordinator.CreateOptions{
				Category:   cc.category,
				Name:       args[0],
				Repository: repo,
				BaseBranch: baseBranch,
				AgentID:    agentID,
			})
			if err != nil {
				return err
			}

			return printCreatedWorktree(cmd, wt)
		},
	}

	cmd.Flags().StringVar(&baseBranch, "base", "", "branch to cut the new branch from (defaults to the repository's default branch)")
	cmd.Flags().StringVar(&agentID, "agent", "", "attribute this worktree to an automation agent")

	return cmd
}

// aliasesFor returns the documented command aliases; only "feat" has one.
func aliasesFor(use string) []string {
	if use == "feat" {
		return []string{"feature"}
	}
	return nil
}

func printCreatedWorktree(cmd *cobra.Command, wt *domain.Worktree) error {
	if cmd.Flag("output").Value.String() == OutputJSON {
		return printJSON(cmd.OutOrStdout(), wt)
	}

	checkmark := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) at %s\n", checkmark, wt.Name, wt.Branch, wt.Path)
	return err
}
