package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/vcsrunner"
)

// doctorFinding describes a single piece of detected drift.
type doctorFinding struct {
	Repository string `json:"repository"`
	Worktree   string `json:"worktree,omitempty"`
	Issue      string `json:"issue"`
}

// AddDoctorCommand registers the doctor command: a read-only report of
// drift between the registry, the filesystem, and what git itself reports.
// Unlike sync, it never writes to the registry or touches disk.
func AddDoctorCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "doctor [repo]",
		Short: "Report drift between the registry, the filesystem, and git",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := App()

			var repoNames []string
			if len(args) > 0 {
				repoNames = append(repoNames, args[0])
			} else {
				repos, err := app.reg.ListRepositories()
				if err != nil {
					return err
				}
				for _, repo := range repos {
					repoNames = append(repoNames, repo.Name)
				}
			}

			var findings []doctorFinding
			for _, name := range repoNames {
				repoFindings, err := diagnoseRepository(cmd, name)
				if err != nil {
					return err
				}
				findings = append(findings, repoFindings...)
			}

			w := cmd.OutOrStdout()
			if cmd.Flag("output").Value.String() == OutputJSON {
				return printJSON(w, findings)
			}

			if len(findings) == 0 {
				ok := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
				_, _ = fmt.Fprintf(w, "%s no drift detected\n", ok)
				return nil
			}

			warn := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("!")
			for _, f := range findings {
				if f.Worktree != "" {
					_, _ = fmt.Fprintf(w, "%s %s/%s: %s\n", warn, f.Repository, f.Worktree, f.Issue)
				} else {
					_, _ = fmt.Fprintf(w, "%s %s: %s\n", warn, f.Repository, f.Issue)
				}
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}

func diagnoseRepository(cmd *cobra.Command, name string) ([]doctorFinding, error) {
	app := App()
	ctx := cmd.Context()

	repo, err := app.reg.GetRepository(name)
	if err != nil {
		return nil, err
	}

	var findings []doctorFinding

	if _, statErr := os.Stat(repo.RootPath); statErr != nil {
		findings = append(findings, doctorFinding{Repository: name, Issue: "container directory missing on disk: " + repo.RootPath})
	}

	trunkPath := config.TrunkPath(app.cfg, name, repo.DefaultBranch)
	if _, statErr := os.Stat(trunkPath); statErr != nil {
		findings = append(findings, doctorFinding{Repository: name, Issue: "trunk worktree missing on disk: " + trunkPath})
		return findings, nil
	}

	gitWorktrees, err := vcsrunner.ListWorktrees(ctx, trunkPath)
	if err != nil {
		findings = append(findings, doctorFinding{Repository: name, Issue: "git worktree list failed: " + err.Error()})
		return findings, nil
	}
	gitPaths := make(map[string]vcsrunner.WorktreeEntry, len(gitWorktrees))
	for _, wt := range gitWorktrees {
		gitPaths[wt.Path] = wt
	}

	registered, err := app.reg.ListWorktrees(name)
	if err != nil {
		return nil, err
	}

	for _, wt := range registered {
		if _, err := os.Stat(wt.Path); err != nil {
			findings = append(findings, doctorFinding{Repository: name, Worktree: wt.Name, Issue: "registered but missing on disk"})
			continue
		}
		entry, ok := gitPaths[wt.Path]
		if !ok {
			findings = append(findings, doctorFinding{Repository: name, Worktree: wt.Name, Issue: "registered but git no longer tracks this worktree"})
			continue
		}
		if entry.Branch != "" && entry.Branch != wt.Branch {
			findings = append(findings, doctorFinding{Repository: name, Worktree: wt.Name,
				Issue: fmt.Sprintf("registry branch %q disagrees with git branch %q", wt.Branch, entry.Branch)})
		}
		if entry.IsPrunable {
			findings = append(findings, doctorFinding{Repository: name, Worktree: wt.Name, Issue: "git reports this worktree as prunable; run imi prune"})
		}
	}

	registeredPaths := make(map[string]bool, len(registered))
	for _, wt := range registered {
		registeredPaths[wt.Path] = true
	}
	for _, entry := range gitWorktrees {
		if entry.Path == trunkPath || registeredPaths[entry.Path] {
			continue
		}
		findings = append(findings, doctorFinding{Repository: name, Issue: "git tracks an unregistered worktree: " + entry.Path})
	}

	return findings, nil
}
