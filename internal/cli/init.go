package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/delorenj/imi/internal/coordinator"
	imierrors "github.com/delorenj/imi/internal/errors"
)

// AddInitCommand registers the init command, which registers a repository
// (cloning it if given a shorthand or URL, or adopting the current
// directory if it's already a git checkout), restructuring it onto the
// trunk-worktree layout if needed.
func AddInitCommand(root *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [repo]",
		Short: "Register a repository, restructuring it onto the trunk-worktree layout if needed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var repoArg string
			if len(args) > 0 {
				repoArg = args[0]
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			output := cmd.Flag("output").Value.String()
			w := cmd.OutOrStdout()

			opts := coordinator.RegisterOptions{Force: force}

			repo, err := App().coord.Register(cmd.Context(), repoArg, cwd, opts)
			if err != nil {
				if errors.Is(err, imierrors.ErrOperationCanceled) {
					if confirmErr := handleRestructureConsent(err, force, output, w); confirmErr != nil {
						return confirmErr
					}
					opts.Consent = true
					repo, err = App().coord.Register(cmd.Context(), repoArg, cwd, opts)
					if err != nil {
						return err
					}
				} else {
					return err
				}
			}

			if output == OutputJSON {
				return printJSON(w, repo)
			}

			ok := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
			_, err = fmt.Fprintf(w, "%s registered %s at %s\n", ok, repo.Name, repo.RootPath)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the restructuring confirmation prompt and re-register over an existing entry")

	root.AddCommand(cmd)
}

// handleRestructureConsent prompts for consent to restructure a repository
// onto the trunk-worktree layout, per the cancellation error's description.
// If force is set, consent is assumed.
func handleRestructureConsent(restructureErr error, force bool, output string, w io.Writer) error {
	if force {
		return nil
	}

	if !isTerminal() {
		return fmt.Errorf("%w: use --force in non-interactive mode", imierrors.ErrOperationCanceled)
	}

	confirmed, err := confirmRestructure(restructureErr.Error())
	if err != nil {
		return fmt.Errorf("failed to get confirmation: %w", err)
	}

	if !confirmed {
		if output != OutputJSON {
			_, _ = fmt.Fprintln(w, "Operation canceled.")
		}
		return imierrors.ErrOperationCanceled
	}

	return nil
}

func confirmRestructure(description string) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Restructure this repository onto the trunk-worktree layout?").
				Description(description).
				Affirmative("Yes, restructure").
				Negative("No, cancel").
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
