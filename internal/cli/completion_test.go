package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRootWithCompletion() *cobra.Command {
	root := &cobra.Command{Use: "imi"}
	AddCompletionCommand(root)
	return root
}

func TestCompletionCommand_GeneratesNonEmptyScripts(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			root := newTestRootWithCompletion()
			buf := &bytes.Buffer{}
			root.SetOut(buf)
			root.SetArgs([]string{"completion", shell})

			require.NoError(t, root.Execute())
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestCompletionCommand_DisablesDefaultCompletionCommand(t *testing.T) {
	root := newTestRootWithCompletion()
	assert.True(t, root.CompletionOptions.DisableDefaultCmd)
}
