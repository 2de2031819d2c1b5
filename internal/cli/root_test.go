package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestFormatVersion_FillsPlaceholders(t *testing.T) {
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.3 (commit: abcdef, built: 2026-01-01)", formatVersion(BuildInfo{
		Version: "1.2.3",
		Commit:  "abcdef",
		Date:    "2026-01-01",
	}))
}

func TestSkipAppInit(t *testing.T) {
	root := &cobra.Command{Use: "imi"}
	completion := &cobra.Command{Use: "completion"}
	bash := &cobra.Command{Use: "bash"}
	completion.AddCommand(bash)
	root.AddCommand(completion)

	help := &cobra.Command{Use: "help"}
	root.AddCommand(help)

	other := &cobra.Command{Use: "status"}
	root.AddCommand(other)

	assert.True(t, skipAppInit(bash))
	assert.True(t, skipAppInit(completion))
	assert.True(t, skipAppInit(help))
	assert.False(t, skipAppInit(other))
	assert.False(t, skipAppInit(root))
}

func TestNewRootCmd_RegistersEverySubcommand(t *testing.T) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	wantUses := []string{
		"init", "feat", "fix", "aiops", "devops", "review", "trunk",
		"status", "list", "remove", "close", "monitor", "sync", "prune",
		"doctor", "completion",
	}

	for _, use := range wantUses {
		found, _, err := cmd.Find([]string{use})
		assert.NoError(t, err, "command %q should be registered", use)
		assert.NotNil(t, found)
	}
}
