package vcsrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWorktreeListOutput(t *testing.T) {
	output := "worktree /ws/acme/trunk-main\n" +
		"HEAD abc123\n" +
		"branch refs/heads/main\n" +
		"\n" +
		"worktree /ws/acme/feat-auth\n" +
		"HEAD def456\n" +
		"branch refs/heads/feat/auth\n" +
		"locked\n"

	entries := parseWorktreeListOutput(output)
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "/ws/acme/trunk-main", entries[0].Path)
		assert.Equal(t, "main", entries[0].Branch)
		assert.False(t, entries[0].IsLocked)

		assert.Equal(t, "/ws/acme/feat-auth", entries[1].Path)
		assert.Equal(t, "feat/auth", entries[1].Branch)
		assert.True(t, entries[1].IsLocked)
	}
}

func TestParseWorktreeListOutput_Prunable(t *testing.T) {
	output := "worktree /ws/acme/fix-old\n" +
		"HEAD abc123\n" +
		"branch refs/heads/fix/old\n" +
		"prunable\n"

	entries := parseWorktreeListOutput(output)
	if assert.Len(t, entries, 1) {
		assert.True(t, entries[0].IsPrunable)
	}
}

func TestParseStatus_BranchAheadBehind(t *testing.T) {
	output := "## feat/auth...origin/feat/auth [ahead 2, behind 1]\n M src/main.go\n?? new_file.txt\n"

	status := parseStatus(output)
	assert.Equal(t, "feat/auth", status.Branch)
	assert.Equal(t, 2, status.Ahead)
	assert.Equal(t, 1, status.Behind)
	assert.Equal(t, 1, status.Modified)
	assert.Equal(t, 1, status.Untracked)
}

func TestParseStatus_NoUpstream(t *testing.T) {
	output := "## main\n"
	status := parseStatus(output)
	assert.Equal(t, "main", status.Branch)
	assert.Equal(t, 0, status.Ahead)
	assert.Equal(t, 0, status.Behind)
}

func TestParseAheadBehind_Missing(t *testing.T) {
	assert.Equal(t, 0, parseAheadBehind("ahead 3", "behind "))
}
