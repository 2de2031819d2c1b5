package vcsrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imierrors "github.com/delorenj/imi/internal/errors"
)

func TestResolveCloneURL_BareName(t *testing.T) {
	sshURL, owner, name, err := ResolveCloneURL("widget", "acme")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widget.git", sshURL)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widget", name)
}

func TestResolveCloneURL_BareName_NoDefaultOwner(t *testing.T) {
	_, _, _, err := ResolveCloneURL("widget", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrInvalidInput)
}

func TestResolveCloneURL_OwnerSlashName(t *testing.T) {
	sshURL, owner, name, err := ResolveCloneURL("acme/widget", "")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widget.git", sshURL)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widget", name)
}

func TestResolveCloneURL_HTTPSURL(t *testing.T) {
	sshURL, owner, name, err := ResolveCloneURL("https://github.com/acme/widget", "")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widget.git", sshURL)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widget", name)
}

func TestResolveCloneURL_HTTPSURLWithGitSuffix(t *testing.T) {
	sshURL, _, _, err := ResolveCloneURL("https://github.com/acme/widget.git", "")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widget.git", sshURL)
}

func TestResolveCloneURL_RejectsHTTP(t *testing.T) {
	_, _, _, err := ResolveCloneURL("http://github.com/acme/widget", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrInvalidInput)
}

func TestResolveCloneURL_RejectsPathTraversal(t *testing.T) {
	_, _, _, err := ResolveCloneURL("../etc/passwd", "acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrInvalidInput)
}

func TestResolveCloneURL_RejectsShellMetacharacters(t *testing.T) {
	_, _, _, err := ResolveCloneURL("acme/widget; rm -rf /", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrInvalidInput)
}

func TestResolveCloneURL_RejectsEmpty(t *testing.T) {
	_, _, _, err := ResolveCloneURL("", "acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrInvalidInput)
}
