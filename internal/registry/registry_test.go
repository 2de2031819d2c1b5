package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delorenj/imi/internal/clock"
	"github.com/delorenj/imi/internal/domain"
	imierrors "github.com/delorenj/imi/internal/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	fixedClock := clock.MockClock{FixedTime: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
	r, err := OpenWithClock(dbPath, fixedClock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestCreateAndGetRepository(t *testing.T) {
	r := newTestRegistry(t)

	repo, err := r.CreateRepository("widget", "/ws/widget", "git@github.com:acme/widget.git", "main")
	require.NoError(t, err)
	assert.NotEmpty(t, repo.ID)

	got, err := r.GetRepository("widget")
	require.NoError(t, err)
	assert.Equal(t, repo.ID, got.ID)
	assert.Equal(t, "main", got.DefaultBranch)
}

func TestGetRepository_NotFound(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.GetRepository("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrRepositoryNotFound)
}

func TestCreateRepository_DuplicateName(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateRepository("widget", "/ws/widget", "", "main")
	require.NoError(t, err)

	_, err = r.CreateRepository("widget", "/ws/widget", "", "main")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrReferentialIntegrity)
}

func TestListRepositories_ExcludesDeactivated(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateRepository("widget", "/ws/widget", "", "main")
	require.NoError(t, err)
	_, err = r.CreateRepository("gadget", "/ws/gadget", "", "main")
	require.NoError(t, err)

	require.NoError(t, r.DeactivateRepository("gadget"))

	repos, err := r.ListRepositories()
	require.NoError(t, err)
	if assert.Len(t, repos, 1) {
		assert.Equal(t, "widget", repos[0].Name)
	}
}

func TestDeactivateRepository_NotFound(t *testing.T) {
	r := newTestRegistry(t)

	err := r.DeactivateRepository("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrRepositoryNotFound)
}

func TestCreateAndGetWorktree(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateRepository("widget", "/ws/widget", "", "main")
	require.NoError(t, err)

	wt, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)
	assert.True(t, wt.Active)

	got, err := r.GetWorktree("widget", "auth")
	require.NoError(t, err)
	assert.Equal(t, wt.ID, got.ID)
	assert.Equal(t, domain.CategoryFeat, got.Category)

	byID, err := r.GetWorktreeByID(wt.ID)
	require.NoError(t, err)
	assert.Equal(t, wt.ID, byID.ID)

	byPath, err := r.FindWorktreeByPath("/ws/widget/feat-auth")
	require.NoError(t, err)
	assert.Equal(t, wt.ID, byPath.ID)
}

func TestCreateWorktree_DuplicateNameWithinRepository(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateRepository("widget", "/ws/widget", "", "main")
	require.NoError(t, err)

	_, err = r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)

	_, err = r.CreateWorktree("widget", "auth", "feat/auth-2", domain.CategoryFeat, "/ws/widget/feat-auth-2", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrReferentialIntegrity)
}

func TestCreateWorktree_SameNameSucceedsAfterDeactivation(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateRepository("widget", "/ws/widget", "", "main")
	require.NoError(t, err)

	first, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)

	require.NoError(t, r.DeactivateWorktree("widget", "auth"))

	second, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	got, err := r.GetWorktree("widget", "auth")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestListWorktrees_FilteredByRepository(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, createFixtureRepos(r))
	_, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)
	_, err = r.CreateWorktree("gadget", "auth", "feat/auth", domain.CategoryFeat, "/ws/gadget/feat-auth", "")
	require.NoError(t, err)

	widgetOnly, err := r.ListWorktrees("widget")
	require.NoError(t, err)
	assert.Len(t, widgetOnly, 1)

	all, err := r.ListWorktrees("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeactivateWorktree(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, createFixtureRepos(r))
	_, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)

	require.NoError(t, r.DeactivateWorktree("widget", "auth"))

	_, err = r.GetWorktree("widget", "auth")
	require.Error(t, err)
	assert.ErrorIs(t, err, imierrors.ErrWorktreeNotFound)
}

func TestLogActivityAndRecentActivities(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, createFixtureRepos(r))
	wt, err := r.CreateWorktree("widget", "auth", "feat/auth", domain.CategoryFeat, "/ws/widget/feat-auth", "")
	require.NoError(t, err)

	_, err = r.LogActivity(domain.MonitorAgentID, wt.ID, domain.ActivityModified, "src/main.go", "file modified")
	require.NoError(t, err)
	_, err = r.LogActivity(domain.MonitorAgentID, wt.ID, domain.ActivityCreated, "src/new.go", "file created")
	require.NoError(t, err)

	events, err := r.RecentActivities(wt.ID, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	kinds := []domain.ActivityKind{events[0].Kind, events[1].Kind}
	assert.ElementsMatch(t, []domain.ActivityKind{domain.ActivityModified, domain.ActivityCreated}, kinds)
}

func createFixtureRepos(r *Registry) error {
	if _, err := r.CreateRepository("widget", "/ws/widget", "", "main"); err != nil {
		return err
	}
	if _, err := r.CreateRepository("gadget", "/ws/gadget", "", "main"); err != nil {
		return err
	}
	return nil
}
