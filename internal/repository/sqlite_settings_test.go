package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSettingsRepo_DefaultsWhenEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(database)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.Equal(t, domain.ColorModeFull, got.ColorMode)
	assert.Empty(t, got.WorkspaceOrder)
}

func TestSQLiteSettingsRepo_UpsertRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	order := []string{"w2", "w1"}
	theme := domain.ThemeLight
	require.NoError(t, repo.Update(ctx, repository.SettingsPatch{WorkspaceOrder: &order, Theme: &theme}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"w2", "w1"}, got.WorkspaceOrder)
	assert.Equal(t, domain.ThemeLight, got.Theme)
	assert.Equal(t, domain.ColorModeFull, got.ColorMode, "unpatched fields keep defaults")
}

func TestSQLiteSettingsRepo_PartialPatchPreservesRest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	order := []string{"w1"}
	open := []string{"p1", "p2"}
	require.NoError(t, repo.Update(ctx, repository.SettingsPatch{WorkspaceOrder: &order, OpenProjectIDs: &open}))

	accent := "#d65d0e"
	require.NoError(t, repo.Update(ctx, repository.SettingsPatch{AccentColor: &accent}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#d65d0e", got.AccentColor)
	assert.Equal(t, []string{"w1"}, got.WorkspaceOrder)
	assert.Equal(t, []string{"p1", "p2"}, got.OpenProjectIDs)
}
