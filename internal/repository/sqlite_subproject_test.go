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

func TestSQLiteSubProjectRepo_CreateValidatesDates(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := seedProject(t, database)
	repo := repository.NewSQLiteSubProjectRepo(database)

	bad := testutil.NewTestSubProject(proj.ID, "Backwards", "2024-03-10", "2024-03-01")
	_, err := repo.Create(context.Background(), bad)
	assert.Error(t, err)
}

func TestSQLiteSubProjectRepo_UpdateRejectsInvertedRange(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := seedProject(t, database)
	repo := repository.NewSQLiteSubProjectRepo(database)
	ctx := context.Background()

	created, err := repo.Create(ctx, testutil.NewTestSubProject(proj.ID, "Sprint", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)

	end := testutil.Day("2024-02-01")
	_, err = repo.Update(ctx, created.ID, repository.SubProjectPatch{EndDate: &end})
	assert.Error(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Day("2024-03-10"), got.EndDate, "rejected update leaves the row untouched")
}

func TestSQLiteSubProjectRepo_DeleteOrphansTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := seedProject(t, database)
	ctx := context.Background()

	subRepo := repository.NewSQLiteSubProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	sub, err := subRepo.Create(ctx, testutil.NewTestSubProject(proj.ID, "Sprint", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)
	task, err := taskRepo.Create(ctx,
		testutil.NewTestTask(proj.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	require.NoError(t, err)

	require.NoError(t, subRepo.Delete(ctx, sub.ID, domain.OrphanTasks))

	_, err = subRepo.GetByID(ctx, sub.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SubProjectID, "orphaned task survives with its reference cleared")
}

func TestSQLiteSubProjectRepo_DeleteWithTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := seedProject(t, database)
	ctx := context.Background()

	subRepo := repository.NewSQLiteSubProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	sub, err := subRepo.Create(ctx, testutil.NewTestSubProject(proj.ID, "Sprint", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)
	child, err := taskRepo.Create(ctx,
		testutil.NewTestTask(proj.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	require.NoError(t, err)
	loose, err := taskRepo.Create(ctx, testutil.NewTestTask(proj.ID, "Loose", "2024-03-02"))
	require.NoError(t, err)

	require.NoError(t, subRepo.Delete(ctx, sub.ID, domain.DeleteTasks))

	_, err = taskRepo.GetByID(ctx, child.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = taskRepo.GetByID(ctx, loose.ID)
	assert.NoError(t, err, "ungrouped tasks are untouched")
}

func TestSQLiteSubProjectRepo_DeleteUnknownMode(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := seedProject(t, database)
	repo := repository.NewSQLiteSubProjectRepo(database)
	ctx := context.Background()

	sub, err := repo.Create(ctx, testutil.NewTestSubProject(proj.ID, "Sprint", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)

	err = repo.Delete(ctx, sub.ID, domain.TaskResolution("shred"))
	require.Error(t, err)

	_, err = repo.GetByID(ctx, sub.ID)
	assert.NoError(t, err, "failed delete rolls back")
}
