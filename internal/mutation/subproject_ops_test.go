package mutation

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutator_RescheduleSubProject_CascadesChildDates(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	child := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	loose := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Loose", "2024-03-02"))
	m := env.mutator()
	ctx := context.Background()

	commit, err := m.RescheduleSubProject(ctx, sub.ID, testutil.Day("2024-03-04"), testutil.Day("2024-03-13"))
	require.NoError(t, err)

	// Local state shifts immediately with the range.
	state := env.store.State()
	assert.Equal(t, testutil.Day("2024-03-05"), state.Tasks[child.ID].Date)
	assert.Equal(t, testutil.Day("2024-03-02"), state.Tasks[loose.ID].Date, "ungrouped tasks stay put")

	require.NoError(t, commit.Wait())

	persisted, err := repository.NewSQLiteTaskRepo(env.db).GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Day("2024-03-05"), persisted.Date, "cascade reaches the backend")
}

func TestMutator_UpdateSubProject_EndDateOnlyDoesNotCascade(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	child := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	m := env.mutator()

	end := testutil.Day("2024-03-20")
	commit, err := m.UpdateSubProject(context.Background(), sub.ID, repository.SubProjectPatch{EndDate: &end})
	require.NoError(t, err)
	require.NoError(t, commit.Wait())

	state := env.store.State()
	assert.Equal(t, testutil.Day("2024-03-20"), state.SubProjects[sub.ID].EndDate)
	assert.Equal(t, testutil.Day("2024-03-02"), state.Tasks[child.ID].Date)
}

func TestMutator_UpdateSubProject_RollbackRevertsCascadedTasks(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	child := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))

	boom := errors.New("rejected")
	env.repos.SubProjects = &testutil.FailingSubProjectRepo{SubProjectRepo: env.repos.SubProjects, ErrUpdate: boom}
	m := env.mutator()

	snap := env.store.Snapshot()
	commit, err := m.RescheduleSubProject(context.Background(), sub.ID,
		testutil.Day("2024-03-04"), testutil.Day("2024-03-13"))
	require.NoError(t, err)

	require.ErrorIs(t, commit.Wait(), boom)
	assert.Same(t, snap, env.store.State(), "sub-project and cascaded tasks revert together")
	assert.Equal(t, testutil.Day("2024-03-02"), env.store.State().Tasks[child.ID].Date)
	assert.Equal(t, testutil.Day("2024-03-01"), env.store.State().SubProjects[sub.ID].StartDate)
}

func TestMutator_UpdateSubProject_InvertedRangeRejectedLocally(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	m := env.mutator()

	end := testutil.Day("2024-02-01")
	_, err := m.UpdateSubProject(context.Background(), sub.ID, repository.SubProjectPatch{EndDate: &end})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, testutil.Day("2024-03-10"), env.store.State().SubProjects[sub.ID].EndDate)
}

func TestMutator_DeleteSubProject_OrphansChildren(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	child := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	m := env.mutator()
	ctx := context.Background()

	commit, err := m.DeleteSubProject(ctx, sub.ID, domain.OrphanTasks)
	require.NoError(t, err)

	state := env.store.State()
	assert.NotContains(t, state.SubProjects, sub.ID)
	require.Contains(t, state.Tasks, child.ID)
	assert.Empty(t, state.Tasks[child.ID].SubProjectID)

	require.NoError(t, commit.Wait())

	persisted, err := repository.NewSQLiteTaskRepo(env.db).GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, persisted.SubProjectID)
}

func TestMutator_DeleteSubProject_RemovesChildren(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	child := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Child", "2024-03-02", testutil.WithSubProject(sub.ID)))
	loose := env.seedTask(t, testutil.NewTestTask(env.project.ID, "Loose", "2024-03-02"))
	m := env.mutator()

	commit, err := m.DeleteSubProject(context.Background(), sub.ID, domain.DeleteTasks)
	require.NoError(t, err)

	state := env.store.State()
	assert.NotContains(t, state.Tasks, child.ID)
	assert.Contains(t, state.Tasks, loose.ID)

	require.NoError(t, commit.Wait())
}

func TestMutator_DeleteSubProject_RollbackOnRemoteFailure(t *testing.T) {
	env := newTestEnv(t)
	sub := env.seedSubProject(t, testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))

	boom := errors.New("locked")
	env.repos.SubProjects = &testutil.FailingSubProjectRepo{SubProjectRepo: env.repos.SubProjects, ErrDelete: boom}
	m := env.mutator()

	commit, err := m.DeleteSubProject(context.Background(), sub.ID, domain.OrphanTasks)
	require.NoError(t, err)
	assert.NotContains(t, env.store.State().SubProjects, sub.ID)

	require.ErrorIs(t, commit.Wait(), boom)
	assert.Contains(t, env.store.State().SubProjects, sub.ID, "failed delete reappears")
}

func TestMutator_CreateSubProject_SwapsTempID(t *testing.T) {
	env := newTestEnv(t)
	m := env.mutator()

	commit, err := m.CreateSubProject(context.Background(),
		testutil.NewTestSubProject(env.project.ID, "Sprint", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)
	require.NoError(t, commit.Wait())

	state := env.store.State()
	require.Len(t, state.SubProjects, 1)
	for id := range state.SubProjects {
		assert.False(t, domain.IsTempID(id))
	}
}
