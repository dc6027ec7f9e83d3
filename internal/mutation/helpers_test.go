package mutation

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/store"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires a mutator against a real SQLite backend: entities seeded
// through the repositories, aggregate loaded into the store, mutations
// reconciling against the same database.
type testEnv struct {
	db      *sql.DB
	store   *store.Store
	repos   Repos
	project *domain.Project
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	ws, err := repository.NewSQLiteWorkspaceRepo(database).Create(ctx, testutil.NewTestWorkspace("Studies"))
	require.NoError(t, err)
	proj, err := repository.NewSQLiteProjectRepo(database).Create(ctx, testutil.NewTestProject(ws.ID, "Thesis"))
	require.NoError(t, err)

	st := store.New(repository.NewSQLiteTimelineRepo(database).Load)
	require.NoError(t, st.Refresh(ctx))

	return &testEnv{
		db:    database,
		store: st,
		repos: Repos{
			Workspaces:  repository.NewSQLiteWorkspaceRepo(database),
			Projects:    repository.NewSQLiteProjectRepo(database),
			SubProjects: repository.NewSQLiteSubProjectRepo(database),
			Milestones:  repository.NewSQLiteMilestoneRepo(database),
			Tasks:       repository.NewSQLiteTaskRepo(database),
			Settings:    repository.NewSQLiteSettingsRepo(database),
		},
		project: proj,
	}
}

func (e *testEnv) mutator(opts ...Option) *Mutator {
	return NewMutator(e.store, e.repos, opts...)
}

// seedTask persists a task and refreshes the store so it is visible locally.
func (e *testEnv) seedTask(t *testing.T, task *domain.Task) *domain.Task {
	t.Helper()
	ctx := context.Background()
	persisted, err := e.repos.Tasks.Create(ctx, task)
	require.NoError(t, err)
	require.NoError(t, e.store.Refresh(ctx))
	return persisted
}

// seedSubProject persists a sub-project and refreshes the store.
func (e *testEnv) seedSubProject(t *testing.T, sp *domain.SubProject) *domain.SubProject {
	t.Helper()
	ctx := context.Background()
	persisted, err := e.repos.SubProjects.Create(ctx, sp)
	require.NoError(t, err)
	require.NoError(t, e.store.Refresh(ctx))
	return persisted
}
