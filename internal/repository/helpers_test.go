package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/require"
)

// seedProject inserts a workspace and a project so rows with foreign keys
// have somewhere to hang.
func seedProject(t *testing.T, database *sql.DB) *domain.Project {
	t.Helper()
	ctx := context.Background()

	ws, err := repository.NewSQLiteWorkspaceRepo(database).Create(ctx, testutil.NewTestWorkspace("Studies"))
	require.NoError(t, err)

	proj, err := repository.NewSQLiteProjectRepo(database).Create(ctx, testutil.NewTestProject(ws.ID, "Thesis"))
	require.NoError(t, err)
	return proj
}
