package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// SQLiteWorkspaceRepo implements WorkspaceRepo using a SQLite database.
type SQLiteWorkspaceRepo struct {
	db *sql.DB
}

func NewSQLiteWorkspaceRepo(db *sql.DB) *SQLiteWorkspaceRepo {
	return &SQLiteWorkspaceRepo{db: db}
}

func (r *SQLiteWorkspaceRepo) Create(ctx context.Context, w *domain.Workspace) (*domain.Workspace, error) {
	persisted := w.Clone()
	persisted.ID = uuid.New().String()
	now := nowUTC()
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	query := `INSERT INTO workspaces (id, name, color, hidden, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		persisted.ID,
		persisted.Name,
		persisted.Color,
		boolToInt(persisted.Hidden),
		persisted.Position,
		persisted.CreatedAt.Format(time.RFC3339),
		persisted.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting workspace: %w", err)
	}
	return persisted, nil
}

func (r *SQLiteWorkspaceRepo) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query := `SELECT id, name, color, hidden, position, created_at, updated_at
		FROM workspaces WHERE id = ?`
	return scanWorkspace(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkspaceRepo) Update(ctx context.Context, id string, p WorkspacePatch) (*domain.Workspace, error) {
	w, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Color != nil {
		w.Color = *p.Color
	}
	if p.Hidden != nil {
		w.Hidden = *p.Hidden
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	w.UpdatedAt = nowUTC()

	query := `UPDATE workspaces SET name = ?, color = ?, hidden = ?, position = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		w.Name, w.Color, boolToInt(w.Hidden), w.Position,
		w.UpdatedAt.Format(time.RFC3339), w.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}
	return w, nil
}

func (r *SQLiteWorkspaceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	return nil
}

// Reorder applies each position update independently and collects the
// per-item outcomes. Not atomic: earlier updates stand even when later ones
// fail.
func (r *SQLiteWorkspaceRepo) Reorder(ctx context.Context, updates []PositionUpdate) []error {
	errs := make([]error, len(updates))
	for i, u := range updates {
		_, err := r.db.ExecContext(ctx,
			`UPDATE workspaces SET position = ?, updated_at = ? WHERE id = ?`,
			u.Position, nowUTC().Format(time.RFC3339), u.ID)
		if err != nil {
			errs[i] = fmt.Errorf("reordering workspace %s: %w", u.ID, err)
		}
	}
	return errs
}

func scanWorkspace(row *sql.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	var hidden int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&w.ID, &w.Name, &w.Color, &hidden, &w.Position, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("workspace: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}
	w.Hidden = intToBool(hidden)
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
