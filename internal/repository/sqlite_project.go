package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db *sql.DB
}

func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	persisted := p.Clone()
	persisted.ID = uuid.New().String()
	now := nowUTC()
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	query := `INSERT INTO projects (id, workspace_id, name, color, hidden, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		persisted.ID,
		persisted.WorkspaceID,
		persisted.Name,
		persisted.Color,
		boolToInt(persisted.Hidden),
		persisted.Position,
		persisted.CreatedAt.Format(time.RFC3339),
		persisted.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	return persisted, nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, workspace_id, name, color, hidden, position, created_at, updated_at
		FROM projects WHERE id = ?`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.WorkspaceID != nil {
		p.WorkspaceID = *patch.WorkspaceID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Hidden != nil {
		p.Hidden = *patch.Hidden
	}
	if patch.Position != nil {
		p.Position = *patch.Position
	}
	p.UpdatedAt = nowUTC()

	query := `UPDATE projects SET workspace_id = ?, name = ?, color = ?, hidden = ?, position = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.WorkspaceID, p.Name, p.Color, boolToInt(p.Hidden), p.Position,
		p.UpdatedAt.Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// Reorder applies each position update independently; not atomic.
func (r *SQLiteProjectRepo) Reorder(ctx context.Context, updates []PositionUpdate) []error {
	errs := make([]error, len(updates))
	for i, u := range updates {
		_, err := r.db.ExecContext(ctx,
			`UPDATE projects SET position = ?, updated_at = ? WHERE id = ?`,
			u.Position, nowUTC().Format(time.RFC3339), u.ID)
		if err != nil {
			errs[i] = fmt.Errorf("reordering project %s: %w", u.ID, err)
		}
	}
	return errs
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var hidden int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Color, &hidden, &p.Position, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Hidden = intToBool(hidden)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
