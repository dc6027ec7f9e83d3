package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSubProjectRepo implements SubProjectRepo using a SQLite database.
type SQLiteSubProjectRepo struct {
	db *sql.DB
}

func NewSQLiteSubProjectRepo(db *sql.DB) *SQLiteSubProjectRepo {
	return &SQLiteSubProjectRepo{db: db}
}

func (r *SQLiteSubProjectRepo) Create(ctx context.Context, s *domain.SubProject) (*domain.SubProject, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	persisted := s.Clone()
	persisted.ID = uuid.New().String()
	now := nowUTC()
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	query := `INSERT INTO sub_projects (id, project_id, title, start_date, end_date, color, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		persisted.ID,
		persisted.ProjectID,
		persisted.Title,
		persisted.StartDate.Format(dateLayout),
		persisted.EndDate.Format(dateLayout),
		persisted.Color,
		persisted.Description,
		persisted.CreatedAt.Format(time.RFC3339),
		persisted.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting sub-project: %w", err)
	}
	return persisted, nil
}

func (r *SQLiteSubProjectRepo) GetByID(ctx context.Context, id string) (*domain.SubProject, error) {
	query := `SELECT id, project_id, title, start_date, end_date, color, description, created_at, updated_at
		FROM sub_projects WHERE id = ?`
	return scanSubProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSubProjectRepo) Update(ctx context.Context, id string, patch SubProjectPatch) (*domain.SubProject, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.StartDate != nil {
		s.StartDate = domain.DayOf(*patch.StartDate)
	}
	if patch.EndDate != nil {
		s.EndDate = domain.DayOf(*patch.EndDate)
	}
	if patch.Color != nil {
		s.Color = *patch.Color
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.UpdatedAt = nowUTC()

	query := `UPDATE sub_projects SET title = ?, start_date = ?, end_date = ?, color = ?, description = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		s.Title,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.Color,
		s.Description,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating sub-project: %w", err)
	}
	return s, nil
}

// Delete removes the sub-project after resolving its tasks per mode.
// Runs in a transaction so a half-resolved delete never persists.
func (r *SQLiteSubProjectRepo) Delete(ctx context.Context, id string, mode domain.TaskResolution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	switch mode {
	case domain.DeleteTasks:
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE sub_project_id = ?`, id); err != nil {
			return fmt.Errorf("deleting sub-project tasks: %w", err)
		}
	case domain.OrphanTasks, "":
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET sub_project_id = NULL WHERE sub_project_id = ?`, id); err != nil {
			return fmt.Errorf("orphaning sub-project tasks: %w", err)
		}
	default:
		return fmt.Errorf("unknown task resolution %q", mode)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sub_projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting sub-project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sub-project delete: %w", err)
	}
	return nil
}

func scanSubProject(row *sql.Row) (*domain.SubProject, error) {
	var s domain.SubProject
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.ProjectID, &s.Title, &startStr, &endStr, &s.Color, &s.Description, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sub-project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sub-project: %w", err)
	}
	if s.StartDate, err = parseDay(startStr, "start_date"); err != nil {
		return nil, err
	}
	if s.EndDate, err = parseDay(endStr, "end_date"); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
