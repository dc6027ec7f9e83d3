package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	persisted := t.Clone()
	persisted.ID = uuid.New().String()
	now := nowUTC()
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	query := `INSERT INTO tasks (id, project_id, sub_project_id, title, date, completed, completed_at, content, color, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		persisted.ID,
		persisted.ProjectID,
		nullableString(persisted.SubProjectID),
		persisted.Title,
		persisted.Date.Format(dateLayout),
		boolToInt(persisted.Completed),
		nullableTimeToString(persisted.CompletedAt, time.RFC3339),
		persisted.Content,
		persisted.Color,
		persisted.Position,
		persisted.CreatedAt.Format(time.RFC3339),
		persisted.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	return persisted, nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT id, project_id, sub_project_id, title, date, completed, completed_at, content, color, position, created_at, updated_at
		FROM tasks WHERE id = ?`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Date != nil {
		t.Date = domain.DayOf(*patch.Date)
	}
	if patch.SubProjectID != nil {
		t.SubProjectID = *patch.SubProjectID
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.CompletedAt != nil {
		at := *patch.CompletedAt
		t.CompletedAt = &at
	} else if patch.Completed != nil && !*patch.Completed {
		t.CompletedAt = nil
	}
	if patch.Content != nil {
		t.Content = *patch.Content
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
	if patch.Position != nil {
		t.Position = *patch.Position
	}
	t.UpdatedAt = nowUTC()

	query := `UPDATE tasks SET sub_project_id = ?, title = ?, date = ?, completed = ?, completed_at = ?, content = ?, color = ?, position = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		nullableString(t.SubProjectID),
		t.Title,
		t.Date.Format(dateLayout),
		boolToInt(t.Completed),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.Content,
		t.Color,
		t.Position,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// Reorder applies each position update independently; not atomic.
func (r *SQLiteTaskRepo) Reorder(ctx context.Context, updates []PositionUpdate) []error {
	errs := make([]error, len(updates))
	for i, u := range updates {
		_, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET position = ?, updated_at = ? WHERE id = ?`,
			u.Position, nowUTC().Format(time.RFC3339), u.ID)
		if err != nil {
			errs[i] = fmt.Errorf("reordering task %s: %w", u.ID, err)
		}
	}
	return errs
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var subProjectID, completedAtStr sql.NullString
	var completed int
	var dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &subProjectID, &t.Title, &dateStr,
		&completed, &completedAtStr, &t.Content, &t.Color, &t.Position,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	if subProjectID.Valid {
		t.SubProjectID = subProjectID.String
	}
	t.Completed = intToBool(completed)
	t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	if t.Date, err = parseDay(dateStr, "date"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
