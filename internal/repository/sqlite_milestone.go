package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db *sql.DB
}

func NewSQLiteMilestoneRepo(db *sql.DB) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error) {
	persisted := m.Clone()
	persisted.ID = uuid.New().String()
	now := nowUTC()
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	query := `INSERT INTO milestones (id, project_id, title, date, color, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		persisted.ID,
		persisted.ProjectID,
		persisted.Title,
		persisted.Date.Format(dateLayout),
		persisted.Color,
		persisted.Content,
		persisted.CreatedAt.Format(time.RFC3339),
		persisted.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting milestone: %w", err)
	}
	return persisted, nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT id, project_id, title, date, color, content, created_at, updated_at
		FROM milestones WHERE id = ?`
	return scanMilestone(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, id string, patch MilestonePatch) (*domain.Milestone, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Date != nil {
		m.Date = domain.DayOf(*patch.Date)
	}
	if patch.Color != nil {
		m.Color = *patch.Color
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	m.UpdatedAt = nowUTC()

	query := `UPDATE milestones SET title = ?, date = ?, color = ?, content = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		m.Title,
		m.Date.Format(dateLayout),
		m.Color,
		m.Content,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating milestone: %w", err)
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func scanMilestone(row *sql.Row) (*domain.Milestone, error) {
	var m domain.Milestone
	var dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &dateStr, &m.Color, &m.Content, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	if m.Date, err = parseDay(dateStr, "date"); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}
