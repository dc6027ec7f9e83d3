package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
)

// SQLiteTimelineRepo loads the full aggregate in one pass. This is the
// refresh path: after mutations settle, the loaded state is authoritative
// (server timestamps included).
type SQLiteTimelineRepo struct {
	db       *sql.DB
	settings *SQLiteSettingsRepo
}

func NewSQLiteTimelineRepo(db *sql.DB) *SQLiteTimelineRepo {
	return &SQLiteTimelineRepo{db: db, settings: NewSQLiteSettingsRepo(db)}
}

func (r *SQLiteTimelineRepo) Load(ctx context.Context) (*domain.TimelineState, error) {
	state := domain.NewTimelineState()

	if err := r.loadWorkspaces(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadProjects(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadSubProjects(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadMilestones(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, state); err != nil {
		return nil, err
	}

	settings, err := r.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	state.Settings = settings
	return state, nil
}

func (r *SQLiteTimelineRepo) loadWorkspaces(ctx context.Context, state *domain.TimelineState) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, hidden, position, created_at, updated_at FROM workspaces`)
	if err != nil {
		return fmt.Errorf("loading workspaces: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w domain.Workspace
		var hidden int
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&w.ID, &w.Name, &w.Color, &hidden, &w.Position, &createdAtStr, &updatedAtStr); err != nil {
			return fmt.Errorf("scanning workspace row: %w", err)
		}
		w.Hidden = intToBool(hidden)
		if w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return fmt.Errorf("parsing updated_at: %w", err)
		}
		state.Workspaces[w.ID] = &w
	}
	return rows.Err()
}

func (r *SQLiteTimelineRepo) loadProjects(ctx context.Context, state *domain.TimelineState) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, workspace_id, name, color, hidden, position, created_at, updated_at FROM projects`)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Project
		var hidden int
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Color, &hidden, &p.Position, &createdAtStr, &updatedAtStr); err != nil {
			return fmt.Errorf("scanning project row: %w", err)
		}
		p.Hidden = intToBool(hidden)
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return fmt.Errorf("parsing updated_at: %w", err)
		}
		state.Projects[p.ID] = &p
	}
	return rows.Err()
}

func (r *SQLiteTimelineRepo) loadSubProjects(ctx context.Context, state *domain.TimelineState) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, start_date, end_date, color, description, created_at, updated_at FROM sub_projects`)
	if err != nil {
		return fmt.Errorf("loading sub-projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.SubProject
		var startStr, endStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Title, &startStr, &endStr, &s.Color, &s.Description, &createdAtStr, &updatedAtStr); err != nil {
			return fmt.Errorf("scanning sub-project row: %w", err)
		}
		if s.StartDate, err = parseDay(startStr, "start_date"); err != nil {
			return err
		}
		if s.EndDate, err = parseDay(endStr, "end_date"); err != nil {
			return err
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return fmt.Errorf("parsing updated_at: %w", err)
		}
		state.SubProjects[s.ID] = &s
	}
	return rows.Err()
}

func (r *SQLiteTimelineRepo) loadMilestones(ctx context.Context, state *domain.TimelineState) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, date, color, content, created_at, updated_at FROM milestones`)
	if err != nil {
		return fmt.Errorf("loading milestones: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m domain.Milestone
		var dateStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &dateStr, &m.Color, &m.Content, &createdAtStr, &updatedAtStr); err != nil {
			return fmt.Errorf("scanning milestone row: %w", err)
		}
		if m.Date, err = parseDay(dateStr, "date"); err != nil {
			return err
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return fmt.Errorf("parsing updated_at: %w", err)
		}
		state.Milestones[m.ID] = &m
	}
	return rows.Err()
}

func (r *SQLiteTimelineRepo) loadTasks(ctx context.Context, state *domain.TimelineState) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, sub_project_id, title, date, completed, completed_at, content, color, position, created_at, updated_at FROM tasks`)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Task
		var subProjectID, completedAtStr sql.NullString
		var completed int
		var dateStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &subProjectID, &t.Title, &dateStr,
			&completed, &completedAtStr, &t.Content, &t.Color, &t.Position,
			&createdAtStr, &updatedAtStr,
		); err != nil {
			return fmt.Errorf("scanning task row: %w", err)
		}
		if subProjectID.Valid {
			t.SubProjectID = subProjectID.String
		}
		t.Completed = intToBool(completed)
		t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
		if t.Date, err = parseDay(dateStr, "date"); err != nil {
			return err
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return fmt.Errorf("parsing updated_at: %w", err)
		}
		state.Tasks[t.ID] = &t
	}
	return rows.Err()
}
