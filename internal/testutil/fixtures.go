package testutil

import (
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/google/uuid"
)

// Day parses a YYYY-MM-DD literal; panics on malformed input so fixtures
// fail loudly.
func Day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Workspace options
type WorkspaceOption func(*domain.Workspace)

func WithWorkspacePosition(pos int) WorkspaceOption {
	return func(w *domain.Workspace) { w.Position = pos }
}

func WithWorkspaceHidden() WorkspaceOption {
	return func(w *domain.Workspace) { w.Hidden = true }
}

func NewTestWorkspace(name string, opts ...WorkspaceOption) *domain.Workspace {
	now := time.Now().UTC()
	w := &domain.Workspace{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     "blue",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectPosition(pos int) ProjectOption {
	return func(p *domain.Project) { p.Position = pos }
}

func WithProjectHidden() ProjectOption {
	return func(p *domain.Project) { p.Hidden = true }
}

func NewTestProject(workspaceID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       "green",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SubProject options
type SubProjectOption func(*domain.SubProject)

func WithDescription(d string) SubProjectOption {
	return func(s *domain.SubProject) { s.Description = d }
}

func NewTestSubProject(projectID, title, start, end string, opts ...SubProjectOption) *domain.SubProject {
	now := time.Now().UTC()
	s := &domain.SubProject{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		StartDate: Day(start),
		EndDate:   Day(end),
		Color:     "purple",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithSubProject(subProjectID string) TaskOption {
	return func(t *domain.Task) { t.SubProjectID = subProjectID }
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
		at := time.Now().UTC()
		t.CompletedAt = &at
	}
}

func WithTaskPosition(pos int) TaskOption {
	return func(t *domain.Task) { t.Position = pos }
}

func WithContent(c string) TaskOption {
	return func(t *domain.Task) { t.Content = c }
}

func NewTestTask(projectID, title, date string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Date:      Day(date),
		Color:     "yellow",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestMilestone(projectID, title, date string) *domain.Milestone {
	now := time.Now().UTC()
	return &domain.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Date:      Day(date),
		Color:     "red",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
