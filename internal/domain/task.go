package domain

import "time"

// Task is a single-day actionable item, optionally grouped under a sub-project.
type Task struct {
	ID           string
	ProjectID    string
	SubProjectID string // empty when the task is not grouped
	Title        string
	Date         time.Time
	Completed    bool
	CompletedAt  *time.Time // set only on the completion transition
	Content      string
	Color        string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *Task) Clone() *Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// GroupedUnder reports whether the task is attributed to the given sub-project.
// A sub-project reference pointing at a different project is treated as no
// sub-project at all.
func (t *Task) GroupedUnder(s *SubProject) bool {
	return t.SubProjectID == s.ID && t.ProjectID == s.ProjectID
}
