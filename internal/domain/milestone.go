package domain

import "time"

// Milestone is a single-day marker with no duration.
type Milestone struct {
	ID        string
	ProjectID string
	Title     string
	Date      time.Time
	Color     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Milestone) Clone() *Milestone {
	c := *m
	return &c
}
