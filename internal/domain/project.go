package domain

import "time"

type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	Color       string
	Hidden      bool
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) Clone() *Project {
	c := *p
	return &c
}
