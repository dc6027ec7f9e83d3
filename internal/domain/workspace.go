package domain

import "time"

type Workspace struct {
	ID        string
	Name      string
	Color     string
	Hidden    bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a shallow copy safe to modify without disturbing shared state.
func (w *Workspace) Clone() *Workspace {
	c := *w
	return &c
}
