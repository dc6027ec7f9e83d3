package domain

// UserSettings is the per-user display configuration singleton.
type UserSettings struct {
	WorkspaceOrder []string // workspace display order; ids absent here fall back to position
	OpenProjectIDs []string // projects expanded in the sidebar
	Theme          Theme
	AccentColor    string
	ColorMode      ColorMode
}

func (s *UserSettings) Clone() *UserSettings {
	c := *s
	c.WorkspaceOrder = append([]string(nil), s.WorkspaceOrder...)
	c.OpenProjectIDs = append([]string(nil), s.OpenProjectIDs...)
	return &c
}

// ProjectOpen reports whether the given project is expanded.
func (s *UserSettings) ProjectOpen(projectID string) bool {
	for _, id := range s.OpenProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}
