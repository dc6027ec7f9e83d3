package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chrona/internal/domain"
)

// resolveID matches user input against a set of entity ids: exact match
// first, then unique prefix. Entities live in memory, so no round trip.
func resolveID(kind string, ids []string, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func (app *App) resolveWorkspaceID(input string) (string, error) {
	return resolveID("workspace", mapKeys(app.Store.State().Workspaces), input)
}

func (app *App) resolveProjectID(input string) (string, error) {
	return resolveID("project", mapKeys(app.Store.State().Projects), input)
}

func (app *App) resolveSubProjectID(input string) (string, error) {
	return resolveID("sub-project", mapKeys(app.Store.State().SubProjects), input)
}

func (app *App) resolveMilestoneID(input string) (string, error) {
	return resolveID("milestone", mapKeys(app.Store.State().Milestones), input)
}

func (app *App) resolveTaskID(input string) (string, error) {
	return resolveID("task", mapKeys(app.Store.State().Tasks), input)
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// colorMode reads the active color mode from settings.
func (app *App) colorMode() domain.ColorMode {
	if s := app.Store.State().Settings; s != nil {
		return s.ColorMode
	}
	return domain.ColorModeFull
}
