package cli

import (
	"fmt"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/charmbracelet/huh"
)

// validateDay accepts a YYYY-MM-DD value.
func validateDay(s string) error {
	if _, err := domain.ParseDay(s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

// validateTitle rejects blank titles.
func validateTitle(s string) error {
	if s == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// quickCreateTaskForm collects a title and date for the board's quick-create
// popover. The date is pre-filled with the day under the cursor.
func quickCreateTaskForm(title, date *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Task").
				Placeholder("What needs doing?").
				Value(title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Date").
				Placeholder("2025-06-30").
				Value(date).
				Validate(validateDay),
		),
	).WithTheme(chronaHuhTheme()).WithShowHelp(false)
}

// quickCreateSubProjectForm collects the fields for a new sub-project.
func quickCreateSubProjectForm(title, start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Sub-project").
				Placeholder("Sprint name").
				Value(title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Start (YYYY-MM-DD)").
				Value(start).
				Validate(validateDay),
			huh.NewInput().
				Title("End (YYYY-MM-DD)").
				Value(end).
				Validate(validateDay),
		),
	).WithTheme(chronaHuhTheme()).WithShowHelp(false)
}

// deleteSubProjectForm asks what should happen to the grouped tasks.
func deleteSubProjectForm(mode *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Delete sub-project").
				Options(
					huh.NewOption("Keep its tasks (ungroup them)", string(domain.OrphanTasks)),
					huh.NewOption("Delete its tasks too", string(domain.DeleteTasks)),
				).
				Value(mode),
		),
	).WithTheme(chronaHuhTheme()).WithShowHelp(false)
}
