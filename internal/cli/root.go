// Package cli exposes the planner over two surfaces: one-shot cobra commands
// that mutate and print, and an interactive bubbletea board for keyboard-driven
// timeline work. Both drive the same store and mutator.
package cli

import (
	"github.com/alexanderramin/chrona/internal/mutation"
	"github.com/alexanderramin/chrona/internal/selector"
	"github.com/alexanderramin/chrona/internal/store"
	"github.com/spf13/cobra"
)

// App holds the shared core the CLI commands operate on.
type App struct {
	Store     *store.Store
	Mutator   *mutation.Mutator
	Selectors *selector.Selectors

	// IsInteractive reports whether stdin is a terminal; the bare command
	// opens the board only then.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "chrona" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "chrona",
		Short: "Timeline planner for workspaces, projects and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runBoard(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newWorkspaceCmd(app),
		newProjectCmd(app),
		newSubCmd(app),
		newMilestoneCmd(app),
		newTaskCmd(app),
		newTimelineCmd(app),
		newBoardCmd(app),
		newSettingsCmd(app),
	)

	return root
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive timeline board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(app)
		},
	}
}
