package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectMoveCmd(app),
		newProjectToggleCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var workspace, name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			wsID, err := app.resolveWorkspaceID(workspace)
			if err != nil {
				return err
			}

			p := &domain.Project{
				WorkspaceID: wsID,
				Name:        name,
				Color:       color,
			}
			commit, err := app.Mutator.CreateProject(context.Background(), p)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Created project %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "green", "Color (green|yellow|red|blue|purple)")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var workspace string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Store.State()
			byWorkspace := app.Selectors.WorkspaceProjects(state, all)
			counts := app.Selectors.TaskCounts(state)

			var projects []*domain.Project
			if workspace != "" {
				wsID, err := app.resolveWorkspaceID(workspace)
				if err != nil {
					return err
				}
				projects = byWorkspace[wsID]
			} else {
				for _, id := range app.Selectors.SortedWorkspaceIDs(state) {
					projects = append(projects, byWorkspace[id]...)
				}
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatProjectList(projects, counts, app.colorMode()))
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Restrict to one workspace")
	cmd.Flags().BoolVar(&all, "all", false, "Include hidden projects")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, color string
	var hidden bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveProjectID(args[0])
			if err != nil {
				return err
			}

			var patch repository.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("hidden") {
				patch.Hidden = &hidden
			}

			commit, err := app.Mutator.UpdateProject(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Hide from default listings")

	return cmd
}

func newProjectMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID WORKSPACE",
		Short: "Move a project to another workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveProjectID(args[0])
			if err != nil {
				return err
			}
			wsID, err := app.resolveWorkspaceID(args[1])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.UpdateProject(context.Background(), id,
				repository.ProjectPatch{WorkspaceID: &wsID})
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Moved project %s to workspace %s\n", id, wsID)
			return nil
		},
	}
}

func newProjectToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Expand or collapse a project in the sidebar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Mutator.ToggleProjectOpen(context.Background(), id).Wait(); err != nil {
				return err
			}
			state := app.Store.State()
			if state.Settings != nil && state.Settings.ProjectOpen(id) {
				fmt.Printf("Opened project %s\n", id)
			} else {
				fmt.Printf("Closed project %s\n", id)
			}
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveProjectID(args[0])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.DeleteProject(context.Background(), id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", id)
			return nil
		},
	}
}
