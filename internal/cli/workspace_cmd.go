package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}

	cmd.AddCommand(
		newWorkspaceAddCmd(app),
		newWorkspaceListCmd(app),
		newWorkspaceUpdateCmd(app),
		newWorkspaceRemoveCmd(app),
		newWorkspaceReorderCmd(app),
	)

	return cmd
}

func newWorkspaceAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Workspace{
				Name:     name,
				Color:    color,
				Position: len(app.Store.State().Workspaces),
			}
			commit, err := app.Mutator.CreateWorkspace(context.Background(), w)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Created workspace %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&color, "color", "blue", "Color (green|yellow|red|blue|purple)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Store.State()
			projects := app.Selectors.WorkspaceProjects(state, all)

			ordered := make([]*domain.Workspace, 0, len(state.Workspaces))
			for _, id := range app.Selectors.SortedWorkspaceIDs(state) {
				w := state.Workspaces[id]
				if w.Hidden && !all {
					continue
				}
				ordered = append(ordered, w)
			}
			if len(ordered) == 0 {
				fmt.Println("No workspaces found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatWorkspaceList(ordered, projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include hidden workspaces")

	return cmd
}

func newWorkspaceUpdateCmd(app *App) *cobra.Command {
	var name, color string
	var hidden bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveWorkspaceID(args[0])
			if err != nil {
				return err
			}

			var patch repository.WorkspacePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("hidden") {
				patch.Hidden = &hidden
			}

			commit, err := app.Mutator.UpdateWorkspace(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Updated workspace %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&color, "color", "", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Hide from default listings")

	return cmd
}

func newWorkspaceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a workspace and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveWorkspaceID(args[0])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.DeleteWorkspace(context.Background(), id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed workspace %s\n", id)
			return nil
		},
	}
}

func newWorkspaceReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder ID...",
		Short: "Set the workspace display order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			updates := make([]repository.PositionUpdate, 0, len(args))
			order := make([]string, 0, len(args))
			for i, arg := range args {
				id, err := app.resolveWorkspaceID(arg)
				if err != nil {
					return err
				}
				updates = append(updates, repository.PositionUpdate{ID: id, Position: i})
				order = append(order, id)
			}

			if err := app.Mutator.ReorderWorkspaces(ctx, updates).Wait(); err != nil {
				return err
			}
			if err := app.Mutator.UpdateSettings(ctx, repository.SettingsPatch{WorkspaceOrder: &order}).Wait(); err != nil {
				return err
			}
			fmt.Println("Reordered workspaces")
			return nil
		},
	}
}
