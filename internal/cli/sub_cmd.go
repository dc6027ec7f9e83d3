package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newSubCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage sub-projects (grouped date ranges on the timeline)",
	}

	cmd.AddCommand(
		newSubAddCmd(app),
		newSubListCmd(app),
		newSubUpdateCmd(app),
		newSubRescheduleCmd(app),
		newSubTitleCmd(app),
		newSubRemoveCmd(app),
	)

	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	var project, title, start, end, color, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new sub-project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			startDate, err := domain.ParseDay(start)
			if err != nil {
				return err
			}
			endDate, err := domain.ParseDay(end)
			if err != nil {
				return err
			}

			sp := &domain.SubProject{
				ProjectID:   projectID,
				Title:       title,
				StartDate:   startDate,
				EndDate:     endDate,
				Color:       color,
				Description: description,
			}
			commit, err := app.Mutator.CreateSubProject(context.Background(), sp)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Created sub-project %s (%s → %s)\n", title, start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Sub-project title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "purple", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSubListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's sub-projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			subs := app.Selectors.ProjectSubProjects(app.Store.State())[projectID]
			if len(subs) == 0 {
				fmt.Println("No sub-projects found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSubProjectList(subs, app.colorMode()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSubUpdateCmd(app *App) *cobra.Command {
	var title, color, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a sub-project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSubProjectID(args[0])
			if err != nil {
				return err
			}

			var patch repository.SubProjectPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}

			commit, err := app.Mutator.UpdateSubProject(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Updated sub-project %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Sub-project title")
	cmd.Flags().StringVar(&color, "color", "", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&description, "description", "", "Description")

	return cmd
}

func newSubRescheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule ID START END",
		Short: "Move a sub-project's date range, shifting its tasks with it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSubProjectID(args[0])
			if err != nil {
				return err
			}
			start, err := domain.ParseDay(args[1])
			if err != nil {
				return err
			}
			end, err := domain.ParseDay(args[2])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.RescheduleSubProject(context.Background(), id, start, end)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Rescheduled sub-project %s to %s → %s\n", id, args[1], args[2])
			return nil
		},
	}
}

func newSubTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "title ID TITLE",
		Short: "Rename a sub-project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSubProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Mutator.EditSubProjectTitle(context.Background(), id, args[1]); err != nil {
				return err
			}
			// One-shot invocation: push the debounced edit out now.
			app.Mutator.Flush()
			fmt.Printf("Renamed sub-project %s\n", id)
			return nil
		},
	}
}

func newSubRemoveCmd(app *App) *cobra.Command {
	var deleteTasks bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a sub-project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSubProjectID(args[0])
			if err != nil {
				return err
			}
			mode := domain.OrphanTasks
			if deleteTasks {
				mode = domain.DeleteTasks
			}
			commit, err := app.Mutator.DeleteSubProject(context.Background(), id, mode)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed sub-project %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteTasks, "delete-tasks", false, "Delete grouped tasks instead of orphaning them")

	return cmd
}
