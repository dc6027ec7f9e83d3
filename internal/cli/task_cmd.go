package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskTitleCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, title, date, sub, color, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			day, err := domain.ParseDay(date)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID: projectID,
				Title:     title,
				Date:      day,
				Color:     color,
				Content:   content,
			}
			if sub != "" {
				subID, err := app.resolveSubProjectID(sub)
				if err != nil {
					return err
				}
				t.SubProjectID = subID
			}

			commit, err := app.Mutator.CreateTask(context.Background(), t)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Created task %s on %s\n", title, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sub, "sub", "", "Sub-project to group under")
	cmd.Flags().StringVar(&color, "color", "yellow", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&content, "content", "", "Notes")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks in date order",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			state := app.Store.State()
			tasks := app.Selectors.ProjectTasks(state)[projectID]
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks, state.SubProjects))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var date, sub, color, content string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTaskID(args[0])
			if err != nil {
				return err
			}

			var patch repository.TaskPatch
			if cmd.Flags().Changed("date") {
				day, err := domain.ParseDay(date)
				if err != nil {
					return err
				}
				patch.Date = &day
			}
			if cmd.Flags().Changed("sub") {
				subID := ""
				if sub != "" {
					if subID, err = app.resolveSubProjectID(sub); err != nil {
						return err
					}
				}
				patch.SubProjectID = &subID
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}

			commit, err := app.Mutator.UpdateTask(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sub, "sub", "", "Sub-project to group under (empty to ungroup)")
	cmd.Flags().StringVar(&color, "color", "", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&content, "content", "", "Notes")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTaskID(args[0])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.ToggleTaskCompletion(context.Background(), id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			if t, ok := app.Store.State().Tasks[id]; ok && t.Completed {
				fmt.Printf("Completed task %s\n", id)
			} else {
				fmt.Printf("Reopened task %s\n", id)
			}
			return nil
		},
	}
}

func newTaskTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "title ID TITLE",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTaskID(args[0])
			if err != nil {
				return err
			}
			if err := app.Mutator.EditTaskTitle(context.Background(), id, args[1]); err != nil {
				return err
			}
			// One-shot invocation: push the debounced edit out now.
			app.Mutator.Flush()
			fmt.Printf("Renamed task %s\n", id)
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID DATE",
		Short: "Move a task to another day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTaskID(args[0])
			if err != nil {
				return err
			}
			day, err := domain.ParseDay(args[1])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.UpdateTask(context.Background(), id, repository.TaskPatch{Date: &day})
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Moved task %s to %s\n", id, args[1])
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTaskID(args[0])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.DeleteTask(context.Background(), id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", id)
			return nil
		},
	}
}
