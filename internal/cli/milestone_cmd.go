package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var project, title, date, color, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			day, err := domain.ParseDay(date)
			if err != nil {
				return err
			}

			ms := &domain.Milestone{
				ProjectID: projectID,
				Title:     title,
				Date:      day,
				Color:     color,
				Content:   content,
			}
			commit, err := app.Mutator.CreateMilestone(context.Background(), ms)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Created milestone %s on %s\n", title, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "red", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&content, "content", "", "Notes")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			milestones := app.Selectors.ProjectMilestones(app.Store.State())[projectID]
			if len(milestones) == 0 {
				fmt.Println("No milestones found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatMilestoneList(milestones, app.colorMode()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var title, date, color, content string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveMilestoneID(args[0])
			if err != nil {
				return err
			}

			var patch repository.MilestonePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("date") {
				day, err := domain.ParseDay(date)
				if err != nil {
					return err
				}
				patch.Date = &day
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}

			commit, err := app.Mutator.UpdateMilestone(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Updated milestone %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Color (green|yellow|red|blue|purple)")
	cmd.Flags().StringVar(&content, "content", "", "Notes")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveMilestoneID(args[0])
			if err != nil {
				return err
			}
			commit, err := app.Mutator.DeleteMilestone(context.Background(), id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed milestone %s\n", id)
			return nil
		},
	}
}
