package cli

import (
	"fmt"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/lane"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render a project's timeline with packed lanes",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.resolveProjectID(project)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", renderTimeline(app, projectID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// renderTimeline assembles the lane layout and per-group task lists for one
// project; shared by the timeline command and the board view.
func renderTimeline(app *App, projectID string) string {
	state := app.Store.State()
	subs := app.Selectors.ProjectSubProjects(state)[projectID]
	lanes := lane.Pack(subs)

	subTasks := make(map[string][]*domain.Task, len(subs))
	for _, sp := range subs {
		subTasks[sp.ID] = app.Selectors.SubProjectTasks(state, sp.ID)
	}

	var ungrouped []*domain.Task
	for _, t := range app.Selectors.ProjectTasks(state)[projectID] {
		sp, ok := state.SubProjects[t.SubProjectID]
		if !ok || !t.GroupedUnder(sp) {
			ungrouped = append(ungrouped, t)
		}
	}

	return formatter.FormatTimeline(formatter.TimelineData{
		Project:    state.Projects[projectID],
		Lanes:      lanes,
		SubTasks:   subTasks,
		Milestones: app.Selectors.ProjectMilestones(state)[projectID],
		Ungrouped:  ungrouped,
		Mode:       app.colorMode(),
	})
}
