package formatter

import (
	"fmt"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/selector"
)

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatWorkspaceList renders workspaces in display order with their project
// counts.
func FormatWorkspaceList(workspaces []*domain.Workspace, projects map[string][]*domain.Project) string {
	rows := make([][]string, 0, len(workspaces))
	for _, w := range workspaces {
		name := w.Name
		if w.Hidden {
			name = Dim(name + " (hidden)")
		}
		rows = append(rows, []string{
			shortID(w.ID),
			name,
			fmt.Sprintf("%d", len(projects[w.ID])),
		})
	}
	return RenderTable([]string{"ID", "Workspace", "Projects"}, rows)
}

// FormatProjectList renders projects with their completion counts.
func FormatProjectList(projects []*domain.Project, counts map[string]selector.Counts, mode domain.ColorMode) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		c := counts[p.ID]
		name := EntityStyle(p.Color, mode).Render(p.Name)
		if p.Hidden {
			name = Dim(p.Name + " (hidden)")
		}
		rows = append(rows, []string{
			shortID(p.ID),
			name,
			fmt.Sprintf("%d/%d", c.Completed, c.Total),
		})
	}
	return RenderTable([]string{"ID", "Project", "Done"}, rows)
}

// FormatSubProjectList renders sub-projects with their date spans.
func FormatSubProjectList(subs []*domain.SubProject, mode domain.ColorMode) string {
	rows := make([][]string, 0, len(subs))
	for _, sp := range subs {
		rows = append(rows, []string{
			shortID(sp.ID),
			EntityStyle(sp.Color, mode).Render(sp.Title),
			domain.FormatDay(sp.StartDate),
			domain.FormatDay(sp.EndDate),
		})
	}
	return RenderTable([]string{"ID", "Sub-project", "Start", "End"}, rows)
}

// FormatTaskList renders tasks with completion marks and dates.
func FormatTaskList(tasks []*domain.Task, subs map[string]*domain.SubProject) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		group := ""
		if sp, ok := subs[t.SubProjectID]; ok && t.GroupedUnder(sp) {
			group = sp.Title
		}
		rows = append(rows, []string{
			shortID(t.ID),
			CheckMark(t.Completed),
			domain.FormatDay(t.Date),
			t.Title,
			Dim(group),
		})
	}
	return RenderTable([]string{"ID", "", "Date", "Task", "Group"}, rows)
}

// FormatMilestoneList renders milestones sorted by date.
func FormatMilestoneList(milestones []*domain.Milestone, mode domain.ColorMode) string {
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		rows = append(rows, []string{
			shortID(m.ID),
			EntityStyle(m.Color, mode).Render("◆"),
			domain.FormatDay(m.Date),
			m.Title,
		})
	}
	return RenderTable([]string{"ID", "", "Date", "Milestone"}, rows)
}
