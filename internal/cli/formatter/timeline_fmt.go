package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/lane"
	"github.com/charmbracelet/lipgloss"
)

// maxBarDays caps the day grid; longer ranges drop the bars and keep the
// textual spans.
const maxBarDays = 120

// TimelineData carries everything the timeline view needs for one project.
type TimelineData struct {
	Project    *domain.Project
	Lanes      []lane.Lane
	SubTasks   map[string][]*domain.Task // subProjectId -> its tasks
	Milestones []*domain.Milestone
	Ungrouped  []*domain.Task
	Mode       domain.ColorMode
}

// FormatTimeline renders a project's packed lanes as a day grid with one row
// per lane, followed by milestones and ungrouped tasks.
func FormatTimeline(data TimelineData) string {
	var b strings.Builder
	b.WriteString(Header(data.Project.Name))
	b.WriteString("\n")

	start, end, ok := timelineRange(data)
	if !ok {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
		return b.String()
	}
	days := domain.DaysBetween(start, end) + 1
	b.WriteString(fmt.Sprintf("%s → %s\n\n", domain.FormatDay(start), domain.FormatDay(end)))

	for _, ln := range data.Lanes {
		for _, sp := range ln.SubProjects {
			style := EntityStyle(sp.Color, data.Mode)
			if days <= maxBarDays {
				b.WriteString(renderBar(start, days, sp.StartDate, sp.EndDate, style))
				b.WriteString("  ")
			}
			tasks := data.SubTasks[sp.ID]
			done := 0
			for _, t := range tasks {
				if t.Completed {
					done++
				}
			}
			b.WriteString(fmt.Sprintf("%s  %s → %s",
				style.Render(sp.Title), domain.FormatDay(sp.StartDate), domain.FormatDay(sp.EndDate)))
			if len(tasks) > 0 {
				b.WriteString(Dim(fmt.Sprintf("  (%d/%d tasks)", done, len(tasks))))
			}
			b.WriteString("\n")
		}
		if len(ln.SubProjects) > 0 {
			b.WriteString("\n")
		}
	}

	if len(data.Milestones) > 0 {
		b.WriteString(Header("Milestones") + "\n")
		for _, m := range data.Milestones {
			style := EntityStyle(m.Color, data.Mode)
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				style.Render("◆"), domain.FormatDay(m.Date), m.Title))
		}
		b.WriteString("\n")
	}

	if len(data.Ungrouped) > 0 {
		b.WriteString(Header("Tasks") + "\n")
		for _, t := range data.Ungrouped {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				CheckMark(t.Completed), domain.FormatDay(t.Date), t.Title))
		}
	}

	return b.String()
}

// timelineRange finds the overall span covered by lanes, milestones and
// ungrouped tasks.
func timelineRange(data TimelineData) (start, end time.Time, ok bool) {
	extend := func(from, to time.Time) {
		if !ok {
			start, end, ok = from, to, true
			return
		}
		if from.Before(start) {
			start = from
		}
		if to.After(end) {
			end = to
		}
	}
	for _, ln := range data.Lanes {
		for _, sp := range ln.SubProjects {
			extend(sp.StartDate, sp.EndDate)
		}
	}
	for _, m := range data.Milestones {
		extend(m.Date, m.Date)
	}
	for _, t := range data.Ungrouped {
		extend(t.Date, t.Date)
	}
	return start, end, ok
}

// renderBar draws one sub-project's span on a fixed-width day grid.
func renderBar(gridStart time.Time, days int, from, to time.Time, style lipgloss.Style) string {
	var b strings.Builder
	for i := 0; i < days; i++ {
		d := domain.AddDays(gridStart, i)
		if !d.Before(from) && !d.After(to) {
			b.WriteString(style.Render("█"))
		} else {
			b.WriteString(StyleDim.Render("·"))
		}
	}
	return b.String()
}
