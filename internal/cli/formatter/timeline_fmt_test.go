package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/lane"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestFormatTimeline_RendersLanesAndGroups(t *testing.T) {
	proj := testutil.NewTestProject("ws", "Thesis")
	sprint := testutil.NewTestSubProject(proj.ID, "Writing sprint", "2024-03-01", "2024-03-10")
	done := testutil.NewTestTask(proj.ID, "Outline", "2024-03-02",
		testutil.WithSubProject(sprint.ID), testutil.WithCompleted())
	open := testutil.NewTestTask(proj.ID, "Draft", "2024-03-04", testutil.WithSubProject(sprint.ID))

	out := stripANSI(FormatTimeline(TimelineData{
		Project:  proj,
		Lanes:    lane.Pack([]*domain.SubProject{sprint}),
		SubTasks: map[string][]*domain.Task{sprint.ID: {done, open}},
		Milestones: []*domain.Milestone{
			testutil.NewTestMilestone(proj.ID, "Defense", "2024-03-15"),
		},
		Ungrouped: []*domain.Task{
			testutil.NewTestTask(proj.ID, "Email advisor", "2024-03-03"),
		},
		Mode: domain.ColorModeFull,
	}))

	assert.Contains(t, out, "THESIS")
	assert.Contains(t, out, "2024-03-01 → 2024-03-15", "range spans lanes and milestones")
	assert.Contains(t, out, "Writing sprint")
	assert.Contains(t, out, "(1/2 tasks)")
	assert.Contains(t, out, "◆ 2024-03-15  Defense")
	assert.Contains(t, out, "Email advisor")
}

func TestFormatTimeline_EmptyProject(t *testing.T) {
	proj := testutil.NewTestProject("ws", "Empty")
	out := stripANSI(FormatTimeline(TimelineData{Project: proj}))
	assert.Contains(t, out, "Nothing scheduled.")
}

func TestFormatTimeline_LongRangeDropsBars(t *testing.T) {
	proj := testutil.NewTestProject("ws", "Multi-year")
	sp := testutil.NewTestSubProject(proj.ID, "Epoch", "2024-01-01", "2025-06-01")

	out := stripANSI(FormatTimeline(TimelineData{
		Project:  proj,
		Lanes:    lane.Pack([]*domain.SubProject{sp}),
		SubTasks: map[string][]*domain.Task{},
		Mode:     domain.ColorModeFull,
	}))
	assert.NotContains(t, out, "█", "bars are dropped for ranges past the grid cap")
	assert.Contains(t, out, "Epoch")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "Name"},
		[][]string{
			{"a1", "short"},
			{"b2", "a much longer value"},
		},
	))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[1], "─"), 0)
	assert.Equal(t, strings.Index(lines[2], "short"), strings.Index(lines[3], "a much longer value"),
		"cells in one column start at the same offset")
}

func TestEntityStyle_MonochromaticIgnoresColorNames(t *testing.T) {
	full := EntityStyle("red", domain.ColorModeFull)
	mono := EntityStyle("red", domain.ColorModeMono)
	assert.NotEqual(t, full.GetForeground(), mono.GetForeground())
	assert.Equal(t, StyleFg.GetForeground(), mono.GetForeground())
}
