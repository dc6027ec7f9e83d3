package lane

import (
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_NonOverlappingShareALane(t *testing.T) {
	a := testutil.NewTestSubProject("proj", "A", "2024-01-01", "2024-01-05")
	b := testutil.NewTestSubProject("proj", "B", "2024-01-03", "2024-01-08")
	c := testutil.NewTestSubProject("proj", "C", "2024-01-10", "2024-01-12")

	lanes := Pack([]*domain.SubProject{c, b, a})
	require.Len(t, lanes, 2)

	require.Len(t, lanes[0].SubProjects, 2)
	assert.Equal(t, "A", lanes[0].SubProjects[0].Title)
	assert.Equal(t, "C", lanes[0].SubProjects[1].Title)

	require.Len(t, lanes[1].SubProjects, 1)
	assert.Equal(t, "B", lanes[1].SubProjects[0].Title)
}

func TestPack_LaneCountEqualsMaxOverlap(t *testing.T) {
	// Three ranges all active on Jan 5: the chromatic number is 3.
	subs := []*domain.SubProject{
		testutil.NewTestSubProject("proj", "One", "2024-01-01", "2024-01-10"),
		testutil.NewTestSubProject("proj", "Two", "2024-01-03", "2024-01-06"),
		testutil.NewTestSubProject("proj", "Three", "2024-01-05", "2024-01-05"),
		testutil.NewTestSubProject("proj", "Four", "2024-01-11", "2024-01-12"),
	}
	lanes := Pack(subs)
	assert.Len(t, lanes, 3)
	assertNoLaneOverlap(t, lanes)
}

func TestPack_AdjacentDaysDoNotOverlap(t *testing.T) {
	// Inclusive ranges: ending Jan 5 and starting Jan 6 can share a lane,
	// ending Jan 5 and starting Jan 5 cannot.
	a := testutil.NewTestSubProject("proj", "A", "2024-01-01", "2024-01-05")
	b := testutil.NewTestSubProject("proj", "B", "2024-01-06", "2024-01-09")
	sameDay := testutil.NewTestSubProject("proj", "S", "2024-01-05", "2024-01-07")

	assert.Len(t, Pack([]*domain.SubProject{a, b}), 1)
	assert.Len(t, Pack([]*domain.SubProject{a, sameDay}), 2)
}

func TestPack_Deterministic(t *testing.T) {
	subs := []*domain.SubProject{
		testutil.NewTestSubProject("proj", "A", "2024-01-01", "2024-01-04"),
		testutil.NewTestSubProject("proj", "B", "2024-01-02", "2024-01-06"),
		testutil.NewTestSubProject("proj", "C", "2024-01-05", "2024-01-09"),
		testutil.NewTestSubProject("proj", "D", "2024-01-07", "2024-01-08"),
	}
	first := Pack(subs)
	// Reversed input must yield the same layout.
	reversed := []*domain.SubProject{subs[3], subs[2], subs[1], subs[0]}
	second := Pack(reversed)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, len(first[i].SubProjects), len(second[i].SubProjects))
		for j := range first[i].SubProjects {
			assert.Equal(t, first[i].SubProjects[j].ID, second[i].SubProjects[j].ID)
		}
	}
}

func TestPack_Empty(t *testing.T) {
	assert.Nil(t, Pack(nil))
}

func assertNoLaneOverlap(t *testing.T, lanes []Lane) {
	t.Helper()
	for _, ln := range lanes {
		for i := 0; i < len(ln.SubProjects); i++ {
			for j := i + 1; j < len(ln.SubProjects); j++ {
				assert.False(t, ln.SubProjects[i].Overlaps(ln.SubProjects[j]),
					"lane %d: %s overlaps %s", ln.Index, ln.SubProjects[i].Title, ln.SubProjects[j].Title)
			}
		}
	}
}

func TestHeights_MaxSameDayStack(t *testing.T) {
	sp := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	lanes := Pack([]*domain.SubProject{sp})

	tasks := []*domain.Task{
		testutil.NewTestTask("proj", "T1", "2024-01-02", testutil.WithSubProject(sp.ID)),
		testutil.NewTestTask("proj", "T2", "2024-01-02", testutil.WithSubProject(sp.ID)),
		testutil.NewTestTask("proj", "T3", "2024-01-02", testutil.WithSubProject(sp.ID)),
		testutil.NewTestTask("proj", "T4", "2024-01-05", testutil.WithSubProject(sp.ID)),
		testutil.NewTestTask("proj", "Ungrouped", "2024-01-02"),
	}

	m := DefaultMetrics
	heights := Heights(lanes, tasks, m)
	require.Len(t, heights, 1)
	assert.Equal(t, m.Height(3), heights[0], "deepest stack is the three tasks on Jan 2")
}

func TestHeights_FloorAppliesWhenEmpty(t *testing.T) {
	sp := testutil.NewTestSubProject("proj", "Quiet", "2024-01-01", "2024-01-03")
	lanes := Pack([]*domain.SubProject{sp})

	heights := Heights(lanes, nil, DefaultMetrics)
	require.Len(t, heights, 1)
	assert.Equal(t, DefaultMetrics.MinHeight, heights[0])
}

func TestHeights_DanglingReferenceIgnored(t *testing.T) {
	sp := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	lanes := Pack([]*domain.SubProject{sp})

	// Same sub-project id but a different project: counts as ungrouped.
	stray := testutil.NewTestTask("other", "Stray", "2024-01-02", testutil.WithSubProject(sp.ID))

	heights := Heights(lanes, []*domain.Task{stray}, DefaultMetrics)
	assert.Equal(t, DefaultMetrics.MinHeight, heights[0])
}

func TestMetrics_HeightMonotonic(t *testing.T) {
	m := DefaultMetrics
	prev := m.Height(0)
	for count := 1; count <= 10; count++ {
		h := m.Height(count)
		assert.GreaterOrEqual(t, h, prev)
		prev = h
	}
}
