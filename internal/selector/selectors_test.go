package selector

import (
	"reflect"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildState() *domain.TimelineState {
	ws := testutil.NewTestWorkspace("Studies")
	proj := testutil.NewTestProject(ws.ID, "Thesis")
	return domain.NewTimelineState().WithWorkspace(ws).WithProject(proj)
}

func samePointer(a, b interface{}) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestSelectors_ProjectTasksMemoizedAcrossUnrelatedEdits(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	state = state.WithTask(testutil.NewTestTask(projID, "T", "2024-03-01"))

	sel := New()
	first := sel.ProjectTasks(state)

	// A milestone edit leaves the task revision untouched.
	next := state.WithMilestone(testutil.NewTestMilestone(projID, "M", "2024-03-05"))
	second := sel.ProjectTasks(next)
	assert.True(t, samePointer(first, second), "unchanged revision reuses the cached result")

	// A task edit invalidates.
	third := sel.ProjectTasks(next.WithTask(testutil.NewTestTask(projID, "T2", "2024-03-02")))
	assert.False(t, samePointer(first, third))
	assert.Len(t, third[projID], 2)
}

func TestSelectors_ProjectTasksSorted(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	late := testutil.NewTestTask(projID, "Late", "2024-03-09")
	early := testutil.NewTestTask(projID, "Early", "2024-03-01")
	secondPos := testutil.NewTestTask(projID, "SecondPos", "2024-03-01", testutil.WithTaskPosition(5))
	state = state.WithTasks([]*domain.Task{late, early, secondPos})

	tasks := New().ProjectTasks(state)[projID]
	require.Len(t, tasks, 3)
	assert.Equal(t, "Early", tasks[0].Title)
	assert.Equal(t, "SecondPos", tasks[1].Title)
	assert.Equal(t, "Late", tasks[2].Title)
}

func TestSelectors_TasksByDay(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	state = state.WithTasks([]*domain.Task{
		testutil.NewTestTask(projID, "A", "2024-03-01"),
		testutil.NewTestTask(projID, "B", "2024-03-01"),
		testutil.NewTestTask(projID, "C", "2024-03-02"),
	})

	byDay := New().TasksByDay(state)
	require.Contains(t, byDay, projID)
	assert.Len(t, byDay[projID]["2024-03-01"], 2)
	assert.Len(t, byDay[projID]["2024-03-02"], 1)
	assert.Empty(t, byDay[projID]["2024-03-03"])
}

func TestSelectors_TaskCounts(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	state = state.WithTasks([]*domain.Task{
		testutil.NewTestTask(projID, "Done", "2024-03-01", testutil.WithCompleted()),
		testutil.NewTestTask(projID, "Open", "2024-03-02"),
		testutil.NewTestTask(projID, "Also open", "2024-03-03"),
	})

	counts := New().TaskCounts(state)[projID]
	assert.Equal(t, Counts{Completed: 1, Total: 3}, counts)
}

func TestSelectors_WorkspaceProjectsHiddenFiltering(t *testing.T) {
	ws := testutil.NewTestWorkspace("Studies")
	visible := testutil.NewTestProject(ws.ID, "Visible", testutil.WithProjectPosition(1))
	hidden := testutil.NewTestProject(ws.ID, "Hidden", testutil.WithProjectHidden())
	state := domain.NewTimelineState().WithWorkspace(ws).WithProject(visible).WithProject(hidden)

	sel := New()
	shown := sel.WorkspaceProjects(state, false)[ws.ID]
	require.Len(t, shown, 1)
	assert.Equal(t, "Visible", shown[0].Name)

	all := sel.WorkspaceProjects(state, true)[ws.ID]
	assert.Len(t, all, 2, "the two variants cache independently")
}

func TestSelectors_SortedWorkspaceIDsInvalidatesOnEitherCollection(t *testing.T) {
	w1 := testutil.NewTestWorkspace("First", testutil.WithWorkspacePosition(0))
	w2 := testutil.NewTestWorkspace("Second", testutil.WithWorkspacePosition(1))
	state := domain.NewTimelineState().WithWorkspace(w1).WithWorkspace(w2)

	sel := New()
	assert.Equal(t, []string{w1.ID, w2.ID}, sel.SortedWorkspaceIDs(state))

	// Settings change flips the order.
	state = state.WithSettings(&domain.UserSettings{WorkspaceOrder: []string{w2.ID, w1.ID}})
	assert.Equal(t, []string{w2.ID, w1.ID}, sel.SortedWorkspaceIDs(state))

	// Workspace change is picked up too.
	w3 := testutil.NewTestWorkspace("Third", testutil.WithWorkspacePosition(2))
	state = state.WithWorkspace(w3)
	assert.Equal(t, []string{w2.ID, w1.ID, w3.ID}, sel.SortedWorkspaceIDs(state))
}

func TestSelectors_SubProjectTasksExcludesDanglingRefs(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	sub := testutil.NewTestSubProject(projID, "Sprint", "2024-03-01", "2024-03-10")
	state = state.WithSubProject(sub).WithTasks([]*domain.Task{
		testutil.NewTestTask(projID, "In", "2024-03-02", testutil.WithSubProject(sub.ID)),
		testutil.NewTestTask("other", "Stray", "2024-03-02", testutil.WithSubProject(sub.ID)),
		testutil.NewTestTask(projID, "Loose", "2024-03-02"),
	})

	tasks := New().SubProjectTasks(state, sub.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "In", tasks[0].Title)

	assert.Nil(t, New().SubProjectTasks(state, "missing"))
}

func TestSelectors_ProjectSubProjectsOrdered(t *testing.T) {
	state := buildState()
	var projID string
	for id := range state.Projects {
		projID = id
	}
	b := testutil.NewTestSubProject(projID, "B", "2024-03-05", "2024-03-09")
	a := testutil.NewTestSubProject(projID, "A", "2024-03-01", "2024-03-04")
	state = state.WithSubProject(b).WithSubProject(a)

	subs := New().ProjectSubProjects(state)[projID]
	require.Len(t, subs, 2)
	assert.Equal(t, "A", subs[0].Title)
	assert.Equal(t, "B", subs[1].Title)
}
