package cascade

import (
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftTasks_StartDateMoveShiftsChildren(t *testing.T) {
	old := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	updated := old.Clone()
	updated.StartDate = testutil.Day("2024-01-04")
	updated.EndDate = testutil.Day("2024-01-13")

	t1 := testutil.NewTestTask("proj", "Kickoff", "2024-01-02", testutil.WithSubProject(old.ID))
	t2 := testutil.NewTestTask("proj", "Review", "2024-01-03", testutil.WithSubProject(old.ID))
	other := testutil.NewTestTask("proj", "Unrelated", "2024-01-02")

	patches := ShiftTasks(old, updated, []*domain.Task{t1, t2, other})
	require.Len(t, patches, 2)

	byID := map[string]string{}
	for _, p := range patches {
		byID[p.TaskID] = domain.FormatDay(p.NewDate)
	}
	assert.Equal(t, "2024-01-05", byID[t1.ID])
	assert.Equal(t, "2024-01-06", byID[t2.ID])
	assert.NotContains(t, byID, other.ID, "tasks not referencing the sub-project are unaffected")
}

func TestShiftTasks_EndDateOnlyEditNeverCascades(t *testing.T) {
	old := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	updated := old.Clone()
	updated.EndDate = testutil.Day("2024-01-20")

	child := testutil.NewTestTask("proj", "Task", "2024-01-02", testutil.WithSubProject(old.ID))

	patches := ShiftTasks(old, updated, []*domain.Task{child})
	assert.Empty(t, patches)
}

func TestShiftTasks_NegativeDelta(t *testing.T) {
	old := testutil.NewTestSubProject("proj", "Sprint", "2024-01-10", "2024-01-20")
	updated := old.Clone()
	updated.StartDate = testutil.Day("2024-01-07")
	updated.EndDate = testutil.Day("2024-01-17")

	child := testutil.NewTestTask("proj", "Task", "2024-01-12", testutil.WithSubProject(old.ID))

	patches := ShiftTasks(old, updated, []*domain.Task{child})
	require.Len(t, patches, 1)
	assert.Equal(t, "2024-01-09", domain.FormatDay(patches[0].NewDate))
}

func TestShiftTasks_DanglingReferenceTreatedAsUngrouped(t *testing.T) {
	old := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	updated := old.Clone()
	updated.StartDate = testutil.Day("2024-01-02")
	updated.EndDate = testutil.Day("2024-01-11")

	// References the sub-project but belongs to a different project.
	stray := testutil.NewTestTask("other-proj", "Stray", "2024-01-02", testutil.WithSubProject(old.ID))

	patches := ShiftTasks(old, updated, []*domain.Task{stray})
	assert.Empty(t, patches)
}

func TestShiftTasks_NoTasks(t *testing.T) {
	old := testutil.NewTestSubProject("proj", "Sprint", "2024-01-01", "2024-01-10")
	updated := old.Clone()
	updated.StartDate = testutil.Day("2024-01-05")
	updated.EndDate = testutil.Day("2024-01-14")

	assert.Empty(t, ShiftTasks(old, updated, nil))
}
