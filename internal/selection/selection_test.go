package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_ClickReplacesSelection(t *testing.T) {
	m := NewMachine()
	m.Click("a")
	m.Click("b")

	assert.Equal(t, ModeSingle, m.Mode())
	assert.Equal(t, []string{"b"}, m.Selected())
}

func TestMachine_ToggleClickBuildsAndCollapses(t *testing.T) {
	m := NewMachine()
	m.ToggleClick("a")
	m.ToggleClick("b")
	assert.Equal(t, ModeMulti, m.Mode())

	m.ToggleClick("a")
	assert.Equal(t, ModeSingle, m.Mode())

	m.ToggleClick("b")
	assert.Equal(t, ModeIdle, m.Mode(), "removing the last entity collapses to idle")
	assert.Empty(t, m.Selected())
}

func TestMachine_SelectSubProjectExpandsToChildren(t *testing.T) {
	m := NewMachine()
	m.SelectSubProject("sp", []string{"t1", "t2", "t3"})

	assert.Equal(t, 4, m.Count())
	assert.True(t, m.IsSelected("sp"))
	assert.True(t, m.IsSelected("t2"))
}

func TestMachine_DeletedEntityLeavesNoDanglingID(t *testing.T) {
	m := NewMachine()
	m.SelectSubProject("sp", []string{"t1", "t2", "t3"})

	m.EntityDeleted("t2")
	assert.Equal(t, 3, m.Count())
	assert.False(t, m.IsSelected("t2"))
}

func TestMachine_QuickPopoversAreExclusive(t *testing.T) {
	m := NewMachine()
	m.OpenQuickEdit("task", Rect{X: 10, Y: 20, Width: 100, Height: 30})
	require.NotNil(t, m.QuickEditOpen())

	m.OpenQuickCreate(QuickCreate{ProjectID: "proj"})
	assert.Nil(t, m.QuickEditOpen(), "opening quick-create closes quick-edit")
	require.NotNil(t, m.QuickCreateOpen())

	m.OpenQuickEdit("other", Rect{})
	assert.Nil(t, m.QuickCreateOpen(), "opening quick-edit closes quick-create")
}

func TestMachine_QuickEditIndependentOfSelection(t *testing.T) {
	m := NewMachine()
	m.Click("a")
	m.OpenQuickEdit("b", Rect{})

	assert.True(t, m.IsSelected("a"))
	assert.Equal(t, "b", m.QuickEditOpen().EntityID)
}

func TestMachine_CanvasClickClearsEverything(t *testing.T) {
	m := NewMachine()
	m.ToggleClick("a")
	m.ToggleClick("b")
	m.OpenQuickEdit("a", Rect{})

	m.CanvasClick()
	assert.Equal(t, ModeIdle, m.Mode())
	assert.Nil(t, m.QuickEditOpen())
	assert.Nil(t, m.QuickCreateOpen())
}

func TestMachine_DeletingEditedEntityClosesQuickEdit(t *testing.T) {
	m := NewMachine()
	m.Click("task")
	m.OpenQuickEdit("task", Rect{})

	m.EntityDeleted("task")
	assert.Nil(t, m.QuickEditOpen())
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestMachine_DragSelect(t *testing.T) {
	m := NewMachine()
	m.BeginDrag("a")
	assert.True(t, m.Dragging())

	m.DragEnter("b")
	m.DragEnter("c")
	m.EndDrag()

	assert.False(t, m.Dragging())
	assert.Equal(t, []string{"a", "b", "c"}, m.Selected())
}

func TestMachine_DragEnterIgnoredWhenNotDragging(t *testing.T) {
	m := NewMachine()
	m.DragEnter("a")
	assert.Equal(t, ModeIdle, m.Mode())
}
