// Package selection tracks which entities are selected and which quick
// popover is open. It runs on the UI event loop and is queried by the
// presentation layer; it never touches the store.
package selection

import (
	"sort"
	"time"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeSingle
	ModeMulti
)

// Rect anchors a popover to an entity's on-screen position.
type Rect struct {
	X, Y          int
	Width, Height int
}

// QuickCreate is the context for an open quick-create popover.
type QuickCreate struct {
	ProjectID string
	Day       time.Time
	Anchor    Rect
}

// QuickEdit is an open quick-edit popover for one entity.
type QuickEdit struct {
	EntityID string
	Anchor   Rect
}

// Machine is the selection and transient-edit state. Single-threaded by
// design: it is driven and read from the UI event loop only.
type Machine struct {
	selected   map[string]struct{}
	dragging   bool
	dragAnchor string

	quickCreate *QuickCreate
	quickEdit   *QuickEdit
}

func NewMachine() *Machine {
	return &Machine{selected: map[string]struct{}{}}
}

// Mode reports the current selection mode.
func (m *Machine) Mode() Mode {
	switch len(m.selected) {
	case 0:
		return ModeIdle
	case 1:
		return ModeSingle
	default:
		return ModeMulti
	}
}

// Click replaces the selection with a single entity.
func (m *Machine) Click(id string) {
	m.selected = map[string]struct{}{id: {}}
}

// ToggleClick adds or removes an entity from the selection (modifier-click).
// Removing the last entity collapses to idle.
func (m *Machine) ToggleClick(id string) {
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return
	}
	m.selected[id] = struct{}{}
}

// SelectSubProject selects the sub-project and expands the selection to its
// current child tasks. The expansion happens once, here; it is not
// maintained as tasks later join or leave the sub-project.
func (m *Machine) SelectSubProject(subProjectID string, childTaskIDs []string) {
	m.selected = map[string]struct{}{subProjectID: {}}
	for _, id := range childTaskIDs {
		m.selected[id] = struct{}{}
	}
}

// OpenQuickCreate opens the quick-create popover, closing any other popover.
func (m *Machine) OpenQuickCreate(qc QuickCreate) {
	m.quickEdit = nil
	m.quickCreate = &qc
}

// OpenQuickEdit opens a quick-edit popover anchored to the entity,
// independent of the selection, closing any other popover.
func (m *Machine) OpenQuickEdit(entityID string, anchor Rect) {
	m.quickCreate = nil
	m.quickEdit = &QuickEdit{EntityID: entityID, Anchor: anchor}
}

// ClosePopovers dismisses any open quick-create/quick-edit.
func (m *Machine) ClosePopovers() {
	m.quickCreate = nil
	m.quickEdit = nil
}

// QuickCreateOpen returns the open quick-create context, or nil.
func (m *Machine) QuickCreateOpen() *QuickCreate {
	return m.quickCreate
}

// QuickEditOpen returns the open quick-edit, or nil.
func (m *Machine) QuickEditOpen() *QuickEdit {
	return m.quickEdit
}

// CanvasClick clears the selection and closes popovers.
func (m *Machine) CanvasClick() {
	m.selected = map[string]struct{}{}
	m.dragging = false
	m.dragAnchor = ""
	m.ClosePopovers()
}

// BeginDrag starts a provisional multi-select anchored at the entity.
func (m *Machine) BeginDrag(id string) {
	m.dragging = true
	m.dragAnchor = id
	m.selected = map[string]struct{}{id: {}}
}

// DragEnter adds an entity to the provisional selection while dragging.
func (m *Machine) DragEnter(id string) {
	if !m.dragging {
		return
	}
	m.selected[id] = struct{}{}
}

// EndDrag commits the provisional selection.
func (m *Machine) EndDrag() {
	m.dragging = false
	m.dragAnchor = ""
}

// Dragging reports whether a drag-select is in progress.
func (m *Machine) Dragging() bool {
	return m.dragging
}

// EntityDeleted removes a deleted entity from the selection and closes any
// quick-edit referencing it, so no stale id survives.
func (m *Machine) EntityDeleted(id string) {
	delete(m.selected, id)
	if m.quickEdit != nil && m.quickEdit.EntityID == id {
		m.quickEdit = nil
	}
	if m.dragAnchor == id {
		m.dragAnchor = ""
	}
}

// IsSelected reports whether the entity is in the selection set.
func (m *Machine) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// Selected returns the selection set in stable order.
func (m *Machine) Selected() []string {
	out := make([]string, 0, len(m.selected))
	for id := range m.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the selection set size.
func (m *Machine) Count() int {
	return len(m.selected)
}
