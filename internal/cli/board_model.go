package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chrona/internal/cli/formatter"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/selection"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// storeChangedMsg signals that the aggregate moved underneath the board.
type storeChangedMsg struct{}

// mutationErrMsg surfaces a background reconciliation failure in the footer.
type mutationErrMsg struct{ err error }

type boardKeys struct {
	NextProject key.Binding
	PrevProject key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Select      key.Binding
	Group       key.Binding
	Edit        key.Binding
	NewTask     key.Binding
	NewSub      key.Binding
	Delete      key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

func defaultBoardKeys() boardKeys {
	return boardKeys{
		NextProject: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next project")),
		PrevProject: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev project")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Select:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select")),
		Group:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "select group")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		NewTask:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		NewSub:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new sub-project")),
		Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete selected")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the root bubbletea model for the interactive timeline board.
// Selection and popover state live in the selection machine; timeline data is
// always read fresh from the store.
type boardModel struct {
	app     *App
	keys    boardKeys
	machine *selection.Machine

	projects []string
	active   int

	rows   []*domain.Task
	cursor int

	// Inline title edit bound to the quick-edit popover; each keystroke is
	// applied through the debounced edit path.
	editInput textinput.Model

	// Quick-create form state.
	form      *huh.Form
	formKind  string // "task" or "sub" or "delete-sub"
	formTitle string
	formDate  string
	formStart string
	formEnd   string
	formMode  string
	formSubID string

	vp      viewport.Model
	width   int
	height  int
	lastErr string
	changes chan struct{}
}

func newBoardModel(app *App) *boardModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 200

	m := &boardModel{
		app:       app,
		keys:      defaultBoardKeys(),
		machine:   selection.NewMachine(),
		editInput: ti,
		vp:        viewport.New(0, 0),
		changes:   make(chan struct{}, 1),
	}
	m.reloadProjects()
	m.reloadRows()
	return m
}

// runBoard starts the interactive board and blocks until the user quits.
func runBoard(app *App) error {
	m := newBoardModel(app)
	cancel := app.Store.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	defer cancel()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	app.Mutator.Flush()
	return err
}

func (m *boardModel) reloadProjects() {
	state := m.app.Store.State()
	byWorkspace := m.app.Selectors.WorkspaceProjects(state, false)
	m.projects = m.projects[:0]
	for _, wsID := range m.app.Selectors.SortedWorkspaceIDs(state) {
		for _, p := range byWorkspace[wsID] {
			m.projects = append(m.projects, p.ID)
		}
	}
	if m.active >= len(m.projects) {
		m.active = 0
	}
}

func (m *boardModel) activeProject() string {
	if len(m.projects) == 0 {
		return ""
	}
	return m.projects[m.active]
}

// reloadRows rebuilds the cursor list for the active project and drops
// selection entries for tasks that no longer exist.
func (m *boardModel) reloadRows() {
	state := m.app.Store.State()
	m.rows = m.app.Selectors.ProjectTasks(state)[m.activeProject()]
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	for _, id := range m.machine.Selected() {
		if _, ok := state.Tasks[id]; ok {
			continue
		}
		if _, ok := state.SubProjects[id]; ok {
			continue
		}
		m.machine.EntityDeleted(id)
	}
	if qe := m.machine.QuickEditOpen(); qe != nil {
		if _, ok := state.Tasks[qe.EntityID]; !ok {
			m.machine.ClosePopovers()
			m.editInput.Blur()
		}
	}
}

func (m *boardModel) cursorTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *boardModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return storeChangedMsg{}
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *boardModel) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 3
		return m, nil

	case storeChangedMsg:
		m.reloadProjects()
		m.reloadRows()
		return m, m.waitForChange()

	case mutationErrMsg:
		m.lastErr = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.machine.QuickEditOpen() != nil {
			return m.updateQuickEdit(msg)
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextProject):
		if len(m.projects) > 0 {
			m.active = (m.active + 1) % len(m.projects)
			m.cursor = 0
			m.machine.CanvasClick()
			m.reloadRows()
		}

	case key.Matches(msg, m.keys.PrevProject):
		if len(m.projects) > 0 {
			m.active = (m.active - 1 + len(m.projects)) % len(m.projects)
			m.cursor = 0
			m.machine.CanvasClick()
			m.reloadRows()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if t := m.cursorTask(); t != nil {
			m.machine.ToggleClick(t.ID)
		}

	case key.Matches(msg, m.keys.Group):
		if t := m.cursorTask(); t != nil && t.SubProjectID != "" {
			children := m.app.Selectors.SubProjectTasks(m.app.Store.State(), t.SubProjectID)
			ids := make([]string, len(children))
			for i, c := range children {
				ids[i] = c.ID
			}
			m.machine.SelectSubProject(t.SubProjectID, ids)
		}

	case key.Matches(msg, m.keys.Toggle):
		if t := m.cursorTask(); t != nil {
			return m, m.mutate(func() error {
				commit, err := m.app.Mutator.ToggleTaskCompletion(ctx, t.ID)
				if err != nil {
					return err
				}
				return commit.Wait()
			})
		}

	case key.Matches(msg, m.keys.Edit):
		if t := m.cursorTask(); t != nil {
			m.machine.OpenQuickEdit(t.ID, selection.Rect{Y: m.cursor})
			m.editInput.SetValue(t.Title)
			m.editInput.CursorEnd()
			m.editInput.Focus()
		}

	case key.Matches(msg, m.keys.NewTask):
		day := time.Now()
		if t := m.cursorTask(); t != nil {
			day = t.Date
		}
		m.machine.OpenQuickCreate(selection.QuickCreate{
			ProjectID: m.activeProject(),
			Day:       domain.DayOf(day),
		})
		m.formKind = "task"
		m.formTitle = ""
		m.formDate = domain.FormatDay(day)
		m.form = quickCreateTaskForm(&m.formTitle, &m.formDate)
		return m, m.form.Init()

	case key.Matches(msg, m.keys.NewSub):
		today := domain.DayOf(time.Now())
		m.machine.OpenQuickCreate(selection.QuickCreate{ProjectID: m.activeProject(), Day: today})
		m.formKind = "sub"
		m.formTitle = ""
		m.formStart = domain.FormatDay(today)
		m.formEnd = domain.FormatDay(domain.AddDays(today, 6))
		m.form = quickCreateSubProjectForm(&m.formTitle, &m.formStart, &m.formEnd)
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.keys.Clear):
		m.machine.CanvasClick()
	}
	return m, nil
}

// updateQuickEdit feeds keystrokes into the inline title editor; every change
// goes through the debounced edit path so the backend sees one update.
func (m *boardModel) updateQuickEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	qe := m.machine.QuickEditOpen()
	switch msg.String() {
	case "esc", "enter":
		m.machine.ClosePopovers()
		m.editInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if err := m.app.Mutator.EditTaskTitle(context.Background(), qe.EntityID, m.editInput.Value()); err != nil {
		m.lastErr = err.Error()
	}
	return m, cmd
}

func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		m.machine.ClosePopovers()
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	kind := m.formKind
	m.form = nil
	qc := m.machine.QuickCreateOpen()
	m.machine.ClosePopovers()

	switch kind {
	case "task":
		if qc == nil {
			return m, cmd
		}
		title, date := m.formTitle, m.formDate
		return m, m.mutate(func() error {
			day, err := domain.ParseDay(date)
			if err != nil {
				return err
			}
			commit, err := m.app.Mutator.CreateTask(context.Background(), &domain.Task{
				ProjectID: qc.ProjectID,
				Title:     title,
				Date:      day,
				Color:     "yellow",
			})
			if err != nil {
				return err
			}
			return commit.Wait()
		})

	case "sub":
		if qc == nil {
			return m, cmd
		}
		title, start, end := m.formTitle, m.formStart, m.formEnd
		return m, m.mutate(func() error {
			startDay, err := domain.ParseDay(start)
			if err != nil {
				return err
			}
			endDay, err := domain.ParseDay(end)
			if err != nil {
				return err
			}
			commit, err := m.app.Mutator.CreateSubProject(context.Background(), &domain.SubProject{
				ProjectID: qc.ProjectID,
				Title:     title,
				StartDate: startDay,
				EndDate:   endDay,
				Color:     "purple",
			})
			if err != nil {
				return err
			}
			return commit.Wait()
		})

	case "delete-sub":
		subID, mode := m.formSubID, domain.TaskResolution(m.formMode)
		return m, m.mutate(func() error {
			commit, err := m.app.Mutator.DeleteSubProject(context.Background(), subID, mode)
			if err != nil {
				return err
			}
			return commit.Wait()
		})
	}
	return m, cmd
}

// deleteSelected removes every selected entity. A selected sub-project opens
// the resolution form instead of deleting blindly.
func (m *boardModel) deleteSelected() tea.Cmd {
	state := m.app.Store.State()
	selected := m.machine.Selected()
	if len(selected) == 0 {
		if t := m.cursorTask(); t != nil {
			selected = []string{t.ID}
		}
	}

	var taskIDs []string
	for _, id := range selected {
		if _, ok := state.SubProjects[id]; ok {
			m.formKind = "delete-sub"
			m.formSubID = id
			m.formMode = string(domain.OrphanTasks)
			m.form = deleteSubProjectForm(&m.formMode)
			return m.form.Init()
		}
		if _, ok := state.Tasks[id]; ok {
			taskIDs = append(taskIDs, id)
		}
	}
	if len(taskIDs) == 0 {
		return nil
	}

	for _, id := range taskIDs {
		m.machine.EntityDeleted(id)
	}
	return m.mutate(func() error {
		ctx := context.Background()
		for _, id := range taskIDs {
			commit, err := m.app.Mutator.DeleteTask(ctx, id)
			if err != nil {
				return err
			}
			if err := commit.Wait(); err != nil {
				return err
			}
		}
		return nil
	})
}

// mutate runs a mutation off the event loop and surfaces its error, if any.
func (m *boardModel) mutate(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return mutationErrMsg{err: err}
		}
		return nil
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m *boardModel) View() string {
	if len(m.projects) == 0 {
		return formatter.Dim("No projects. Create one with: chrona project add") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(renderTimeline(m.app, m.activeProject()))
	b.WriteString("\n")
	b.WriteString(m.renderRows())

	if m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.form.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	m.vp.SetContent(b.String())
	return m.vp.View() + "\n" + m.renderHelp()
}

func (m *boardModel) renderTabs() string {
	state := m.app.Store.State()
	parts := make([]string, 0, len(m.projects))
	for i, id := range m.projects {
		p := state.Projects[id]
		if p == nil {
			continue
		}
		label := p.Name
		if i == m.active {
			parts = append(parts, formatter.StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m *boardModel) renderRows() string {
	if len(m.rows) == 0 {
		return formatter.Dim("No tasks yet. Press n to add one.")
	}
	state := m.app.Store.State()
	var b strings.Builder
	for i, t := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = formatter.StyleHeader.Render("❯ ")
		}
		mark := formatter.CheckMark(t.Completed)
		title := t.Title
		if qe := m.machine.QuickEditOpen(); qe != nil && qe.EntityID == t.ID {
			title = m.editInput.View()
		}
		if m.machine.IsSelected(t.ID) {
			title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Render(title)
		}
		group := ""
		if sp, ok := state.SubProjects[t.SubProjectID]; ok && t.GroupedUnder(sp) {
			group = formatter.Dim("  · " + sp.Title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s%s\n",
			prefix, mark, formatter.Dim(domain.FormatDay(t.Date)), title, group))
	}
	return b.String()
}

func (m *boardModel) renderFooter() string {
	if m.lastErr != "" {
		return formatter.StyleRed.Render("✗ " + m.lastErr)
	}
	if n := m.machine.Count(); n > 0 {
		return formatter.Dim(fmt.Sprintf("%d selected", n))
	}
	if m.app.Store.Stale() {
		return formatter.Dim("syncing…")
	}
	return ""
}

func (m *boardModel) renderHelp() string {
	bindings := []key.Binding{
		m.keys.NextProject, m.keys.Toggle, m.keys.Select, m.keys.Edit,
		m.keys.NewTask, m.keys.NewSub, m.keys.Delete, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.Dim(h.Key+" "+h.Desc))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
