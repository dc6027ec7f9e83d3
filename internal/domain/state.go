package domain

import "sort"

// Revisions are monotonic per-collection counters bumped by every
// copy-on-write helper. Selectors memoize on them: equal revision means the
// underlying map is the same object.
type Revisions struct {
	Workspaces  uint64
	Projects    uint64
	SubProjects uint64
	Milestones  uint64
	Tasks       uint64
	Settings    uint64
}

// TimelineState is the aggregate exchanged with the persistence backend.
// It is immutable by convention: every mutation helper returns a derived
// state sharing the untouched collection maps with its parent, so holders of
// an old state (snapshots, selector caches) are never disturbed.
type TimelineState struct {
	Workspaces  map[string]*Workspace
	Projects    map[string]*Project
	SubProjects map[string]*SubProject
	Milestones  map[string]*Milestone
	Tasks       map[string]*Task
	Settings    *UserSettings

	Revs Revisions
}

// NewTimelineState returns an empty aggregate.
func NewTimelineState() *TimelineState {
	return &TimelineState{
		Workspaces:  map[string]*Workspace{},
		Projects:    map[string]*Project{},
		SubProjects: map[string]*SubProject{},
		Milestones:  map[string]*Milestone{},
		Tasks:       map[string]*Task{},
		Settings:    &UserSettings{Theme: ThemeDark, ColorMode: ColorModeFull},
	}
}

// WorkspaceOrder resolves the display order for all workspaces: ids listed in
// settings come first in that order, the rest follow sorted by position.
// Ids in settings that no longer exist are skipped.
func (s *TimelineState) WorkspaceOrder() []string {
	ordered := make([]string, 0, len(s.Workspaces))
	seen := make(map[string]bool, len(s.Workspaces))
	for _, id := range s.Settings.WorkspaceOrder {
		if _, ok := s.Workspaces[id]; ok && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}
	var rest []*Workspace
	for id, w := range s.Workspaces {
		if !seen[id] {
			rest = append(rest, w)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Position != rest[j].Position {
			return rest[i].Position < rest[j].Position
		}
		return rest[i].ID < rest[j].ID
	})
	for _, w := range rest {
		ordered = append(ordered, w.ID)
	}
	return ordered
}

func cloneWorkspaceMap(m map[string]*Workspace) map[string]*Workspace {
	c := make(map[string]*Workspace, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneProjectMap(m map[string]*Project) map[string]*Project {
	c := make(map[string]*Project, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneSubProjectMap(m map[string]*SubProject) map[string]*SubProject {
	c := make(map[string]*SubProject, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneMilestoneMap(m map[string]*Milestone) map[string]*Milestone {
	c := make(map[string]*Milestone, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneTaskMap(m map[string]*Task) map[string]*Task {
	c := make(map[string]*Task, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}

// WithWorkspace returns a derived state with the workspace set or replaced.
func (s *TimelineState) WithWorkspace(w *Workspace) *TimelineState {
	d := *s
	d.Workspaces = cloneWorkspaceMap(s.Workspaces)
	d.Workspaces[w.ID] = w
	d.Revs.Workspaces++
	return &d
}

// WithoutWorkspace returns a derived state with the workspace removed.
func (s *TimelineState) WithoutWorkspace(id string) *TimelineState {
	d := *s
	d.Workspaces = cloneWorkspaceMap(s.Workspaces)
	delete(d.Workspaces, id)
	d.Revs.Workspaces++
	return &d
}

func (s *TimelineState) WithProject(p *Project) *TimelineState {
	d := *s
	d.Projects = cloneProjectMap(s.Projects)
	d.Projects[p.ID] = p
	d.Revs.Projects++
	return &d
}

func (s *TimelineState) WithoutProject(id string) *TimelineState {
	d := *s
	d.Projects = cloneProjectMap(s.Projects)
	delete(d.Projects, id)
	d.Revs.Projects++
	return &d
}

func (s *TimelineState) WithSubProject(sp *SubProject) *TimelineState {
	d := *s
	d.SubProjects = cloneSubProjectMap(s.SubProjects)
	d.SubProjects[sp.ID] = sp
	d.Revs.SubProjects++
	return &d
}

func (s *TimelineState) WithoutSubProject(id string) *TimelineState {
	d := *s
	d.SubProjects = cloneSubProjectMap(s.SubProjects)
	delete(d.SubProjects, id)
	d.Revs.SubProjects++
	return &d
}

func (s *TimelineState) WithMilestone(m *Milestone) *TimelineState {
	d := *s
	d.Milestones = cloneMilestoneMap(s.Milestones)
	d.Milestones[m.ID] = m
	d.Revs.Milestones++
	return &d
}

func (s *TimelineState) WithoutMilestone(id string) *TimelineState {
	d := *s
	d.Milestones = cloneMilestoneMap(s.Milestones)
	delete(d.Milestones, id)
	d.Revs.Milestones++
	return &d
}

func (s *TimelineState) WithTask(t *Task) *TimelineState {
	d := *s
	d.Tasks = cloneTaskMap(s.Tasks)
	d.Tasks[t.ID] = t
	d.Revs.Tasks++
	return &d
}

func (s *TimelineState) WithoutTask(id string) *TimelineState {
	d := *s
	d.Tasks = cloneTaskMap(s.Tasks)
	delete(d.Tasks, id)
	d.Revs.Tasks++
	return &d
}

// WithTasks replaces or inserts several tasks in one copy-on-write step.
// Used for batched cascade updates.
func (s *TimelineState) WithTasks(tasks []*Task) *TimelineState {
	if len(tasks) == 0 {
		return s
	}
	d := *s
	d.Tasks = cloneTaskMap(s.Tasks)
	for _, t := range tasks {
		d.Tasks[t.ID] = t
	}
	d.Revs.Tasks++
	return &d
}

func (s *TimelineState) WithSettings(set *UserSettings) *TimelineState {
	d := *s
	d.Settings = set
	d.Revs.Settings++
	return &d
}

// SwapWorkspaceID rebuilds the workspace map without the temp key plus the
// persisted record under its canonical id. If the temp key is gone (the
// entity was deleted locally before its create confirmed) the swap is a
// silent no-op and the persisted record is discarded.
func (s *TimelineState) SwapWorkspaceID(tempID string, persisted *Workspace) *TimelineState {
	if _, ok := s.Workspaces[tempID]; !ok {
		return s
	}
	d := *s
	d.Workspaces = cloneWorkspaceMap(s.Workspaces)
	delete(d.Workspaces, tempID)
	d.Workspaces[persisted.ID] = persisted
	d.Revs.Workspaces++
	return &d
}

func (s *TimelineState) SwapProjectID(tempID string, persisted *Project) *TimelineState {
	if _, ok := s.Projects[tempID]; !ok {
		return s
	}
	d := *s
	d.Projects = cloneProjectMap(s.Projects)
	delete(d.Projects, tempID)
	d.Projects[persisted.ID] = persisted
	d.Revs.Projects++
	return &d
}

func (s *TimelineState) SwapSubProjectID(tempID string, persisted *SubProject) *TimelineState {
	if _, ok := s.SubProjects[tempID]; !ok {
		return s
	}
	d := *s
	d.SubProjects = cloneSubProjectMap(s.SubProjects)
	delete(d.SubProjects, tempID)
	d.SubProjects[persisted.ID] = persisted
	d.Revs.SubProjects++
	return &d
}

func (s *TimelineState) SwapMilestoneID(tempID string, persisted *Milestone) *TimelineState {
	if _, ok := s.Milestones[tempID]; !ok {
		return s
	}
	d := *s
	d.Milestones = cloneMilestoneMap(s.Milestones)
	delete(d.Milestones, tempID)
	d.Milestones[persisted.ID] = persisted
	d.Revs.Milestones++
	return &d
}

func (s *TimelineState) SwapTaskID(tempID string, persisted *Task) *TimelineState {
	if _, ok := s.Tasks[tempID]; !ok {
		return s
	}
	d := *s
	d.Tasks = cloneTaskMap(s.Tasks)
	delete(d.Tasks, tempID)
	d.Tasks[persisted.ID] = persisted
	d.Revs.Tasks++
	return &d
}
