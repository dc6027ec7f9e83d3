// Package selector derives render-ready views from the timeline aggregate.
// Selectors are pure over the state they are given and memoized per
// collection revision: because states are copy-on-write, an unchanged
// revision means the underlying map is the same object and the cached result
// is still valid, so unrelated edits never force recomputation.
package selector

import (
	"sort"
	"sync"

	"github.com/alexanderramin/chrona/internal/domain"
)

// Counts is a project's task completion aggregate.
type Counts struct {
	Completed int
	Total     int
}

type cached[T any] struct {
	rev   uint64
	valid bool
	value T
}

func (c *cached[T]) get(rev uint64, compute func() T) T {
	if c.valid && c.rev == rev {
		return c.value
	}
	c.value = compute()
	c.rev = rev
	c.valid = true
	return c.value
}

// Selectors holds the memoization state. One instance per consumer context;
// safe for concurrent use.
type Selectors struct {
	mu sync.Mutex

	projectTasks       cached[map[string][]*domain.Task]
	tasksByDay         cached[map[string]map[string][]*domain.Task]
	projectMilestones  cached[map[string][]*domain.Milestone]
	milestonesByDay    cached[map[string]map[string][]*domain.Milestone]
	projectSubProjects cached[map[string][]*domain.SubProject]
	taskCounts         cached[map[string]Counts]

	workspaceProjects       cached[map[string][]*domain.Project]
	workspaceProjectsHidden cached[map[string][]*domain.Project]

	sortedWorkspaceIDs cached[[]string]
	workspaceIDsRevW   uint64
}

func New() *Selectors {
	return &Selectors{}
}

// ProjectTasks maps projectId to its tasks sorted by date, position, id.
func (sel *Selectors) ProjectTasks(s *domain.TimelineState) map[string][]*domain.Task {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.projectTasks.get(s.Revs.Tasks, func() map[string][]*domain.Task {
		out := map[string][]*domain.Task{}
		for _, t := range s.Tasks {
			out[t.ProjectID] = append(out[t.ProjectID], t)
		}
		for _, tasks := range out {
			sortTasks(tasks)
		}
		return out
	})
}

// TasksByDay maps projectId -> day (YYYY-MM-DD) -> tasks, for O(1) per-day
// lookup during rendering.
func (sel *Selectors) TasksByDay(s *domain.TimelineState) map[string]map[string][]*domain.Task {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.tasksByDay.get(s.Revs.Tasks, func() map[string]map[string][]*domain.Task {
		out := map[string]map[string][]*domain.Task{}
		for _, t := range s.Tasks {
			days := out[t.ProjectID]
			if days == nil {
				days = map[string][]*domain.Task{}
				out[t.ProjectID] = days
			}
			day := domain.FormatDay(t.Date)
			days[day] = append(days[day], t)
		}
		for _, days := range out {
			for _, tasks := range days {
				sortTasks(tasks)
			}
		}
		return out
	})
}

// ProjectMilestones maps projectId to milestones sorted by date then id.
func (sel *Selectors) ProjectMilestones(s *domain.TimelineState) map[string][]*domain.Milestone {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.projectMilestones.get(s.Revs.Milestones, func() map[string][]*domain.Milestone {
		out := map[string][]*domain.Milestone{}
		for _, m := range s.Milestones {
			out[m.ProjectID] = append(out[m.ProjectID], m)
		}
		for _, ms := range out {
			sort.SliceStable(ms, func(i, j int) bool {
				if !domain.SameDay(ms[i].Date, ms[j].Date) {
					return ms[i].Date.Before(ms[j].Date)
				}
				return ms[i].ID < ms[j].ID
			})
		}
		return out
	})
}

// MilestonesByDay maps projectId -> day -> milestones.
func (sel *Selectors) MilestonesByDay(s *domain.TimelineState) map[string]map[string][]*domain.Milestone {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.milestonesByDay.get(s.Revs.Milestones, func() map[string]map[string][]*domain.Milestone {
		out := map[string]map[string][]*domain.Milestone{}
		for _, m := range s.Milestones {
			days := out[m.ProjectID]
			if days == nil {
				days = map[string][]*domain.Milestone{}
				out[m.ProjectID] = days
			}
			day := domain.FormatDay(m.Date)
			days[day] = append(days[day], m)
		}
		return out
	})
}

// ProjectSubProjects maps projectId to sub-projects in the deterministic
// lane-packing order (start, end, id).
func (sel *Selectors) ProjectSubProjects(s *domain.TimelineState) map[string][]*domain.SubProject {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.projectSubProjects.get(s.Revs.SubProjects, func() map[string][]*domain.SubProject {
		out := map[string][]*domain.SubProject{}
		for _, sp := range s.SubProjects {
			out[sp.ProjectID] = append(out[sp.ProjectID], sp)
		}
		for _, sps := range out {
			sort.SliceStable(sps, func(i, j int) bool {
				a, b := sps[i], sps[j]
				if !domain.SameDay(a.StartDate, b.StartDate) {
					return a.StartDate.Before(b.StartDate)
				}
				if !domain.SameDay(a.EndDate, b.EndDate) {
					return a.EndDate.Before(b.EndDate)
				}
				return a.ID < b.ID
			})
		}
		return out
	})
}

// WorkspaceProjects maps workspaceId to its projects ordered by position
// then id. When showHidden is false, hidden projects are filtered out.
func (sel *Selectors) WorkspaceProjects(s *domain.TimelineState, showHidden bool) map[string][]*domain.Project {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	slot := &sel.workspaceProjects
	if showHidden {
		slot = &sel.workspaceProjectsHidden
	}
	return slot.get(s.Revs.Projects, func() map[string][]*domain.Project {
		out := map[string][]*domain.Project{}
		for _, p := range s.Projects {
			if p.Hidden && !showHidden {
				continue
			}
			out[p.WorkspaceID] = append(out[p.WorkspaceID], p)
		}
		for _, ps := range out {
			sort.SliceStable(ps, func(i, j int) bool {
				if ps[i].Position != ps[j].Position {
					return ps[i].Position < ps[j].Position
				}
				return ps[i].ID < ps[j].ID
			})
		}
		return out
	})
}

// SortedWorkspaceIDs resolves the workspace display order from settings,
// falling back to position for ids absent from the saved order.
func (sel *Selectors) SortedWorkspaceIDs(s *domain.TimelineState) []string {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	// Depends on two collections; invalidate when either moved.
	if sel.workspaceIDsRevW != s.Revs.Workspaces {
		sel.sortedWorkspaceIDs.valid = false
		sel.workspaceIDsRevW = s.Revs.Workspaces
	}
	return sel.sortedWorkspaceIDs.get(s.Revs.Settings, func() []string {
		return s.WorkspaceOrder()
	})
}

// TaskCounts maps projectId to completed/total task counts.
func (sel *Selectors) TaskCounts(s *domain.TimelineState) map[string]Counts {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.taskCounts.get(s.Revs.Tasks, func() map[string]Counts {
		out := map[string]Counts{}
		for _, t := range s.Tasks {
			c := out[t.ProjectID]
			c.Total++
			if t.Completed {
				c.Completed++
			}
			out[t.ProjectID] = c
		}
		return out
	})
}

// SubProjectTasks returns the tasks grouped under one sub-project, in date
// order. Dangling references (wrong project) are excluded. Not memoized:
// callers use it at selection time, not per frame.
func (sel *Selectors) SubProjectTasks(s *domain.TimelineState, subProjectID string) []*domain.Task {
	sp, ok := s.SubProjects[subProjectID]
	if !ok {
		return nil
	}
	var out []*domain.Task
	for _, t := range s.Tasks {
		if t.GroupedUnder(sp) {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out
}

func sortTasks(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !domain.SameDay(a.Date, b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
