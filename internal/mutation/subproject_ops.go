package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/cascade"
	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

func (m *Mutator) CreateSubProject(ctx context.Context, sp *domain.SubProject) (*Commit, error) {
	state := m.store.State()
	if _, ok := state.Projects[sp.ProjectID]; !ok {
		return nil, &ValidationError{Entity: domain.EntitySubProject,
			Reason: fmt.Sprintf("project %s does not exist", sp.ProjectID)}
	}
	if err := sp.Validate(); err != nil {
		return nil, &ValidationError{Entity: domain.EntitySubProject, Reason: err.Error()}
	}

	local := sp.Clone()
	if local.ID == "" {
		local.ID = domain.NewTempID()
	}
	now := time.Now().UTC()
	local.CreatedAt = now
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithSubProject(local)
	})

	commit := newCommit()
	go func() {
		persisted, err := m.repos.SubProjects.Create(ctx, local.Clone())
		if err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntitySubProject, Op: OpCreate, Cause: err})
			return
		}
		m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
			return s.SwapSubProjectID(local.ID, persisted)
		})
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// UpdateSubProject applies a partial update. Date edits go through the
// cascade: a start-date shift republishes new dates for every child task.
func (m *Mutator) UpdateSubProject(ctx context.Context, id string, patch repository.SubProjectPatch) (*Commit, error) {
	state := m.store.State()
	cur, ok := state.SubProjects[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntitySubProject,
			Reason: fmt.Sprintf("sub-project %s does not exist", id)}
	}

	local := cur.Clone()
	applySubProjectPatch(local, patch)
	if err := local.Validate(); err != nil {
		return nil, &ValidationError{Entity: domain.EntitySubProject, Reason: err.Error()}
	}
	now := time.Now().UTC()
	local.UpdatedAt = now

	// Pure computation over the old and new sub-project; the batch apply and
	// remote fan-out stay here.
	tasks := make([]*domain.Task, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		tasks = append(tasks, t)
	}
	patches := cascade.ShiftTasks(cur, local, tasks)

	shifted := make([]*domain.Task, 0, len(patches))
	for _, p := range patches {
		c := state.Tasks[p.TaskID].Clone()
		c.Date = p.NewDate
		c.UpdatedAt = now
		shifted = append(shifted, c)
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithSubProject(local).WithTasks(shifted)
	})

	commit := newCommit()
	go func() {
		if _, err := m.repos.SubProjects.Update(ctx, id, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntitySubProject, Op: OpUpdate, Cause: err})
			return
		}
		for _, p := range patches {
			d := p.NewDate
			if _, err := m.repos.Tasks.Update(ctx, p.TaskID, repository.TaskPatch{Date: &d}); err != nil {
				m.store.Restore(snap)
				m.store.MarkStale()
				commit.settle(&MutationFailed{Entity: domain.EntitySubProject, Op: OpUpdate, Cause: err})
				return
			}
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// RescheduleSubProject moves the whole range, e.g. from a drag gesture.
func (m *Mutator) RescheduleSubProject(ctx context.Context, id string, start, end time.Time) (*Commit, error) {
	return m.UpdateSubProject(ctx, id, repository.SubProjectPatch{
		StartDate: ptr(domain.DayOf(start)),
		EndDate:   ptr(domain.DayOf(end)),
	})
}

// DeleteSubProject removes the sub-project; mode decides whether its tasks
// are orphaned or deleted with it.
func (m *Mutator) DeleteSubProject(ctx context.Context, id string, mode domain.TaskResolution) (*Commit, error) {
	state := m.store.State()
	sp, ok := state.SubProjects[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntitySubProject,
			Reason: fmt.Sprintf("sub-project %s does not exist", id)}
	}

	snap := m.store.Snapshot()
	now := time.Now().UTC()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		next := s.WithoutSubProject(id)
		switch mode {
		case domain.DeleteTasks:
			for tid, t := range s.Tasks {
				if t.GroupedUnder(sp) {
					next = next.WithoutTask(tid)
				}
			}
		default: // orphan
			var orphaned []*domain.Task
			for _, t := range s.Tasks {
				if t.GroupedUnder(sp) {
					c := t.Clone()
					c.SubProjectID = ""
					c.UpdatedAt = now
					orphaned = append(orphaned, c)
				}
			}
			next = next.WithTasks(orphaned)
		}
		return next
	})

	commit := newCommit()
	go func() {
		if err := m.repos.SubProjects.Delete(ctx, id, mode); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntitySubProject, Op: OpDelete, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// EditSubProjectTitle debounces the remote update like EditTaskTitle.
func (m *Mutator) EditSubProjectTitle(ctx context.Context, id, title string) error {
	cur, ok := m.store.State().SubProjects[id]
	if !ok {
		return &ValidationError{Entity: domain.EntitySubProject,
			Reason: fmt.Sprintf("sub-project %s does not exist", id)}
	}

	local := cur.Clone()
	local.Title = title
	local.UpdatedAt = time.Now().UTC()

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithSubProject(local)
	})

	m.debounce.Schedule("sub_project:"+id, func() {
		if _, err := m.repos.SubProjects.Update(ctx, id, repository.SubProjectPatch{Title: ptr(title)}); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			m.reportError(&MutationFailed{Entity: domain.EntitySubProject, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
	})
	return nil
}

func applySubProjectPatch(sp *domain.SubProject, patch repository.SubProjectPatch) {
	if patch.Title != nil {
		sp.Title = *patch.Title
	}
	if patch.StartDate != nil {
		sp.StartDate = domain.DayOf(*patch.StartDate)
	}
	if patch.EndDate != nil {
		sp.EndDate = domain.DayOf(*patch.EndDate)
	}
	if patch.Color != nil {
		sp.Color = *patch.Color
	}
	if patch.Description != nil {
		sp.Description = *patch.Description
	}
}
