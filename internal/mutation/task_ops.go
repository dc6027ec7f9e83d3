package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

// CreateTask makes the task visible immediately under a temp id and
// reconciles it to the server-assigned id in the background.
func (m *Mutator) CreateTask(ctx context.Context, t *domain.Task) (*Commit, error) {
	state := m.store.State()
	if _, ok := state.Projects[t.ProjectID]; !ok {
		return nil, &ValidationError{Entity: domain.EntityTask,
			Reason: fmt.Sprintf("project %s does not exist", t.ProjectID)}
	}

	local := t.Clone()
	if local.ID == "" {
		local.ID = domain.NewTempID()
	}
	now := time.Now().UTC()
	local.CreatedAt = now
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(local)
	})

	commit := newCommit()
	go func() {
		persisted, err := m.repos.Tasks.Create(ctx, local.Clone())
		if err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityTask, Op: OpCreate, Cause: err})
			return
		}
		// Atomic under the store lock; a no-op if the task was deleted
		// locally before the create confirmed.
		m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
			return s.SwapTaskID(local.ID, persisted)
		})
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// UpdateTask applies a partial update locally and reconciles it remotely.
// A completion transition stamps CompletedAt exactly once.
func (m *Mutator) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*Commit, error) {
	state := m.store.State()
	cur, ok := state.Tasks[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntityTask,
			Reason: fmt.Sprintf("task %s does not exist", id)}
	}

	now := time.Now().UTC()
	if patch.Completed != nil {
		switch {
		case *patch.Completed && !cur.Completed:
			patch.CompletedAt = ptr(now)
		case !*patch.Completed:
			patch.CompletedAt = nil
		}
	}

	local := cur.Clone()
	applyTaskPatch(local, patch)
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(local)
	})

	commit := newCommit()
	go func() {
		if _, err := m.repos.Tasks.Update(ctx, id, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityTask, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// ToggleTaskCompletion flips the completed flag.
func (m *Mutator) ToggleTaskCompletion(ctx context.Context, id string) (*Commit, error) {
	cur, ok := m.store.State().Tasks[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntityTask,
			Reason: fmt.Sprintf("task %s does not exist", id)}
	}
	return m.UpdateTask(ctx, id, repository.TaskPatch{Completed: ptr(!cur.Completed)})
}

// DeleteTask removes the task locally and reconciles the delete remotely.
func (m *Mutator) DeleteTask(ctx context.Context, id string) (*Commit, error) {
	if _, ok := m.store.State().Tasks[id]; !ok {
		return nil, &ValidationError{Entity: domain.EntityTask,
			Reason: fmt.Sprintf("task %s does not exist", id)}
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithoutTask(id)
	})

	commit := newCommit()
	go func() {
		if err := m.repos.Tasks.Delete(ctx, id); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityTask, Op: OpDelete, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// EditTaskTitle applies the title immediately and debounces the remote
// update, so rapid typing produces a single backend call carrying the final
// value. Failures are reported through the mutator's error handler.
func (m *Mutator) EditTaskTitle(ctx context.Context, id, title string) error {
	cur, ok := m.store.State().Tasks[id]
	if !ok {
		return &ValidationError{Entity: domain.EntityTask,
			Reason: fmt.Sprintf("task %s does not exist", id)}
	}

	local := cur.Clone()
	local.Title = title
	local.UpdatedAt = time.Now().UTC()

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(local)
	})

	m.debounce.Schedule("task:"+id, func() {
		if _, err := m.repos.Tasks.Update(ctx, id, repository.TaskPatch{Title: ptr(title)}); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			m.reportError(&MutationFailed{Entity: domain.EntityTask, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
	})
	return nil
}

// ReorderTasks applies the new positions locally and issues the per-item
// backend updates. Partial failures are reported but not rolled back; the
// stale flag lets the next refresh converge.
func (m *Mutator) ReorderTasks(ctx context.Context, updates []repository.PositionUpdate) *Commit {
	state := m.store.State()
	changed := make([]*domain.Task, 0, len(updates))
	for _, u := range updates {
		if cur, ok := state.Tasks[u.ID]; ok {
			c := cur.Clone()
			c.Position = u.Position
			changed = append(changed, c)
		}
	}
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTasks(changed)
	})

	commit := newCommit()
	go func() {
		errs := m.repos.Tasks.Reorder(ctx, updates)
		m.store.MarkStale()
		commit.settle(collectReorderErrors(domain.EntityTask, errs))
	}()
	return commit
}

func applyTaskPatch(t *domain.Task, patch repository.TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Date != nil {
		t.Date = domain.DayOf(*patch.Date)
	}
	if patch.SubProjectID != nil {
		t.SubProjectID = *patch.SubProjectID
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
		if !*patch.Completed {
			t.CompletedAt = nil
		}
	}
	if patch.CompletedAt != nil {
		at := *patch.CompletedAt
		t.CompletedAt = &at
	}
	if patch.Content != nil {
		t.Content = *patch.Content
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
	if patch.Position != nil {
		t.Position = *patch.Position
	}
}
