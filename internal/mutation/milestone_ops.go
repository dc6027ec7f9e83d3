package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

func (m *Mutator) CreateMilestone(ctx context.Context, ms *domain.Milestone) (*Commit, error) {
	state := m.store.State()
	if _, ok := state.Projects[ms.ProjectID]; !ok {
		return nil, &ValidationError{Entity: domain.EntityMilestone,
			Reason: fmt.Sprintf("project %s does not exist", ms.ProjectID)}
	}

	local := ms.Clone()
	if local.ID == "" {
		local.ID = domain.NewTempID()
	}
	now := time.Now().UTC()
	local.CreatedAt = now
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithMilestone(local)
	})

	commit := newCommit()
	go func() {
		persisted, err := m.repos.Milestones.Create(ctx, local.Clone())
		if err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityMilestone, Op: OpCreate, Cause: err})
			return
		}
		m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
			return s.SwapMilestoneID(local.ID, persisted)
		})
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

func (m *Mutator) UpdateMilestone(ctx context.Context, id string, patch repository.MilestonePatch) (*Commit, error) {
	cur, ok := m.store.State().Milestones[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntityMilestone,
			Reason: fmt.Sprintf("milestone %s does not exist", id)}
	}

	local := cur.Clone()
	if patch.Title != nil {
		local.Title = *patch.Title
	}
	if patch.Date != nil {
		local.Date = domain.DayOf(*patch.Date)
	}
	if patch.Color != nil {
		local.Color = *patch.Color
	}
	if patch.Content != nil {
		local.Content = *patch.Content
	}
	local.UpdatedAt = time.Now().UTC()

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithMilestone(local)
	})

	commit := newCommit()
	go func() {
		if _, err := m.repos.Milestones.Update(ctx, id, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityMilestone, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

func (m *Mutator) DeleteMilestone(ctx context.Context, id string) (*Commit, error) {
	if _, ok := m.store.State().Milestones[id]; !ok {
		return nil, &ValidationError{Entity: domain.EntityMilestone,
			Reason: fmt.Sprintf("milestone %s does not exist", id)}
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithoutMilestone(id)
	})

	commit := newCommit()
	go func() {
		if err := m.repos.Milestones.Delete(ctx, id); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityMilestone, Op: OpDelete, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// EditMilestoneTitle debounces the remote update like EditTaskTitle.
func (m *Mutator) EditMilestoneTitle(ctx context.Context, id, title string) error {
	cur, ok := m.store.State().Milestones[id]
	if !ok {
		return &ValidationError{Entity: domain.EntityMilestone,
			Reason: fmt.Sprintf("milestone %s does not exist", id)}
	}

	local := cur.Clone()
	local.Title = title
	local.UpdatedAt = time.Now().UTC()

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithMilestone(local)
	})

	m.debounce.Schedule("milestone:"+id, func() {
		if _, err := m.repos.Milestones.Update(ctx, id, repository.MilestonePatch{Title: ptr(title)}); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			m.reportError(&MutationFailed{Entity: domain.EntityMilestone, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
	})
	return nil
}
