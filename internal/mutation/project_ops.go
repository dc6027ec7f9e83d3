package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

func (m *Mutator) CreateProject(ctx context.Context, p *domain.Project) (*Commit, error) {
	state := m.store.State()
	if _, ok := state.Workspaces[p.WorkspaceID]; !ok {
		return nil, &ValidationError{Entity: domain.EntityProject,
			Reason: fmt.Sprintf("workspace %s does not exist", p.WorkspaceID)}
	}

	local := p.Clone()
	if local.ID == "" {
		local.ID = domain.NewTempID()
	}
	now := time.Now().UTC()
	local.CreatedAt = now
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithProject(local)
	})

	commit := newCommit()
	go func() {
		persisted, err := m.repos.Projects.Create(ctx, local.Clone())
		if err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityProject, Op: OpCreate, Cause: err})
			return
		}
		m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
			return s.SwapProjectID(local.ID, persisted)
		})
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

func (m *Mutator) UpdateProject(ctx context.Context, id string, patch repository.ProjectPatch) (*Commit, error) {
	state := m.store.State()
	cur, ok := state.Projects[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntityProject,
			Reason: fmt.Sprintf("project %s does not exist", id)}
	}
	if patch.WorkspaceID != nil {
		if _, ok := state.Workspaces[*patch.WorkspaceID]; !ok {
			return nil, &ValidationError{Entity: domain.EntityProject,
				Reason: fmt.Sprintf("workspace %s does not exist", *patch.WorkspaceID)}
		}
	}

	local := cur.Clone()
	if patch.WorkspaceID != nil {
		local.WorkspaceID = *patch.WorkspaceID
	}
	if patch.Name != nil {
		local.Name = *patch.Name
	}
	if patch.Color != nil {
		local.Color = *patch.Color
	}
	if patch.Hidden != nil {
		local.Hidden = *patch.Hidden
	}
	if patch.Position != nil {
		local.Position = *patch.Position
	}
	local.UpdatedAt = time.Now().UTC()

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithProject(local)
	})

	commit := newCommit()
	go func() {
		if _, err := m.repos.Projects.Update(ctx, id, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityProject, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// DeleteProject removes the project and its children locally; the backend
// cascades through foreign keys.
func (m *Mutator) DeleteProject(ctx context.Context, id string) (*Commit, error) {
	if _, ok := m.store.State().Projects[id]; !ok {
		return nil, &ValidationError{Entity: domain.EntityProject,
			Reason: fmt.Sprintf("project %s does not exist", id)}
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return removeProjectTree(s, id)
	})

	commit := newCommit()
	go func() {
		if err := m.repos.Projects.Delete(ctx, id); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityProject, Op: OpDelete, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// ReorderProjects applies positions locally and fans out per-item updates
// without rollback on partial failure.
func (m *Mutator) ReorderProjects(ctx context.Context, updates []repository.PositionUpdate) *Commit {
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		next := s
		for _, u := range updates {
			if cur, ok := s.Projects[u.ID]; ok {
				c := cur.Clone()
				c.Position = u.Position
				next = next.WithProject(c)
			}
		}
		return next
	})

	commit := newCommit()
	go func() {
		errs := m.repos.Projects.Reorder(ctx, updates)
		m.store.MarkStale()
		commit.settle(collectReorderErrors(domain.EntityProject, errs))
	}()
	return commit
}
