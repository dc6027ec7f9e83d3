package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

func (m *Mutator) CreateWorkspace(ctx context.Context, w *domain.Workspace) (*Commit, error) {
	local := w.Clone()
	if local.ID == "" {
		local.ID = domain.NewTempID()
	}
	now := time.Now().UTC()
	local.CreatedAt = now
	local.UpdatedAt = now

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithWorkspace(local)
	})

	commit := newCommit()
	go func() {
		persisted, err := m.repos.Workspaces.Create(ctx, local.Clone())
		if err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityWorkspace, Op: OpCreate, Cause: err})
			return
		}
		m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
			return s.SwapWorkspaceID(local.ID, persisted)
		})
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

func (m *Mutator) UpdateWorkspace(ctx context.Context, id string, patch repository.WorkspacePatch) (*Commit, error) {
	cur, ok := m.store.State().Workspaces[id]
	if !ok {
		return nil, &ValidationError{Entity: domain.EntityWorkspace,
			Reason: fmt.Sprintf("workspace %s does not exist", id)}
	}

	local := cur.Clone()
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
		return s.WithWorkspace(local)
	})

	commit := newCommit()
	go func() {
		if _, err := m.repos.Workspaces.Update(ctx, id, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityWorkspace, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// DeleteWorkspace removes the workspace and, locally, everything under it.
// The backend cascades through foreign keys.
func (m *Mutator) DeleteWorkspace(ctx context.Context, id string) (*Commit, error) {
	if _, ok := m.store.State().Workspaces[id]; !ok {
		return nil, &ValidationError{Entity: domain.EntityWorkspace,
			Reason: fmt.Sprintf("workspace %s does not exist", id)}
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		next := s.WithoutWorkspace(id)
		for pid, p := range s.Projects {
			if p.WorkspaceID == id {
				next = removeProjectTree(next, pid)
			}
		}
		return next
	})

	commit := newCommit()
	go func() {
		if err := m.repos.Workspaces.Delete(ctx, id); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntityWorkspace, Op: OpDelete, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit, nil
}

// ReorderWorkspaces applies positions locally and fans out per-item updates
// without rollback on partial failure.
func (m *Mutator) ReorderWorkspaces(ctx context.Context, updates []repository.PositionUpdate) *Commit {
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		next := s
		for _, u := range updates {
			if cur, ok := s.Workspaces[u.ID]; ok {
				c := cur.Clone()
				c.Position = u.Position
				next = next.WithWorkspace(c)
			}
		}
		return next
	})

	commit := newCommit()
	go func() {
		errs := m.repos.Workspaces.Reorder(ctx, updates)
		m.store.MarkStale()
		commit.settle(collectReorderErrors(domain.EntityWorkspace, errs))
	}()
	return commit
}

// removeProjectTree drops a project and its sub-projects, milestones, and
// tasks from the aggregate.
func removeProjectTree(s *domain.TimelineState, projectID string) *domain.TimelineState {
	next := s.WithoutProject(projectID)
	for id, sp := range s.SubProjects {
		if sp.ProjectID == projectID {
			next = next.WithoutSubProject(id)
		}
	}
	for id, ms := range s.Milestones {
		if ms.ProjectID == projectID {
			next = next.WithoutMilestone(id)
		}
	}
	for id, t := range s.Tasks {
		if t.ProjectID == projectID {
			next = next.WithoutTask(id)
		}
	}
	return next
}
