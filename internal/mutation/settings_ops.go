package mutation

import (
	"context"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

// UpdateSettings applies a partial user-settings update with the same
// optimistic semantics as entity mutations.
func (m *Mutator) UpdateSettings(ctx context.Context, patch repository.SettingsPatch) *Commit {
	cur := m.store.State().Settings
	local := cur.Clone()
	if patch.WorkspaceOrder != nil {
		local.WorkspaceOrder = append([]string(nil), (*patch.WorkspaceOrder)...)
	}
	if patch.OpenProjectIDs != nil {
		local.OpenProjectIDs = append([]string(nil), (*patch.OpenProjectIDs)...)
	}
	if patch.Theme != nil {
		local.Theme = *patch.Theme
	}
	if patch.AccentColor != nil {
		local.AccentColor = *patch.AccentColor
	}
	if patch.ColorMode != nil {
		local.ColorMode = *patch.ColorMode
	}

	snap := m.store.Snapshot()
	m.store.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithSettings(local)
	})

	commit := newCommit()
	go func() {
		if err := m.repos.Settings.Update(ctx, patch); err != nil {
			m.store.Restore(snap)
			m.store.MarkStale()
			commit.settle(&MutationFailed{Entity: domain.EntitySettings, Op: OpUpdate, Cause: err})
			return
		}
		m.store.MarkStale()
		commit.settle(nil)
	}()
	return commit
}

// ToggleProjectOpen flips a project's expanded flag in the sidebar.
func (m *Mutator) ToggleProjectOpen(ctx context.Context, projectID string) *Commit {
	cur := m.store.State().Settings
	open := make([]string, 0, len(cur.OpenProjectIDs)+1)
	found := false
	for _, id := range cur.OpenProjectIDs {
		if id == projectID {
			found = true
			continue
		}
		open = append(open, id)
	}
	if !found {
		open = append(open, projectID)
	}
	return m.UpdateSettings(ctx, repository.SettingsPatch{OpenProjectIDs: &open})
}
