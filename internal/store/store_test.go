package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ApplyNotifiesSubscribers(t *testing.T) {
	st := New(nil)
	notified := 0
	cancel := st.Subscribe(func() { notified++ })
	defer cancel()

	st.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(&domain.Task{ID: "t"})
	})
	assert.Equal(t, 1, notified)

	// Returning the same state is a no-op and must not notify.
	st.Apply(func(s *domain.TimelineState) *domain.TimelineState { return s })
	assert.Equal(t, 1, notified)
}

func TestStore_Unsubscribe(t *testing.T) {
	st := New(nil)
	notified := 0
	cancel := st.Subscribe(func() { notified++ })
	cancel()

	st.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(&domain.Task{ID: "t"})
	})
	assert.Zero(t, notified)
}

func TestStore_SnapshotRestore(t *testing.T) {
	st := New(nil)
	st.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(&domain.Task{ID: "t1", Title: "before"})
	})

	snap := st.Snapshot()
	st.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(&domain.Task{ID: "t2"})
	})
	require.Len(t, st.State().Tasks, 2)

	st.Restore(snap)
	assert.Same(t, snap, st.State(), "restore brings back the exact snapshot")
	assert.Len(t, st.State().Tasks, 1)
}

func TestStore_StaleLifecycle(t *testing.T) {
	loaded := domain.NewTimelineState().WithTask(&domain.Task{ID: "server"})
	st := New(func(ctx context.Context) (*domain.TimelineState, error) {
		return loaded, nil
	})

	assert.False(t, st.Stale())
	require.NoError(t, st.RefreshIfStale(context.Background()), "not stale: no-op")
	assert.Empty(t, st.State().Tasks)

	st.MarkStale()
	require.True(t, st.Stale())
	require.NoError(t, st.RefreshIfStale(context.Background()))
	assert.False(t, st.Stale())
	assert.Contains(t, st.State().Tasks, "server")
}

func TestStore_RefreshBumpsRevisions(t *testing.T) {
	st := New(func(ctx context.Context) (*domain.TimelineState, error) {
		return domain.NewTimelineState(), nil
	})
	before := st.State().Revs

	require.NoError(t, st.Refresh(context.Background()))
	after := st.State().Revs
	assert.Greater(t, after.Tasks, before.Tasks, "reload invalidates selector caches")
}

func TestStore_RefreshError(t *testing.T) {
	boom := errors.New("backend down")
	st := New(func(ctx context.Context) (*domain.TimelineState, error) {
		return nil, boom
	})
	st.Apply(func(s *domain.TimelineState) *domain.TimelineState {
		return s.WithTask(&domain.Task{ID: "local"})
	})

	err := st.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, st.State().Tasks, "local", "failed refresh leaves local state intact")
}
