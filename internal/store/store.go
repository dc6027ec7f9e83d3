// Package store owns the in-memory timeline aggregate. It is the single
// shared mutable structure of the planner core: mutations swap in derived
// copy-on-write states, readers always see a complete aggregate, and
// presentation layers react through the subscription interface without the
// core depending on any UI framework.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/chrona/internal/domain"
)

// Loader fetches the authoritative aggregate from the persistence backend.
type Loader func(ctx context.Context) (*domain.TimelineState, error)

type Store struct {
	mu     sync.RWMutex
	state  *domain.TimelineState
	stale  bool
	loader Loader

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a store seeded with an empty aggregate.
func New(loader Loader) *Store {
	return &Store{
		state:  domain.NewTimelineState(),
		loader: loader,
		subs:   map[int]func(){},
	}
}

// State returns the current aggregate. The returned value is shared and must
// not be mutated; derive a new state through its copy-on-write helpers.
func (s *Store) State() *domain.TimelineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot captures the current aggregate for a later Restore. Because states
// are immutable, the snapshot is just the current pointer.
func (s *Store) Snapshot() *domain.TimelineState {
	return s.State()
}

// Apply swaps in the state derived by fn and notifies subscribers.
// fn runs under the write lock, so the read-derive-swap is atomic with
// respect to other appliers: readers see either the old or the new aggregate,
// never an intermediate.
func (s *Store) Apply(fn func(*domain.TimelineState) *domain.TimelineState) {
	s.mu.Lock()
	next := fn(s.state)
	changed := next != s.state
	if changed {
		s.state = next
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Restore reverts the aggregate to a previously captured snapshot.
func (s *Store) Restore(snap *domain.TimelineState) {
	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()
	s.notify()
}

// MarkStale records that the local aggregate may diverge from the backend
// (server-computed fields, out-of-order completions). The next RefreshIfStale
// reloads the authoritative state.
func (s *Store) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Stale reports whether a refresh is pending.
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Refresh unconditionally reloads the aggregate from the backend.
func (s *Store) Refresh(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("refreshing timeline: no loader configured")
	}
	state, err := s.loader(ctx)
	if err != nil {
		return fmt.Errorf("refreshing timeline: %w", err)
	}
	s.mu.Lock()
	// Carry revisions forward so selector caches keyed on the old state
	// cannot collide with the freshly loaded collections.
	state.Revs = s.state.Revs
	state.Revs.Workspaces++
	state.Revs.Projects++
	state.Revs.SubProjects++
	state.Revs.Milestones++
	state.Revs.Tasks++
	state.Revs.Settings++
	s.state = state
	s.stale = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// RefreshIfStale reloads only when a mutation marked the aggregate stale.
func (s *Store) RefreshIfStale(ctx context.Context) error {
	if !s.Stale() {
		return nil
	}
	return s.Refresh(ctx)
}

// Subscribe registers fn to run after every state change. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
