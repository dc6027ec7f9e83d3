// Package mutation is the optimistic write path of the planner. Every
// operation applies its change to the in-memory store synchronously, returns
// control to the caller, and reconciles against the persistence backend in
// the background: successful creates swap the client temp id for the
// server-assigned id atomically, failures restore the snapshot captured at
// invocation time, and either way the aggregate is marked stale so the next
// refresh converges on the backend's truth.
package mutation

import (
	"errors"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/store"
)

// Repos bundles the per-entity backend contracts the mutator reconciles against.
type Repos struct {
	Workspaces  repository.WorkspaceRepo
	Projects    repository.ProjectRepo
	SubProjects repository.SubProjectRepo
	Milestones  repository.MilestoneRepo
	Tasks       repository.TaskRepo
	Settings    repository.SettingsRepo
}

type Mutator struct {
	store    *store.Store
	repos    Repos
	debounce *Debouncer
	onError  func(error)
}

type Option func(*Mutator)

// WithDebounce overrides the quiet period for free-text edits (tests use a
// short one).
func WithDebounce(d time.Duration) Option {
	return func(m *Mutator) { m.debounce = NewDebouncer(d) }
}

// WithErrorHandler receives failures from debounced edits, which have no
// Commit handle to report through.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Mutator) { m.onError = fn }
}

func NewMutator(st *store.Store, repos Repos, opts ...Option) *Mutator {
	m := &Mutator{
		store:    st,
		repos:    repos,
		debounce: NewDebouncer(DefaultDebounce),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Flush drains pending debounced edits; call before shutdown.
func (m *Mutator) Flush() {
	m.debounce.FlushAll()
}

func (m *Mutator) reportError(err error) {
	if m.onError != nil && err != nil {
		m.onError(err)
	}
}

// collectReorderErrors folds per-item reorder outcomes into one typed
// failure, or nil when every item succeeded. Reorders are never rolled back.
func collectReorderErrors(entity domain.EntityType, errs []error) error {
	joined := errors.Join(errs...)
	if joined == nil {
		return nil
	}
	return &MutationFailed{Entity: entity, Op: OpReorder, Cause: joined}
}

func ptr[T any](v T) *T { return &v }
