package testutil

import (
	"context"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
)

// FailingTaskRepo wraps a TaskRepo and injects errors per operation. This
// enables rollback tests by simulating backend rejections at precise points.
type FailingTaskRepo struct {
	repository.TaskRepo
	ErrCreate error
	ErrUpdate error
	ErrDelete error
}

func (r *FailingTaskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if r.ErrCreate != nil {
		return nil, r.ErrCreate
	}
	return r.TaskRepo.Create(ctx, t)
}

func (r *FailingTaskRepo) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if r.ErrUpdate != nil {
		return nil, r.ErrUpdate
	}
	return r.TaskRepo.Update(ctx, id, patch)
}

func (r *FailingTaskRepo) Delete(ctx context.Context, id string) error {
	if r.ErrDelete != nil {
		return r.ErrDelete
	}
	return r.TaskRepo.Delete(ctx, id)
}

// FailingSubProjectRepo injects errors into SubProjectRepo operations.
type FailingSubProjectRepo struct {
	repository.SubProjectRepo
	ErrCreate error
	ErrUpdate error
	ErrDelete error
}

func (r *FailingSubProjectRepo) Create(ctx context.Context, s *domain.SubProject) (*domain.SubProject, error) {
	if r.ErrCreate != nil {
		return nil, r.ErrCreate
	}
	return r.SubProjectRepo.Create(ctx, s)
}

func (r *FailingSubProjectRepo) Update(ctx context.Context, id string, patch repository.SubProjectPatch) (*domain.SubProject, error) {
	if r.ErrUpdate != nil {
		return nil, r.ErrUpdate
	}
	return r.SubProjectRepo.Update(ctx, id, patch)
}

func (r *FailingSubProjectRepo) Delete(ctx context.Context, id string, mode domain.TaskResolution) error {
	if r.ErrDelete != nil {
		return r.ErrDelete
	}
	return r.SubProjectRepo.Delete(ctx, id, mode)
}

// GatedTaskRepo holds every Create until the gate is released, so tests can
// force creates to confirm in a chosen order.
type GatedTaskRepo struct {
	repository.TaskRepo
	Gate chan struct{}
}

func (r *GatedTaskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	<-r.Gate
	return r.TaskRepo.Create(ctx, t)
}

// CountingTaskRepo records how many Update calls reached the backend;
// used to pin debounce behavior.
type CountingTaskRepo struct {
	repository.TaskRepo
	Updates chan repository.TaskPatch
}

func (r *CountingTaskRepo) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	t, err := r.TaskRepo.Update(ctx, id, patch)
	if r.Updates != nil {
		r.Updates <- patch
	}
	return t, err
}
