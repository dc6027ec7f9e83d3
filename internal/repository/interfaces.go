package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
)

// The repository interfaces form the persistence contract the optimistic
// layer reconciles against. Create returns the persisted record: the backend
// assigns the canonical id (replacing any client temp id) and the server
// timestamps. Update takes a partial patch and returns the updated record.
// Any error is treated uniformly as a remote failure by the caller.

// PositionUpdate is one element of a bulk reorder.
type PositionUpdate struct {
	ID       string
	Position int
}

// WorkspacePatch is a partial workspace update; nil fields are left unchanged.
type WorkspacePatch struct {
	Name     *string
	Color    *string
	Hidden   *bool
	Position *int
}

type ProjectPatch struct {
	WorkspaceID *string
	Name        *string
	Color       *string
	Hidden      *bool
	Position    *int
}

type SubProjectPatch struct {
	Title       *string
	StartDate   *time.Time
	EndDate     *time.Time
	Color       *string
	Description *string
}

type MilestonePatch struct {
	Title   *string
	Date    *time.Time
	Color   *string
	Content *string
}

type TaskPatch struct {
	Title        *string
	Date         *time.Time
	SubProjectID *string // pointer to "" clears the reference
	Completed    *bool
	CompletedAt  *time.Time
	Content      *string
	Color        *string
	Position     *int
}

// SettingsPatch is a partial user-settings update.
type SettingsPatch struct {
	WorkspaceOrder *[]string
	OpenProjectIDs *[]string
	Theme          *domain.Theme
	AccentColor    *string
	ColorMode      *domain.ColorMode
}

type WorkspaceRepo interface {
	Create(ctx context.Context, w *domain.Workspace) (*domain.Workspace, error)
	Update(ctx context.Context, id string, p WorkspacePatch) (*domain.Workspace, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, updates []PositionUpdate) []error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, updates []PositionUpdate) []error
}

type SubProjectRepo interface {
	Create(ctx context.Context, s *domain.SubProject) (*domain.SubProject, error)
	Update(ctx context.Context, id string, patch SubProjectPatch) (*domain.SubProject, error)
	// Delete removes the sub-project; mode decides whether its tasks are
	// orphaned (reference cleared) or deleted transitively.
	Delete(ctx context.Context, id string, mode domain.TaskResolution) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error)
	Update(ctx context.Context, id string, patch MilestonePatch) (*domain.Milestone, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, updates []PositionUpdate) []error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Update(ctx context.Context, patch SettingsPatch) error
}

// TimelineRepo loads the full aggregate; used for refresh after mutations settle.
type TimelineRepo interface {
	Load(ctx context.Context) (*domain.TimelineState, error)
}
