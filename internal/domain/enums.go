package domain

type EntityType string

const (
	EntityWorkspace  EntityType = "workspace"
	EntityProject    EntityType = "project"
	EntitySubProject EntityType = "sub_project"
	EntityMilestone  EntityType = "milestone"
	EntityTask       EntityType = "task"
	EntitySettings   EntityType = "user_settings"
)

type ColorMode string

const (
	ColorModeFull ColorMode = "full"
	ColorModeMono ColorMode = "monochromatic"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// TaskResolution controls what happens to a sub-project's tasks when the
// sub-project is deleted.
type TaskResolution string

const (
	// OrphanTasks clears each child task's sub-project reference and keeps the task.
	OrphanTasks TaskResolution = "orphan"
	// DeleteTasks removes the child tasks together with the sub-project.
	DeleteTasks TaskResolution = "delete"
)
