// Package models defines the core data structures for tasks, projects,
// areas, daily logs, and per-user settings.
package models

// TaskStatus defines the set of valid task lifecycle states.
type TaskStatus string

const (
	// StatusToDo marks a task that has not been started.
	StatusToDo TaskStatus = "to_do"
	// StatusInProgress marks a task being actively worked on.
	StatusInProgress TaskStatus = "in_progress"
	// StatusWaiting marks a task blocked on something external.
	StatusWaiting TaskStatus = "waiting"
	// StatusDone marks a finished task.
	StatusDone TaskStatus = "done"
	// StatusArchived marks a task removed from active views.
	StatusArchived TaskStatus = "archived"
)

// TaskPriority defines the set of valid task priorities.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ProjectStatus defines the set of valid project lifecycle states.
type ProjectStatus string

const (
	ProjectPlanning ProjectStatus = "planning"
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
)

// Task represents a single actionable item owned by one user.
// Timestamps are unix seconds. ProjectID and AreaID are soft references:
// they are not enforced foreign keys and may point at deleted rows.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	// DueDate is when the task must be finished, unix seconds, 0 if unset.
	DueDate int64 `json:"dueDate,omitempty"`
	// DoDate is when the user plans to work the task, unix seconds, 0 if unset.
	DoDate int64 `json:"doDate,omitempty"`
	// Effort is an estimate in minutes or story points.
	Effort int64 `json:"effort,omitempty"`
	// Context is an ordered tag set ("deep_work", "phone", ...), stored
	// as a single serialized text column.
	Context     []string `json:"context,omitempty"`
	IsCompleted bool     `json:"isCompleted"`
	ProjectID   string   `json:"projectId,omitempty"`
	AreaID      string   `json:"areaId,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Project represents a bounded piece of work, optionally tied to an area.
type Project struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Name        string        `json:"name"`
	Status      ProjectStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	StartDate   int64         `json:"startDate,omitempty"`
	EndDate     int64         `json:"endDate,omitempty"`
	AreaID      string        `json:"areaId,omitempty"`
	CreatedAt   int64         `json:"createdAt"`
	UpdatedAt   int64         `json:"updatedAt"`
}

// Area represents a long-lived life pillar (Health, Finance, ...).
// Areas never reach a terminal state.
type Area struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	ThemeColor  string `json:"themeColor,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// DailyLog represents one journal row per user per calendar day.
// Lookups key on (UserID, LogDate) rather than ID.
type DailyLog struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	// LogDate is the unix timestamp identifying the journal day.
	LogDate        int64   `json:"logDate"`
	Mood           string  `json:"mood,omitempty"`
	SleepHours     float64 `json:"sleepHours,omitempty"`
	MorningRoutine bool    `json:"morningRoutine"`
	EveningRoutine bool    `json:"eveningRoutine"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAt      int64   `json:"createdAt"`
	UpdatedAt      int64   `json:"updatedAt"`
}

// Settings holds per-user preferences. Exactly one row per user, created
// lazily on first read.
type Settings struct {
	UserID        string `json:"userId"`
	ShowCompleted bool   `json:"showCompleted"`
	CompactMode   bool   `json:"compactMode"`
	Notifications bool   `json:"notifications"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
}

// CreateTaskInput carries the caller-supplied fields for a new task.
// ID and timestamps are assigned by the repository.
type CreateTaskInput struct {
	UserID      string       `json:"-"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" validate:"omitempty,oneof=to_do in_progress waiting done archived"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	DueDate     int64        `json:"dueDate"`
	DoDate      int64        `json:"doDate"`
	Effort      int64        `json:"effort"`
	Context     []string     `json:"context"`
	IsCompleted bool         `json:"isCompleted"`
	ProjectID   string       `json:"projectId"`
	AreaID      string       `json:"areaId"`
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string       `json:"title" validate:"omitempty,min=1"`
	Description *string       `json:"description"`
	Status      *TaskStatus   `json:"status" validate:"omitempty,oneof=to_do in_progress waiting done archived"`
	Priority    *TaskPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	DueDate     *int64        `json:"dueDate"`
	DoDate      *int64        `json:"doDate"`
	Effort      *int64        `json:"effort"`
	Context     *[]string     `json:"context"`
	IsCompleted *bool         `json:"isCompleted"`
	ProjectID   *string       `json:"projectId"`
	AreaID      *string       `json:"areaId"`
}

// CreateProjectInput carries the caller-supplied fields for a new project.
type CreateProjectInput struct {
	UserID      string        `json:"-"`
	Name        string        `json:"name" validate:"required"`
	Status      ProjectStatus `json:"status" validate:"omitempty,oneof=planning active paused done"`
	Description string        `json:"description"`
	StartDate   int64         `json:"startDate"`
	EndDate     int64         `json:"endDate"`
	AreaID      string        `json:"areaId"`
}

// UpdateProjectInput is a partial update: nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string        `json:"name" validate:"omitempty,min=1"`
	Status      *ProjectStatus `json:"status" validate:"omitempty,oneof=planning active paused done"`
	Description *string        `json:"description"`
	StartDate   *int64         `json:"startDate"`
	EndDate     *int64         `json:"endDate"`
	AreaID      *string        `json:"areaId"`
}

// CreateAreaInput carries the caller-supplied fields for a new area.
type CreateAreaInput struct {
	UserID      string `json:"-"`
	Name        string `json:"name" validate:"required"`
	ThemeColor  string `json:"themeColor"`
	Description string `json:"description"`
}

// UpdateAreaInput is a partial update: nil fields are left untouched.
type UpdateAreaInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	ThemeColor  *string `json:"themeColor"`
	Description *string `json:"description"`
}

// CreateDailyLogInput carries the caller-supplied fields for a new log row.
type CreateDailyLogInput struct {
	UserID         string  `json:"-"`
	LogDate        int64   `json:"logDate" validate:"required"`
	Mood           string  `json:"mood"`
	SleepHours     float64 `json:"sleepHours"`
	MorningRoutine bool    `json:"morningRoutine"`
	EveningRoutine bool    `json:"eveningRoutine"`
	Notes          string  `json:"notes"`
}

// UpdateDailyLogInput is a partial update: nil fields are left untouched.
// LogDate itself is immutable, it identifies the row.
type UpdateDailyLogInput struct {
	Mood           *string  `json:"mood"`
	SleepHours     *float64 `json:"sleepHours"`
	MorningRoutine *bool    `json:"morningRoutine"`
	EveningRoutine *bool    `json:"eveningRoutine"`
	Notes          *string  `json:"notes"`
}

// UpdateSettingsInput is a partial update: nil fields are left untouched.
type UpdateSettingsInput struct {
	ShowCompleted *bool `json:"showCompleted"`
	CompactMode   *bool `json:"compactMode"`
	Notifications *bool `json:"notifications"`
}

// SearchResult is one normalized hit from the federated search.
type SearchResult struct {
	// EntityType is one of "task", "project", "area", "daily_log".
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet,omitempty"`
	Href       string `json:"href"`
	// UpdatedAt is in milliseconds for the output representation.
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// SearchResponse is the merged result set for one search query.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	// Total is the sum of per-type matches. Only the per-type cap is
	// enforced, so Total may exceed the requested overall limit.
	Total int `json:"total"`
}
