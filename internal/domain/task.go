package domain

import (
	"context"
	"time"
)

// Task statuses.
const (
	TaskBacklog    = "Backlog"
	TaskInProgress = "In Progress"
	TaskReview     = "Review"
	TaskDone       = "Done"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is a unit of work within a project.
type Task struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Assignee    string    `json:"assignee"`
	DueDate     *Date     `json:"due_date"`
	Priority    string    `json:"priority"`
	Tags        *string   `json:"tags"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskBacklog, TaskInProgress, TaskReview, TaskDone:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is a known priority.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	ProjectID int64
	Status    string
	Assignee  string
}

// TaskUpdate holds the fields a PATCH may change. Nil fields are unchanged.
type TaskUpdate struct {
	Title       *string
	Status      *string
	Assignee    *string
	DueDate     *Date
	Priority    *string
	Tags        *string
	Description *string
}

// TaskRepository defines the interface for task storage.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	Update(ctx context.Context, task *Task) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	ListByProjectID(ctx context.Context, projectID int64) ([]*Task, error)
	Source(filter TaskFilter) PageSource[*Task]
}

// TaskService manages tasks.
type TaskService interface {
	ListTasks(ctx context.Context, filter TaskFilter, req PageRequest) (Page[*Task], error)
	CreateTask(ctx context.Context, task *Task, actor string) error
	UpdateTask(ctx context.Context, id int64, update TaskUpdate, actor string) (*Task, error)
	DeleteTask(ctx context.Context, id int64, actor string) error
}
