package domain

import (
	"context"
	"time"
)

// ChecklistItem is one conveyancing step of a project, grouped by stage.
type ChecklistItem struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Stage     string    `json:"stage"`
	Label     string    `json:"label"`
	IsDone    bool      `json:"is_done"`
	DueDate   *Date     `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChecklistStep is a template entry used to instantiate checklist items.
type ChecklistStep struct {
	Stage string
	Label string
}

// ChecklistRepository defines the interface for checklist storage.
type ChecklistRepository interface {
	Create(ctx context.Context, item *ChecklistItem) error
	SetDone(ctx context.Context, id int64, done bool, at time.Time) (*ChecklistItem, error)
	ListByProjectID(ctx context.Context, projectID int64) ([]*ChecklistItem, error)
	Source(projectID int64) PageSource[*ChecklistItem]
}

// ChecklistService lists and toggles checklist items.
type ChecklistService interface {
	ListChecklist(ctx context.Context, projectID int64, req PageRequest) (Page[*ChecklistItem], error)
	SetDone(ctx context.Context, id int64, done bool, actor string) (*ChecklistItem, error)
}
