package domain

import (
	"context"
	"time"
)

// Transaction types.
const (
	TransactionPurchase = "Purchase"
	TransactionSale     = "Sale"
)

// Project defaults.
const (
	DefaultProjectStatus  = "Intake"
	DefaultProjectRisk    = "Normal"
	DefaultProjectBgColor = "#0b1220"
)

// Project is a conveyancing matter.
type Project struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	TransactionType string    `json:"transaction_type"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	Risk            string    `json:"risk"`
	BgColor         string    `json:"bg_color"`
	StartDate       *Date     `json:"start_date"`
	TargetCloseDate *Date     `json:"target_close_date"`
	ClientID        *int64    `json:"client_id"`
	Client          *Client   `json:"client"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectDetail is a project with everything the matter view shows.
type ProjectDetail struct {
	Project
	Tasks      []*Task          `json:"tasks"`
	Checklist  []*ChecklistItem `json:"checklist"`
	Timeline   []*TimelineItem  `json:"timeline"`
	Activities []*Activity      `json:"activity"`
}

// ProjectFilter narrows a project listing. Zero values match everything.
type ProjectFilter struct {
	Status string
}

// ProjectUpdate holds the fields a PATCH may change. Nil fields are unchanged.
type ProjectUpdate struct {
	Title           *string
	Status          *string
	Risk            *string
	TargetCloseDate *Date
	BgColor         *string
}

// ProjectRepository defines the interface for project storage. Soft-deleted
// projects are invisible to every read.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	Update(ctx context.Context, project *Project) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	Source(filter ProjectFilter) PageSource[*Project]
}

// ProjectService manages matters.
type ProjectService interface {
	ListProjects(ctx context.Context, filter ProjectFilter, req PageRequest) (Page[*Project], error)
	GetProject(ctx context.Context, id int64) (*ProjectDetail, error)
	CreateProject(ctx context.Context, project *Project, actor string) error
	UpdateProject(ctx context.Context, id int64, update ProjectUpdate, actor string) (*Project, error)
	DeleteProject(ctx context.Context, id int64, actor string) error
}
