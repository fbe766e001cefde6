package domain

import (
	"context"
	"time"
)

// Timeline item kinds.
const (
	TimelinePhase     = "Phase"
	TimelineMilestone = "Milestone"
)

// TimelineItem is a phase span or a single-day milestone.
type TimelineItem struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Label     string    `json:"label"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimelineRepository defines the interface for timeline storage.
type TimelineRepository interface {
	Create(ctx context.Context, item *TimelineItem) error
	ListByProjectID(ctx context.Context, projectID int64) ([]*TimelineItem, error)
	Source(projectID int64) PageSource[*TimelineItem]
}

// TimelineService lists and creates timeline items.
type TimelineService interface {
	ListTimeline(ctx context.Context, projectID int64, req PageRequest) (Page[*TimelineItem], error)
	CreateTimelineItem(ctx context.Context, item *TimelineItem, actor string) error
}
