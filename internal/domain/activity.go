package domain

import (
	"context"
	"time"
)

// DefaultActor is recorded when a request carries no X-Actor header.
const DefaultActor = "Ana López"

// Activity is an entry in a project's audit feed.
type Activity struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Actor     string    `json:"actor"`
	Verb      string    `json:"verb"`
	Detail    *string   `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityRepository defines the interface for activity storage.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListRecent(ctx context.Context, projectID int64, limit int) ([]*Activity, error)
	Source(projectID int64) PageSource[*Activity]
}

// ActivityService lists a project's activity feed.
type ActivityService interface {
	ListActivity(ctx context.Context, projectID int64, req PageRequest) (Page[*Activity], error)
}
