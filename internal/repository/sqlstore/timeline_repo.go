package sqlstore

import (
	"context"

	"lawflow/internal/domain"
)

const timelineColumns = `id, project_id, label, start_date, end_date, kind, created_at, updated_at`

type timelineRepository struct {
	DB *DB
}

// NewTimelineRepository returns a domain.TimelineRepository backed by db.
func NewTimelineRepository(db *DB) domain.TimelineRepository {
	return &timelineRepository{DB: db}
}

func scanTimelineItem(row rowScanner) (*domain.TimelineItem, error) {
	var it domain.TimelineItem
	err := row.Scan(&it.ID, &it.ProjectID, &it.Label, &it.StartDate, &it.EndDate, &it.Kind, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *timelineRepository) Create(ctx context.Context, it *domain.TimelineItem) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO timeline_items (project_id, label, start_date, end_date, kind, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		it.ProjectID, it.Label, it.StartDate, it.EndDate, it.Kind, it.CreatedAt, it.UpdatedAt,
	).Scan(&it.ID)
	return mapWriteError(err)
}

func (r *timelineRepository) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.TimelineItem, error) {
	return r.source(projectID).all(ctx)
}

func (r *timelineRepository) Source(projectID int64) domain.PageSource[*domain.TimelineItem] {
	return r.source(projectID)
}

func (r *timelineRepository) source(projectID int64) pageSource[*domain.TimelineItem] {
	q := listQuery{
		from:         "timeline_items",
		columns:      timelineColumns,
		defaultOrder: "start_date ASC, id ASC",
	}
	if projectID != 0 {
		q = q.where("project_id", projectID)
	}
	return pageSource[*domain.TimelineItem]{db: r.DB, query: q, scan: scanTimelineItem}
}
