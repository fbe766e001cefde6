package sqlstore

import (
	"context"

	"lawflow/internal/domain"
)

const activityColumns = `id, project_id, actor, verb, detail, created_at`

type activityRepository struct {
	DB *DB
}

// NewActivityRepository returns a domain.ActivityRepository backed by db.
func NewActivityRepository(db *DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	if err := row.Scan(&a.ID, &a.ProjectID, &a.Actor, &a.Verb, &a.Detail, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO activities (project_id, actor, verb, detail, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.ProjectID, a.Actor, a.Verb, a.Detail, a.CreatedAt,
	).Scan(&a.ID)
	return mapWriteError(err)
}

// ListRecent returns at most limit activities of a project, newest first.
func (r *activityRepository) ListRecent(ctx context.Context, projectID int64, limit int) ([]*domain.Activity, error) {
	return r.source(projectID).Fetch(ctx, 0, limit, nil)
}

func (r *activityRepository) Source(projectID int64) domain.PageSource[*domain.Activity] {
	return r.source(projectID)
}

func (r *activityRepository) source(projectID int64) pageSource[*domain.Activity] {
	q := listQuery{
		from:         "activities",
		columns:      activityColumns,
		defaultOrder: "created_at DESC, id DESC",
	}
	if projectID != 0 {
		q = q.where("project_id", projectID)
	}
	return pageSource[*domain.Activity]{db: r.DB, query: q, scan: scanActivity}
}
