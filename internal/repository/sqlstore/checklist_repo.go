package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawflow/internal/domain"
)

const checklistColumns = `id, project_id, stage, label, is_done, due_date, created_at, updated_at`

type checklistRepository struct {
	DB *DB
}

// NewChecklistRepository returns a domain.ChecklistRepository backed by db.
func NewChecklistRepository(db *DB) domain.ChecklistRepository {
	return &checklistRepository{DB: db}
}

func scanChecklistItem(row rowScanner) (*domain.ChecklistItem, error) {
	var it domain.ChecklistItem
	err := row.Scan(&it.ID, &it.ProjectID, &it.Stage, &it.Label, &it.IsDone, &it.DueDate, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *checklistRepository) Create(ctx context.Context, it *domain.ChecklistItem) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO checklist_items (project_id, stage, label, is_done, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		it.ProjectID, it.Stage, it.Label, it.IsDone, it.DueDate, it.CreatedAt, it.UpdatedAt,
	).Scan(&it.ID)
	return mapWriteError(err)
}

func (r *checklistRepository) SetDone(ctx context.Context, id int64, done bool, at time.Time) (*domain.ChecklistItem, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE checklist_items SET is_done = $1, updated_at = $2 WHERE id = $3`, done, at, id)
	if err != nil {
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	it, err := scanChecklistItem(r.DB.QueryRowContext(ctx,
		`SELECT `+checklistColumns+` FROM checklist_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *checklistRepository) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.ChecklistItem, error) {
	return r.source(projectID).all(ctx)
}

func (r *checklistRepository) Source(projectID int64) domain.PageSource[*domain.ChecklistItem] {
	return r.source(projectID)
}

func (r *checklistRepository) source(projectID int64) pageSource[*domain.ChecklistItem] {
	q := listQuery{
		from:         "checklist_items",
		columns:      checklistColumns,
		defaultOrder: "id ASC",
	}
	if projectID != 0 {
		q = q.where("project_id", projectID)
	}
	return pageSource[*domain.ChecklistItem]{db: r.DB, query: q, scan: scanChecklistItem}
}
