package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawflow/internal/domain"
)

const taskColumns = `id, project_id, title, status, assignee, due_date, priority, tags, description, created_at, updated_at`

const taskDefaultOrder = "due_date ASC NULLS LAST, id ASC"

type taskRepository struct {
	DB *DB
}

// NewTaskRepository returns a domain.TaskRepository backed by db.
func NewTaskRepository(db *DB) domain.TaskRepository {
	return &taskRepository{DB: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.Assignee, &t.DueDate, &t.Priority,
		&t.Tags, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (project_id, title, status, assignee, due_date, priority, tags, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		t.ProjectID, t.Title, t.Status, t.Assignee, t.DueDate, t.Priority, t.Tags, t.Description, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	return mapWriteError(err)
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND is_deleted = FALSE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) Update(ctx context.Context, t *domain.Task) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET title = $1, status = $2, assignee = $3, due_date = $4, priority = $5, tags = $6, description = $7, updated_at = $8
		 WHERE id = $9 AND is_deleted = FALSE`,
		t.Title, t.Status, t.Assignee, t.DueDate, t.Priority, t.Tags, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET is_deleted = TRUE, deleted_at = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE`,
		at, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepository) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return r.source(domain.TaskFilter{ProjectID: projectID}).all(ctx)
}

func (r *taskRepository) Source(filter domain.TaskFilter) domain.PageSource[*domain.Task] {
	return r.source(filter)
}

func (r *taskRepository) source(filter domain.TaskFilter) pageSource[*domain.Task] {
	q := listQuery{
		from:         "tasks",
		columns:      taskColumns,
		defaultOrder: taskDefaultOrder,
	}.whereRaw("is_deleted = FALSE")
	if filter.ProjectID != 0 {
		q = q.where("project_id", filter.ProjectID)
	}
	if filter.Status != "" {
		q = q.where("status", filter.Status)
	}
	if filter.Assignee != "" {
		q = q.where("assignee", filter.Assignee)
	}
	return pageSource[*domain.Task]{db: r.DB, query: q, scan: scanTask}
}
