package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawflow/internal/domain"
)

const projectColumns = `id, title, transaction_type, location, status, risk, bg_color, start_date, target_close_date, client_id, created_at, updated_at`

type projectRepository struct {
	DB *DB
}

// NewProjectRepository returns a domain.ProjectRepository backed by db.
func NewProjectRepository(db *DB) domain.ProjectRepository {
	return &projectRepository{DB: db}
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.TransactionType, &p.Location, &p.Status, &p.Risk, &p.BgColor,
		&p.StartDate, &p.TargetCloseDate, &p.ClientID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO projects (title, transaction_type, location, status, risk, bg_color, start_date, target_close_date, client_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		p.Title, p.TransactionType, p.Location, p.Status, p.Risk, p.BgColor,
		p.StartDate, p.TargetCloseDate, p.ClientID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return mapWriteError(err)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND is_deleted = FALSE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET title = $1, status = $2, risk = $3, target_close_date = $4, bg_color = $5, updated_at = $6
		 WHERE id = $7 AND is_deleted = FALSE`,
		p.Title, p.Status, p.Risk, p.TargetCloseDate, p.BgColor, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET is_deleted = TRUE, deleted_at = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE`,
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

func (r *projectRepository) Source(filter domain.ProjectFilter) domain.PageSource[*domain.Project] {
	q := listQuery{
		from:         "projects",
		columns:      projectColumns,
		defaultOrder: "id DESC",
	}.whereRaw("is_deleted = FALSE")
	if filter.Status != "" {
		q = q.where("status", filter.Status)
	}
	return pageSource[*domain.Project]{db: r.DB, query: q, scan: scanProject}
}
