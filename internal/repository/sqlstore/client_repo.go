package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"lawflow/internal/domain"
)

const clientColumns = `id, name, email, phone, notes, created_at, updated_at`

type clientRepository struct {
	DB *DB
}

// NewClientRepository returns a domain.ClientRepository backed by db.
func NewClientRepository(db *DB) domain.ClientRepository {
	return &clientRepository{DB: db}
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO clients (name, email, phone, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		client.Name, client.Email, client.Phone, client.Notes, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := scanClient(r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Source() domain.PageSource[*domain.Client] {
	return pageSource[*domain.Client]{
		db: r.DB,
		query: listQuery{
			from:         "clients",
			columns:      clientColumns,
			defaultOrder: "name ASC, id ASC",
		},
		scan: scanClient,
	}
}
