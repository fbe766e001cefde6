package sqlstore

import (
	"context"
	"database/sql"

	"lawflow/internal/store"
)

// DB wraps *sql.DB so repositories can write $n placeholders for every dialect.
type DB struct {
	*sql.DB
	dialect store.Dialect
}

// New wraps db for the given dialect.
func New(db *sql.DB, dialect store.Dialect) *DB {
	return &DB{DB: db, dialect: dialect}
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.DB.QueryRowContext(ctx, store.Rebind(d.dialect, query), args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.DB.QueryContext(ctx, store.Rebind(d.dialect, query), args...)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.DB.ExecContext(ctx, store.Rebind(d.dialect, query), args...)
}
