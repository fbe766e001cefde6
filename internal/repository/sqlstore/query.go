package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"lawflow/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// listQuery describes a filtered view over one table. Placeholders are
// numbered in order of appearance so the same text runs on PostgreSQL and SQLite.
type listQuery struct {
	from         string
	columns      string
	predicates   []string
	args         []any
	defaultOrder string
}

// where adds "column = $n" to the filter.
func (q listQuery) where(column string, value any) listQuery {
	q.args = append(append([]any(nil), q.args...), value)
	q.predicates = append(append([]string(nil), q.predicates...), fmt.Sprintf("%s = $%d", column, len(q.args)))
	return q
}

// whereRaw adds a predicate without arguments.
func (q listQuery) whereRaw(predicate string) listQuery {
	q.predicates = append(append([]string(nil), q.predicates...), predicate)
	return q
}

func (q listQuery) whereClause() string {
	if len(q.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.predicates, " AND ")
}

func (q listQuery) countSQL() string {
	return "SELECT COUNT(*) FROM " + q.from + q.whereClause()
}

// selectSQL builds the page query. limit < 0 returns every matching row.
func (q listQuery) selectSQL(offset, limit int, order *domain.Ordering) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(q.columns)
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	b.WriteString(q.whereClause())
	b.WriteString(" ORDER BY ")
	if order != nil {
		b.WriteString(orderClause(*order))
	} else {
		b.WriteString(q.defaultOrder)
	}
	args := append([]any(nil), q.args...)
	if limit >= 0 {
		args = append(args, limit, offset)
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return b.String(), args
}

// orderClause renders a requested ordering with nulls last and an id tiebreak
// in the same direction, so asc and desc are exact reverses over distinct values.
func orderClause(o domain.Ordering) string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	if o.Column == "id" {
		return "id " + dir
	}
	return fmt.Sprintf("%s %s NULLS LAST, id %s", o.Column, dir, dir)
}

// pageSource adapts a listQuery to domain.PageSource.
type pageSource[T any] struct {
	db    *DB
	query listQuery
	scan  func(rowScanner) (T, error)
}

func (s pageSource[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.query.countSQL(), s.query.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s pageSource[T]) Fetch(ctx context.Context, offset, limit int, order *domain.Ordering) ([]T, error) {
	if limit < 0 {
		limit = 0
	}
	return s.fetch(ctx, offset, limit, order)
}

// all returns every matching row in default order.
func (s pageSource[T]) all(ctx context.Context) ([]T, error) {
	return s.fetch(ctx, 0, -1, nil)
}

func (s pageSource[T]) fetch(ctx context.Context, offset, limit int, order *domain.Ordering) ([]T, error) {
	query, args := s.query.selectSQL(offset, limit, order)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
