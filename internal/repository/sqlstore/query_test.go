package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lawflow/internal/domain"
)

func TestListQuery_SQL(t *testing.T) {
	q := listQuery{
		from:         "tasks",
		columns:      "id, title",
		defaultOrder: taskDefaultOrder,
	}.whereRaw("is_deleted = FALSE").where("project_id", int64(4)).where("status", "Done")

	assert.Equal(t, "SELECT COUNT(*) FROM tasks WHERE is_deleted = FALSE AND project_id = $1 AND status = $2", q.countSQL())

	query, args := q.selectSQL(100, 50, nil)
	assert.Equal(t, "SELECT id, title FROM tasks WHERE is_deleted = FALSE AND project_id = $1 AND status = $2 ORDER BY due_date ASC NULLS LAST, id ASC LIMIT $3 OFFSET $4", query)
	assert.Equal(t, []any{int64(4), "Done", 50, 100}, args)

	query, args = q.selectSQL(0, 10, &domain.Ordering{Column: "title", Desc: true})
	assert.Equal(t, "SELECT id, title FROM tasks WHERE is_deleted = FALSE AND project_id = $1 AND status = $2 ORDER BY title DESC NULLS LAST, id DESC LIMIT $3 OFFSET $4", query)
	assert.Equal(t, []any{int64(4), "Done", 10, 0}, args)

	query, args = q.selectSQL(0, -1, nil)
	assert.Equal(t, "SELECT id, title FROM tasks WHERE is_deleted = FALSE AND project_id = $1 AND status = $2 ORDER BY due_date ASC NULLS LAST, id ASC", query)
	assert.Len(t, args, 2)
}

func TestListQuery_WhereDoesNotAlias(t *testing.T) {
	base := listQuery{from: "files", columns: "id", defaultOrder: "id"}.where("project_id", int64(1))
	a := base.where("version", 1)
	b := base.where("original_filename", "x.pdf")

	assert.Equal(t, "SELECT COUNT(*) FROM files WHERE project_id = $1 AND version = $2", a.countSQL())
	assert.Equal(t, "SELECT COUNT(*) FROM files WHERE project_id = $1 AND original_filename = $2", b.countSQL())
	assert.Equal(t, []any{int64(1), 1}, a.args)
	assert.Equal(t, []any{int64(1), "x.pdf"}, b.args)
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		order domain.Ordering
		want  string
	}{
		{domain.Ordering{Column: "due_date"}, "due_date ASC NULLS LAST, id ASC"},
		{domain.Ordering{Column: "due_date", Desc: true}, "due_date DESC NULLS LAST, id DESC"},
		{domain.Ordering{Column: "id", Desc: true}, "id DESC"},
		{domain.Ordering{Column: "id"}, "id ASC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.order))
	}
}
