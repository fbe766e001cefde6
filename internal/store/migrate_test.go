package store

import (
	"context"
	"database/sql"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func columnExists(t *testing.T, db *sql.DB, table, column string) bool {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		if name == column {
			return true
		}
	}
	require.NoError(t, rows.Err())
	return false
}

func appliedVersions(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		out = append(out, v)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestApplyMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, ApplyMigrations(ctx, db, DialectSQLite))
	for _, table := range []string{"clients", "projects", "tasks", "checklist_items", "timeline_items", "activities", "files"} {
		assert.True(t, tableExists(t, db, table), table)
	}
	assert.True(t, columnExists(t, db, "files", "parent_version_id"))
	assert.Equal(t, []string{
		"0001_create_core_tables.up.sql",
		"0002_file_versions_and_previews.up.sql",
	}, appliedVersions(t, db))

	require.NoError(t, ApplyMigrations(ctx, db, DialectSQLite), "second run is a no-op")
	assert.Len(t, appliedVersions(t, db), 2)
}

func TestRollback_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, ApplyMigrations(ctx, db, DialectSQLite))

	version, err := Rollback(ctx, db, DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, "0002_file_versions_and_previews.up.sql", version)
	assert.False(t, columnExists(t, db, "files", "parent_version_id"))
	assert.True(t, tableExists(t, db, "files"))

	version, err = Rollback(ctx, db, DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, "0001_create_core_tables.up.sql", version)
	assert.False(t, tableExists(t, db, "projects"))

	_, err = Rollback(ctx, db, DialectSQLite)
	require.ErrorIs(t, err, ErrNoMigrations)

	require.NoError(t, ApplyMigrations(ctx, db, DialectSQLite), "schema can be rebuilt after a full rollback")
	assert.True(t, columnExists(t, db, "files", "scan_status"))
}

func TestMigrationFiles_UpDownPairs(t *testing.T) {
	for _, dialect := range []Dialect{DialectPostgres, DialectSQLite} {
		t.Run(string(dialect), func(t *testing.T) {
			ups, err := migrationFiles(dialect, ".up.sql")
			require.NoError(t, err)
			downs, err := migrationFiles(dialect, ".down.sql")
			require.NoError(t, err)
			require.NotEmpty(t, ups)
			require.Len(t, downs, len(ups))
			for i, up := range ups {
				want := strings.TrimSuffix(path.Base(up), ".up.sql") + ".down.sql"
				assert.Equal(t, want, path.Base(downs[i]))
			}
		})
	}
}

func TestMigrationFiles_DialectsMatch(t *testing.T) {
	pg, err := migrationFiles(DialectPostgres, ".up.sql")
	require.NoError(t, err)
	lite, err := migrationFiles(DialectSQLite, ".up.sql")
	require.NoError(t, err)
	require.Len(t, lite, len(pg))
	for i := range pg {
		assert.Equal(t, path.Base(pg[i]), path.Base(lite[i]))
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{DriverPostgres, DialectPostgres, false},
		{DriverPgx, DialectPostgres, false},
		{DriverSQLite, DialectSQLite, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := DialectFor(tt.driver)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := `SELECT id FROM tasks WHERE project_id = $1 AND status = $2 LIMIT $3 OFFSET $4`
	assert.Equal(t, q, Rebind(DialectPostgres, q))
	assert.Equal(t, `SELECT id FROM tasks WHERE project_id = ? AND status = ? LIMIT ? OFFSET ?`, Rebind(DialectSQLite, q))
	assert.Equal(t, `SELECT 1`, Rebind(DialectSQLite, `SELECT 1`))
}
