package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewSQLiteDB_RequiresPath(t *testing.T) {
	_, err := NewSQLiteDB(context.Background(), "")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	cases := []struct {
		path     string
		wantPath string
	}{
		{"smart_attendance.db", "file:smart_attendance.db?"},
		{"/var/lib/attendance/log.db", "file:/var/lib/attendance/log.db?"},
		{"/tmp/a?b#c 100%.db", "file:/tmp/a%3Fb%23c%20100%25.db?"},
	}

	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			dsn := sqliteDSN(c.path)
			assert.True(t, strings.HasPrefix(dsn, c.wantPath), dsn)
			assert.Contains(t, dsn, "_txlock=immediate")
			assert.Contains(t, dsn, "_pragma=journal_mode%28WAL%29")
		})
	}
}

func TestNewSQLiteDB_PathWithURICharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log?v=1#draft 100%.db")

	db, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	var journalMode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())

	var name string
	err := db.QueryRowContext(context.Background(),
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'attendance'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "attendance", name)
}

func TestMigrate_AdoptsExistingTable(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	// Layout written by earlier installs, before migrations were tracked.
	_, err := db.ExecContext(ctx, `CREATE TABLE attendance (
		staff_id TEXT,
		date TEXT,
		time_in TEXT,
		time_out TEXT,
		late_minutes INTEGER DEFAULT 0,
		overtime_minutes INTEGER DEFAULT 0,
		PRIMARY KEY (staff_id, date)
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO attendance (staff_id, date, time_in, late_minutes)
		VALUES ('E1', '2024-01-01', '2024-01-01 11:23:00', 23)`)
	require.NoError(t, err)

	require.NoError(t, db.Migrate())

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTxContext(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	_, ok := TxFromContext(ctx)
	assert.False(t, ok)

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	got, ok := TxFromContext(ContextWithTx(ctx, tx))
	assert.True(t, ok)
	assert.Same(t, tx, got)
}
