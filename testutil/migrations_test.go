package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/repo/sqlite"
	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/testutil"
)

var plannerTables = []string{"trips", "days", "items"}

// TestMigrations_Postgres verifies the full migration round-trip against a
// real Postgres database: up, every table exists, down to 0, every table is
// gone. Skipped when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Postgres())
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may already have migrated this shared test
	// DB; reset first so this test is order-independent.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	for _, table := range plannerTables {
		assert.True(t, tableExists(t, db, q, table), "expected table %q to exist", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range plannerTables {
		assert.False(t, tableExists(t, db, q, table), "expected table %q to be dropped", table)
	}

	// Leave the schema in place for packages that run after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up again")
}

// TestMigrations_SQLite runs the same round-trip on a temp SQLite file.
func TestMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, testutil.SQLitePath(t))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err, "create goose provider")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results)

	const q = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	for _, table := range plannerTables {
		assert.True(t, tableExists(t, db, q, table), "expected table %q to exist", table)
	}

	// A second Up is a no-op.
	results, err = provider.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range plannerTables {
		assert.False(t, tableExists(t, db, q, table), "expected table %q to be dropped", table)
	}
}

func tableExists(t *testing.T, db *sql.DB, q, table string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
