// Package sqlite implements the repo interfaces on a single-file SQLite
// database through database/sql and github.com/mattn/go-sqlite3.
// It is the default store for the CLI: one user, one process, one file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// db is the minimal interface satisfied by *sql.DB, *sql.Conn, and *sql.Tx.
type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// DSN turns a file path (or ":memory:") into a go-sqlite3 connection string
// with foreign keys enforced, which the cascade deletes depend on.
func DSN(path string) string {
	if path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open opens the database at path and verifies it is reachable.
// The pool is limited to one connection: the planner is single-user, and an
// in-memory database only lives as long as its connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite.Open: ping: %w", err)
	}
	return conn, nil
}

// New builds all three SQLite repositories over one connection.
func New(db db) repo.Repos {
	return repo.Repos{
		Trips: NewTripRepo(db),
		Days:  NewDayRepo(db),
		Items: NewItemRepo(db),
	}
}

// translate maps driver errors onto domain sentinels, like repo.translate
// does for Postgres.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", domain.ErrConflict, se.Error())
	}
	return err
}

// nowExpr is the SQL expression used for updated_at; it matches the
// column defaults in the migration.
const nowExpr = `strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

// parseTime reads the ISO-8601 UTC timestamps SQLite stores as TEXT.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// checkAffected turns a zero-row write into domain.ErrNotFound.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
