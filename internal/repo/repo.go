// Package repo contains the persistence contracts for the trip planner and
// their Postgres implementation. Each resource has its own file with an
// interface and a pgx-backed implementation; the SQLite implementation of the
// same interfaces lives in repo/sqlite.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, so each scanX helper
// serves QueryRow and Query alike.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes the repo maps onto domain errors.
const (
	pgUniqueViolation = "23505"
)

// translate maps driver errors onto domain sentinels: no rows becomes
// domain.ErrNotFound, a unique violation becomes domain.ErrConflict.
// Anything else is returned untouched.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// Repos groups the three repositories a front end needs.
type Repos struct {
	Trips TripRepo
	Days  DayRepo
	Items ItemRepo
}

// NewPostgres builds all three Postgres repositories over one connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgres(db db) Repos {
	return Repos{
		Trips: NewTripRepo(db),
		Days:  NewDayRepo(db),
		Items: NewItemRepo(db),
	}
}
