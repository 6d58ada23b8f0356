// Package store opens the configured persistence backend, applies the
// embedded goose migrations, and hands out the repositories.
// It is the only place that knows which driver is in use.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/repo/sqlite"
	"github.com/pkordes/trip-planner/migrations"
)

// Supported values for the store driver setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store owns the open connection and the repositories built on it.
type Store struct {
	repo.Repos

	driver string
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
}

// Open connects to the database named by url using driver and verifies it
// is reachable. It does not migrate; call Migrate for that.
func Open(ctx context.Context, driver, url string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		conn, err := sqlite.Open(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return &Store{Repos: sqlite.New(conn), driver: driver, sqlDB: conn}, nil

	case DriverPostgres:
		// pgxpool.New does not open connections immediately; Ping does.
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("store.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("store.Open: ping: %w", err)
		}
		return &Store{
			Repos:  repo.NewPostgres(pool),
			driver: driver,
			sqlDB:  stdlib.OpenDBFromPool(pool),
			pool:   pool,
		}, nil
	}
	return nil, fmt.Errorf("store.Open: unknown driver %q", driver)
}

// Driver reports which backend the store uses.
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks the connection; used by the HTTP readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Migrate applies every pending migration for the store's dialect.
// It is idempotent, so front ends call it on every start.
func (s *Store) Migrate(ctx context.Context) error {
	dialect, fsys := Dialect(s.driver)
	return Migrate(ctx, dialect, s.sqlDB, fsys)
}

// Close releases the connection (and the pool, for Postgres).
func (s *Store) Close() {
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Dialect returns the goose dialect and migration files for a driver.
func Dialect(driver string) (goose.Dialect, fs.FS) {
	if driver == DriverPostgres {
		return goose.DialectPostgres, migrations.Postgres()
	}
	return goose.DialectSQLite3, migrations.SQLite()
}

// Migrate runs goose up against db with the given migration files.
func Migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("store.Migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("store.Migrate: %w", err)
	}
	for _, r := range results {
		slog.DebugContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	return nil
}
