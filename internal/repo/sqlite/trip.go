package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

type tripRepo struct {
	db db
}

// NewTripRepo constructs a repo.TripRepo backed by SQLite.
func NewTripRepo(db db) repo.TripRepo {
	return &tripRepo{db: db}
}

const tripColumns = `id, name, created_at, updated_at`

func (r *tripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `INSERT INTO trips (name) VALUES (@name) RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRowContext(ctx, q, sql.Named("name", trip.Name)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("sqlite.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *tripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRowContext(ctx, q, sql.Named("id", id)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("sqlite.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *tripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite.TripRepo.List: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *tripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite.TripRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY id ASC LIMIT @limit OFFSET @offset`

	rows, err := r.db.QueryContext(ctx, q, sql.Named("limit", p.Limit), sql.Named("offset", p.Offset()))
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite.TripRepo.ListPaged: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

func (r *tripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name = @name, updated_at = ` + nowExpr + `
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRowContext(ctx, q, sql.Named("id", trip.ID), sql.Named("name", trip.Name))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("sqlite.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *tripRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = @id`, sql.Named("id", id))
	if err != nil {
		return fmt.Errorf("sqlite.TripRepo.Delete: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("sqlite.TripRepo.Delete: %w", err)
	}
	return nil
}

func collectTrips(rows *sql.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                domain.Trip
		created, updated string
	)
	if err := s.Scan(&t.ID, &t.Name, &created, &updated); err != nil {
		return domain.Trip{}, translate(err)
	}
	var err error
	if t.CreatedAt, err = parseTime(created); err != nil {
		return domain.Trip{}, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}
