package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

type dayRepo struct {
	db db
}

// NewDayRepo constructs a repo.DayRepo backed by SQLite.
func NewDayRepo(db db) repo.DayRepo {
	return &dayRepo{db: db}
}

const dayColumns = `id, trip_id, date, notes`

func (r *dayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	const q = `
		INSERT INTO days (trip_id, date, notes)
		VALUES (@trip_id, @date, @notes)
		RETURNING ` + dayColumns

	row := r.db.QueryRowContext(ctx, q,
		sql.Named("trip_id", day.TripID),
		sql.Named("date", day.Date),
		sql.Named("notes", day.Notes),
	)
	result, err := scanDay(row)
	if err != nil {
		return domain.Day{}, fmt.Errorf("sqlite.DayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *dayRepo) GetByID(ctx context.Context, id int64) (domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = @id`

	result, err := scanDay(r.db.QueryRowContext(ctx, q, sql.Named("id", id)))
	if err != nil {
		return domain.Day{}, fmt.Errorf("sqlite.DayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *dayRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error) {
	const q = `
		SELECT ` + dayColumns + `
		FROM days
		WHERE trip_id = @trip_id
		ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, sql.Named("trip_id", tripID))
	if err != nil {
		return nil, fmt.Errorf("sqlite.DayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	days := []domain.Day{}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite.DayRepo.ListByTrip: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.DayRepo.ListByTrip: rows: %w", err)
	}
	return days, nil
}

func (r *dayRepo) UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error) {
	const q = `UPDATE days SET date = @date WHERE id = @id RETURNING ` + dayColumns

	result, err := scanDay(r.db.QueryRowContext(ctx, q, sql.Named("id", id), sql.Named("date", date)))
	if err != nil {
		return domain.Day{}, fmt.Errorf("sqlite.DayRepo.UpdateDate: %w", err)
	}
	return result, nil
}

func (r *dayRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM days WHERE id = @id`, sql.Named("id", id))
	if err != nil {
		return fmt.Errorf("sqlite.DayRepo.Delete: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("sqlite.DayRepo.Delete: %w", err)
	}
	return nil
}

func scanDay(s scanner) (domain.Day, error) {
	var d domain.Day
	if err := s.Scan(&d.ID, &d.TripID, &d.Date, &d.Notes); err != nil {
		return domain.Day{}, translate(err)
	}
	return d, nil
}
