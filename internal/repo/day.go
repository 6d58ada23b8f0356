package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DayRepo defines the persistence operations for Days.
// (trip_id, date) is unique: writes that would duplicate a date within a trip
// return domain.ErrConflict.
type DayRepo interface {
	// Create inserts a new day under day.TripID and returns the persisted record.
	Create(ctx context.Context, day domain.Day) (domain.Day, error)

	// GetByID retrieves a single day. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (domain.Day, error)

	// ListByTrip returns a trip's days ordered by date, then id.
	ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error)

	// UpdateDate moves a day to another date and returns the updated record.
	UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error)

	// Delete removes a day and, by cascade, its items.
	Delete(ctx context.Context, id int64) error
}

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayColumns = `id, trip_id, date, notes`

func (r *pgDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	date, err := pgDate(day.Date)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO days (trip_id, date, notes)
		VALUES (@trip_id, @date, @notes)
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{"trip_id": day.TripID, "date": date, "notes": day.Notes}
	result, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, id int64) (domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = @id`

	result, err := scanDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error) {
	const q = `
		SELECT ` + dayColumns + `
		FROM days
		WHERE trip_id = @trip_id
		ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	days := []domain.Day{}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayRepo.ListByTrip: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: rows: %w", err)
	}
	return days, nil
}

func (r *pgDayRepo) UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error) {
	d, err := pgDate(date)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.UpdateDate: %w", err)
	}

	const q = `
		UPDATE days
		SET date = @date
		WHERE id = @id
		RETURNING ` + dayColumns

	result, err := scanDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "date": d}))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.UpdateDate: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM days WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// pgDate converts an ISO date string into a DATE parameter.
func pgDate(s string) (pgtype.Date, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

// scanDay maps a single database row into a domain.Day.
func scanDay(s scanner) (domain.Day, error) {
	var (
		d    domain.Day
		date pgtype.Date
	)
	if err := s.Scan(&d.ID, &d.TripID, &date, &d.Notes); err != nil {
		return domain.Day{}, translate(err)
	}
	d.Date = date.Time.Format(domain.DateLayout)
	return d, nil
}
