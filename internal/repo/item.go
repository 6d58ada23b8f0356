package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ItemRepo defines the persistence operations for Items.
// Listing returns rows in id order; the canonical display order is applied
// by the caller (see schedule.Sort).
type ItemRepo interface {
	// Create inserts a new item and returns the persisted record.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves a single item. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (domain.Item, error)

	// ListByDay returns a day's items ordered by id.
	ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error)

	// Update overwrites the descriptive fields (everything except day and
	// window) and returns the updated record.
	Update(ctx context.Context, item domain.Item) (domain.Item, error)

	// SetTime writes the window; pass nil, nil to unschedule the item.
	SetTime(ctx context.Context, id int64, start, end *int) (domain.Item, error)

	// Delete removes an item by id.
	Delete(ctx context.Context, id int64) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, day_id, title, category, start_min, end_min, pinned,
	estimated_cost, actual_cost, currency, location, tags, notes, created_at, updated_at`

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		INSERT INTO items (day_id, title, category, start_min, end_min, pinned,
		                   estimated_cost, actual_cost, currency, location, tags, notes)
		VALUES (@day_id, @title, @category, @start_min, @end_min, @pinned,
		        @estimated_cost, @actual_cost, @currency, @location, @tags, @notes)
		RETURNING ` + itemColumns

	args := itemArgs(item)
	args["day_id"] = item.DayID
	args["start_min"] = item.StartMin // nil becomes NULL
	args["end_min"] = item.EndMin

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = @id`

	result, err := scanItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE day_id = @day_id
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByDay: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByDay: rows: %w", err)
	}
	return items, nil
}

func (r *pgItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		UPDATE items
		SET title          = @title,
		    category       = @category,
		    pinned         = @pinned,
		    estimated_cost = @estimated_cost,
		    actual_cost    = @actual_cost,
		    currency       = @currency,
		    location       = @location,
		    tags           = @tags,
		    notes          = @notes,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + itemColumns

	args := itemArgs(item)
	args["id"] = item.ID

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) SetTime(ctx context.Context, id int64, start, end *int) (domain.Item, error) {
	const q = `
		UPDATE items
		SET start_min  = @start_min,
		    end_min    = @end_min,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{"id": id, "start_min": start, "end_min": end}
	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.SetTime: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// itemArgs holds the descriptive columns shared by insert and update.
func itemArgs(item domain.Item) pgx.NamedArgs {
	tags := item.Tags
	if tags == nil {
		tags = []string{} // the column is NOT NULL; a nil slice encodes as NULL
	}
	return pgx.NamedArgs{
		"title":          item.Title,
		"category":       item.Category,
		"pinned":         item.Pinned,
		"estimated_cost": item.EstimatedCost,
		"actual_cost":    item.ActualCost,
		"currency":       item.Currency,
		"location":       item.Location,
		"tags":           tags,
		"notes":          item.Notes,
	}
}

// scanItem maps a single database row into a domain.Item, converting the
// nullable window and cost columns into pointers.
func scanItem(s scanner) (domain.Item, error) {
	var (
		it                domain.Item
		start, end        pgtype.Int4
		estimated, actual pgtype.Float8
	)
	err := s.Scan(&it.ID, &it.DayID, &it.Title, &it.Category, &start, &end, &it.Pinned,
		&estimated, &actual, &it.Currency, &it.Location, &it.Tags, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Item{}, translate(err)
	}

	if start.Valid && end.Valid {
		sm, em := int(start.Int32), int(end.Int32)
		it.StartMin, it.EndMin = &sm, &em
	}
	if estimated.Valid {
		v := estimated.Float64
		it.EstimatedCost = &v
	}
	if actual.Valid {
		v := actual.Float64
		it.ActualCost = &v
	}
	return it, nil
}
