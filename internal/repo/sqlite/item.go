package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

type itemRepo struct {
	db db
}

// NewItemRepo constructs a repo.ItemRepo backed by SQLite.
func NewItemRepo(db db) repo.ItemRepo {
	return &itemRepo{db: db}
}

const itemColumns = `id, day_id, title, category, start_min, end_min, pinned,
	estimated_cost, actual_cost, currency, location, tags, notes, created_at, updated_at`

// tagSep joins tags in the single TEXT column.
const tagSep = ","

func (r *itemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		INSERT INTO items (day_id, title, category, start_min, end_min, pinned,
		                   estimated_cost, actual_cost, currency, location, tags, notes)
		VALUES (@day_id, @title, @category, @start_min, @end_min, @pinned,
		        @estimated_cost, @actual_cost, @currency, @location, @tags, @notes)
		RETURNING ` + itemColumns

	args := append(itemArgs(item),
		sql.Named("day_id", item.DayID),
		sql.Named("start_min", nullInt(item.StartMin)),
		sql.Named("end_min", nullInt(item.EndMin)),
	)
	result, err := scanItem(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return domain.Item{}, fmt.Errorf("sqlite.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = @id`

	result, err := scanItem(r.db.QueryRowContext(ctx, q, sql.Named("id", id)))
	if err != nil {
		return domain.Item{}, fmt.Errorf("sqlite.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *itemRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE day_id = @day_id ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, sql.Named("day_id", dayID))
	if err != nil {
		return nil, fmt.Errorf("sqlite.ItemRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite.ItemRepo.ListByDay: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.ItemRepo.ListByDay: rows: %w", err)
	}
	return items, nil
}

func (r *itemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
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
		    updated_at     = ` + nowExpr + `
		WHERE id = @id
		RETURNING ` + itemColumns

	args := append(itemArgs(item), sql.Named("id", item.ID))
	result, err := scanItem(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return domain.Item{}, fmt.Errorf("sqlite.ItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *itemRepo) SetTime(ctx context.Context, id int64, start, end *int) (domain.Item, error) {
	const q = `
		UPDATE items
		SET start_min  = @start_min,
		    end_min    = @end_min,
		    updated_at = ` + nowExpr + `
		WHERE id = @id
		RETURNING ` + itemColumns

	row := r.db.QueryRowContext(ctx, q,
		sql.Named("id", id),
		sql.Named("start_min", nullInt(start)),
		sql.Named("end_min", nullInt(end)),
	)
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("sqlite.ItemRepo.SetTime: %w", err)
	}
	return result, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = @id`, sql.Named("id", id))
	if err != nil {
		return fmt.Errorf("sqlite.ItemRepo.Delete: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("sqlite.ItemRepo.Delete: %w", err)
	}
	return nil
}

// itemArgs holds the descriptive columns shared by insert and update.
func itemArgs(item domain.Item) []any {
	return []any{
		sql.Named("title", item.Title),
		sql.Named("category", item.Category),
		sql.Named("pinned", item.Pinned),
		sql.Named("estimated_cost", nullFloat(item.EstimatedCost)),
		sql.Named("actual_cost", nullFloat(item.ActualCost)),
		sql.Named("currency", item.Currency),
		sql.Named("location", item.Location),
		sql.Named("tags", strings.Join(item.Tags, tagSep)),
		sql.Named("notes", item.Notes),
	}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func scanItem(s scanner) (domain.Item, error) {
	var (
		it                domain.Item
		start, end        sql.NullInt64
		estimated, actual sql.NullFloat64
		tags              string
		created, updated  string
	)
	err := s.Scan(&it.ID, &it.DayID, &it.Title, &it.Category, &start, &end, &it.Pinned,
		&estimated, &actual, &it.Currency, &it.Location, &tags, &it.Notes,
		&created, &updated)
	if err != nil {
		return domain.Item{}, translate(err)
	}

	if start.Valid && end.Valid {
		sm, em := int(start.Int64), int(end.Int64)
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
	if tags != "" {
		it.Tags = strings.Split(tags, tagSep)
	}
	if it.CreatedAt, err = parseTime(created); err != nil {
		return domain.Item{}, err
	}
	if it.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}
