package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/schedule"
)

// ExportService assembles a flat export of one trip: its days and items.
type ExportService struct {
	trips repo.TripRepo
	days  repo.DayRepo
	items repo.ItemRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, days repo.DayRepo, items repo.ItemRepo) *ExportService {
	return &ExportService{trips: trips, days: days, items: items}
}

// Export returns the trip and one ExportRow per item, days in date order and
// items in canonical order. Days with no items contribute one row with empty
// item fields.
func (s *ExportService) Export(ctx context.Context, tripID int64) (domain.Trip, []domain.ExportRow, error) {
	if err := domain.ValidateID("trip_id", tripID); err != nil {
		return domain.Trip{}, nil, rejected("export", err)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ExportService.Export: trip: %w", err)
	}
	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ExportService.Export: days: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, day := range days {
		base := domain.ExportRow{TripID: trip.ID, TripName: trip.Name, DayID: day.ID, Date: day.Date}

		items, err := s.items.ListByDay(ctx, day.ID)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("service.ExportService.Export: items for day %d: %w", day.ID, err)
		}
		if len(items) == 0 {
			rows = append(rows, base)
			continue
		}

		schedule.Sort(items)
		for _, it := range items {
			row := base
			row.ItemID = it.ID
			row.Title = it.Title
			row.Category = it.Category
			row.StartMin = it.StartMin
			row.EndMin = it.EndMin
			row.Pinned = it.Pinned
			row.EstimatedCost = it.EstimatedCost
			row.ActualCost = it.ActualCost
			row.Currency = it.Currency
			row.Location = it.Location
			row.Tags = it.Tags
			row.Notes = it.Notes
			rows = append(rows, row)
		}
	}
	return trip, rows, nil
}
