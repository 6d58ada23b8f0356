package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// DayService implements business logic for Day operations.
// It holds the trips repo because days are always created under an
// existing trip.
type DayService struct {
	trips repo.TripRepo
	days  repo.DayRepo
}

// NewDayService constructs a DayService backed by the provided repos.
func NewDayService(trips repo.TripRepo, days repo.DayRepo) *DayService {
	return &DayService{trips: trips, days: days}
}

// Create validates the date, verifies the parent trip exists, then persists.
// A second day with the same date in one trip is a validation error.
func (s *DayService) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	if err := domain.ValidateID("trip_id", day.TripID); err != nil {
		return domain.Day{}, rejected("day", err)
	}
	if err := domain.ValidateDateString(day.Date); err != nil {
		return domain.Day{}, rejected("day", err)
	}
	day.Notes = strings.TrimSpace(day.Notes)

	if _, err := s.trips.GetByID(ctx, day.TripID); err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.Create: trip: %w", err)
	}

	result, err := s.days.Create(ctx, day)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Day{}, rejected("day",
			domain.Invalidf("could not create day (possible duplicate date for this trip)"))
	}
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single day.
func (s *DayService) GetByID(ctx context.Context, id int64) (domain.Day, error) {
	if err := domain.ValidateID("day_id", id); err != nil {
		return domain.Day{}, rejected("day", err)
	}
	result, err := s.days.GetByID(ctx, id)
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's days in date order.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *DayService) ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error) {
	if err := domain.ValidateID("trip_id", tripID); err != nil {
		return nil, rejected("day", err)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTrip: trip: %w", err)
	}
	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTrip: %w", err)
	}
	if days == nil {
		return []domain.Day{}, nil
	}
	return days, nil
}

// UpdateDate moves a day to another date within its trip.
func (s *DayService) UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error) {
	if err := domain.ValidateID("day_id", id); err != nil {
		return domain.Day{}, rejected("day", err)
	}
	if err := domain.ValidateDateString(date); err != nil {
		return domain.Day{}, rejected("day", err)
	}

	result, err := s.days.UpdateDate(ctx, id, date)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Day{}, rejected("day",
			domain.Invalidf("could not move day (trip already has a day on %s)", date))
	}
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.UpdateDate: %w", err)
	}
	return result, nil
}

// Delete removes a day and its items.
func (s *DayService) Delete(ctx context.Context, id int64) error {
	if err := domain.ValidateID("day_id", id); err != nil {
		return rejected("day", err)
	}
	if err := s.days.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DayService.Delete: %w", err)
	}
	return nil
}
