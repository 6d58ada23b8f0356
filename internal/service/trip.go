// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce scheduling rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
)

// rejected counts a validation failure for entity and returns err unchanged.
func rejected(entity string, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		metrics.IncValidationFailure(entity)
	}
	return err
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. The name is trimmed.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	name, err := domain.RequireText("trip name", trip.Name)
	if err != nil {
		return domain.Trip{}, rejected("trip", err)
	}
	trip.Name = name

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	if err := domain.ValidateID("trip_id", id); err != nil {
		return domain.Trip{}, rejected("trip", err)
	}
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by id.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total trip count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Rename validates and stores a new name for an existing trip.
func (s *TripService) Rename(ctx context.Context, id int64, name string) (domain.Trip, error) {
	if err := domain.ValidateID("trip_id", id); err != nil {
		return domain.Trip{}, rejected("trip", err)
	}
	name, err := domain.RequireText("trip name", name)
	if err != nil {
		return domain.Trip{}, rejected("trip", err)
	}

	result, err := s.repo.Update(ctx, domain.Trip{ID: id, Name: name})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Rename: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything under it.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := domain.ValidateID("trip_id", id); err != nil {
		return rejected("trip", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
