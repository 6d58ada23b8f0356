package service_test

import (
	"context"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// Calling an unset field panics, which flags an unexpected repo call.

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id int64) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockDayRepo struct {
	create     func(ctx context.Context, day domain.Day) (domain.Day, error)
	getByID    func(ctx context.Context, id int64) (domain.Day, error)
	listByTrip func(ctx context.Context, tripID int64) ([]domain.Day, error)
	updateDate func(ctx context.Context, id int64, date string) (domain.Day, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	return m.create(ctx, day)
}
func (m *mockDayRepo) GetByID(ctx context.Context, id int64) (domain.Day, error) {
	return m.getByID(ctx, id)
}
func (m *mockDayRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDayRepo) UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error) {
	return m.updateDate(ctx, id, date)
}
func (m *mockDayRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockItemRepo struct {
	create    func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID   func(ctx context.Context, id int64) (domain.Item, error)
	listByDay func(ctx context.Context, dayID int64) ([]domain.Item, error)
	update    func(ctx context.Context, item domain.Item) (domain.Item, error)
	setTime   func(ctx context.Context, id int64, start, end *int) (domain.Item, error)
	delete    func(ctx context.Context, id int64) error
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.update(ctx, item)
}
func (m *mockItemRepo) SetTime(ctx context.Context, id int64, start, end *int) (domain.Item, error) {
	return m.setTime(ctx, id, start, end)
}
func (m *mockItemRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.TripRepo = (*mockTripRepo)(nil)
	_ repo.DayRepo  = (*mockDayRepo)(nil)
	_ repo.ItemRepo = (*mockItemRepo)(nil)
)

func ptr[T any](v T) *T { return &v }

// existingDay is a day repo whose GetByID finds any positive id.
func existingDay() *mockDayRepo {
	return &mockDayRepo{
		getByID: func(_ context.Context, id int64) (domain.Day, error) {
			return domain.Day{ID: id, TripID: 1, Date: "2026-05-23"}, nil
		},
	}
}

// existingTrip is a trip repo whose GetByID finds any positive id.
func existingTrip() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id int64) (domain.Trip, error) {
			return domain.Trip{ID: id, Name: "Italy"}, nil
		},
	}
}
