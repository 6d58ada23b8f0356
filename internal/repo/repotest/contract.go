// Package repotest holds the behaviour every repo backend must share.
// Backend test packages call Run with a factory that returns fresh,
// migrated, empty repositories for each subtest.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// Factory returns isolated repositories for one subtest.
type Factory func(t *testing.T) repo.Repos

func ptr[T any](v T) *T { return &v }

// Run executes the shared repository contract against a backend.
func Run(t *testing.T, newRepos Factory) {
	t.Run("TripCRUD", func(t *testing.T) { testTripCRUD(t, newRepos(t)) })
	t.Run("TripListPaged", func(t *testing.T) { testTripListPaged(t, newRepos(t)) })
	t.Run("DayCreateListOrder", func(t *testing.T) { testDayCreateListOrder(t, newRepos(t)) })
	t.Run("DayUniquePerTrip", func(t *testing.T) { testDayUniquePerTrip(t, newRepos(t)) })
	t.Run("DayUpdateDate", func(t *testing.T) { testDayUpdateDate(t, newRepos(t)) })
	t.Run("ItemRoundTrip", func(t *testing.T) { testItemRoundTrip(t, newRepos(t)) })
	t.Run("ItemUpdateAndTime", func(t *testing.T) { testItemUpdateAndTime(t, newRepos(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newRepos(t)) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, newRepos(t)) })
}

func seedDay(t *testing.T, r repo.Repos, date string) (domain.Trip, domain.Day) {
	t.Helper()
	ctx := context.Background()
	trip, err := r.Trips.Create(ctx, domain.Trip{Name: "Italy Adventure"})
	require.NoError(t, err)
	day, err := r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: date})
	require.NoError(t, err)
	return trip, day
}

func testTripCRUD(t *testing.T, r repo.Repos) {
	ctx := context.Background()

	created, err := r.Trips.Create(ctx, domain.Trip{Name: "Japan Explorer"})
	require.NoError(t, err)
	assert.Positive(t, created.ID, "ID should be store-generated")
	assert.Equal(t, "Japan Explorer", created.Name)
	assert.False(t, created.CreatedAt.IsZero(), "CreatedAt should be set by the store")
	assert.False(t, created.UpdatedAt.IsZero(), "UpdatedAt should be set by the store")

	got, err := r.Trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	second, err := r.Trips.Create(ctx, domain.Trip{Name: "Iceland Roadtrip"})
	require.NoError(t, err)

	all, err := r.Trips.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID, "trips are listed by id")
	assert.Equal(t, second.ID, all[1].ID)

	renamed, err := r.Trips.Update(ctx, domain.Trip{ID: created.ID, Name: "Japan, Slowly"})
	require.NoError(t, err)
	assert.Equal(t, "Japan, Slowly", renamed.Name)
	assert.False(t, renamed.UpdatedAt.Before(created.UpdatedAt))

	require.NoError(t, r.Trips.Delete(ctx, created.ID))
	_, err = r.Trips.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testTripListPaged(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := r.Trips.Create(ctx, domain.Trip{Name: name})
		require.NoError(t, err)
	}

	page, total, err := r.Trips.ListPaged(ctx, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Name)
	assert.Equal(t, "d", page[1].Name)

	page, _, err = r.Trips.ListPaged(ctx, domain.PaginationParams{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func testDayCreateListOrder(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	trip, _ := seedDay(t, r, "2026-05-25")

	_, err := r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: "2026-05-23", Notes: "arrive"})
	require.NoError(t, err)
	_, err = r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: "2026-05-24"})
	require.NoError(t, err)

	days, err := r.Days.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2026-05-23", "2026-05-24", "2026-05-25"},
		[]string{days[0].Date, days[1].Date, days[2].Date}, "days are listed by date")
	assert.Equal(t, "arrive", days[0].Notes)
	assert.Equal(t, trip.ID, days[0].TripID)

	other, err := r.Trips.Create(ctx, domain.Trip{Name: "empty"})
	require.NoError(t, err)
	none, err := r.Days.ListByTrip(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testDayUniquePerTrip(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	trip, _ := seedDay(t, r, "2026-05-23")

	_, err := r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: "2026-05-23"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The same date on another trip is fine.
	other, err := r.Trips.Create(ctx, domain.Trip{Name: "other"})
	require.NoError(t, err)
	_, err = r.Days.Create(ctx, domain.Day{TripID: other.ID, Date: "2026-05-23"})
	assert.NoError(t, err)
}

func testDayUpdateDate(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	trip, day := seedDay(t, r, "2026-05-23")

	moved, err := r.Days.UpdateDate(ctx, day.ID, "2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", moved.Date)

	_, err = r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: "2026-06-02"})
	require.NoError(t, err)
	_, err = r.Days.UpdateDate(ctx, day.ID, "2026-06-02")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func testItemRoundTrip(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	_, day := seedDay(t, r, "2026-05-23")

	scheduled, err := r.Items.Create(ctx, domain.Item{
		DayID:         day.ID,
		Title:         "Colosseum",
		Category:      "activity",
		StartMin:      ptr(540),
		EndMin:        ptr(660),
		Pinned:        true,
		EstimatedCost: ptr(24.5),
		Currency:      "EUR",
		Location:      "Rome",
		Tags:          []string{"history", "rome"},
		Notes:         "book ahead",
	})
	require.NoError(t, err)
	assert.Positive(t, scheduled.ID)

	got, err := r.Items.GetByID(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.DayID)
	assert.Equal(t, "Colosseum", got.Title)
	require.True(t, got.Scheduled())
	assert.Equal(t, 540, *got.StartMin)
	assert.Equal(t, 660, *got.EndMin)
	assert.True(t, got.Pinned)
	require.NotNil(t, got.EstimatedCost)
	assert.InDelta(t, 24.5, *got.EstimatedCost, 0.001)
	assert.Nil(t, got.ActualCost)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "Rome", got.Location)
	assert.Equal(t, []string{"history", "rome"}, got.Tags)
	assert.Equal(t, "book ahead", got.Notes)
	assert.False(t, got.CreatedAt.IsZero())

	loose, err := r.Items.Create(ctx, domain.Item{DayID: day.ID, Title: "Gelato", Category: "food"})
	require.NoError(t, err)
	assert.False(t, loose.Scheduled())
	assert.Empty(t, loose.Tags)

	items, err := r.Items.ListByDay(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, scheduled.ID, items[0].ID, "items are listed by id")
	assert.Equal(t, loose.ID, items[1].ID)
}

func testItemUpdateAndTime(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	_, day := seedDay(t, r, "2026-05-23")

	it, err := r.Items.Create(ctx, domain.Item{DayID: day.ID, Title: "Train", Category: "transport"})
	require.NoError(t, err)

	it.Title = "Train to Florence"
	it.ActualCost = ptr(39.9)
	it.Tags = []string{"rail"}
	updated, err := r.Items.Update(ctx, it)
	require.NoError(t, err)
	assert.Equal(t, "Train to Florence", updated.Title)
	require.NotNil(t, updated.ActualCost)
	assert.InDelta(t, 39.9, *updated.ActualCost, 0.001)
	assert.Equal(t, []string{"rail"}, updated.Tags)
	assert.False(t, updated.Scheduled(), "Update never touches the window")

	timed, err := r.Items.SetTime(ctx, it.ID, ptr(480), ptr(600))
	require.NoError(t, err)
	require.True(t, timed.Scheduled())
	assert.Equal(t, 480, *timed.StartMin)
	assert.Equal(t, "Train to Florence", timed.Title)

	cleared, err := r.Items.SetTime(ctx, it.ID, nil, nil)
	require.NoError(t, err)
	assert.False(t, cleared.Scheduled())

	require.NoError(t, r.Items.Delete(ctx, it.ID))
	_, err = r.Items.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testNotFound(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	const missing = int64(987654)

	_, err := r.Trips.GetByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Trips.Update(ctx, domain.Trip{ID: missing, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Trips.Delete(ctx, missing), domain.ErrNotFound)

	_, err = r.Days.GetByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Days.UpdateDate(ctx, missing, "2026-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Days.Delete(ctx, missing), domain.ErrNotFound)

	_, err = r.Items.GetByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Items.SetTime(ctx, missing, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Items.Delete(ctx, missing), domain.ErrNotFound)
}

func testCascadeDelete(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	trip, day1 := seedDay(t, r, "2026-05-23")
	day2, err := r.Days.Create(ctx, domain.Day{TripID: trip.ID, Date: "2026-05-24"})
	require.NoError(t, err)

	a, err := r.Items.Create(ctx, domain.Item{DayID: day1.ID, Title: "a", Category: "c", StartMin: ptr(60), EndMin: ptr(120)})
	require.NoError(t, err)
	b, err := r.Items.Create(ctx, domain.Item{DayID: day2.ID, Title: "b", Category: "c"})
	require.NoError(t, err)

	// Deleting a day removes only its items.
	require.NoError(t, r.Days.Delete(ctx, day2.ID))
	_, err = r.Items.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Items.GetByID(ctx, a.ID)
	require.NoError(t, err)

	// Deleting the trip removes the remaining day and its items.
	require.NoError(t, r.Trips.Delete(ctx, trip.ID))

	days, err := r.Days.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = r.Days.GetByID(ctx, day1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	items, err := r.Items.ListByDay(ctx, day1.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = r.Items.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
