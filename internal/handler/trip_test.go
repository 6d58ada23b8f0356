package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.Trip
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			got = trip
			return fixture, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodPost, "/trips", map[string]any{"name": "Italy"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Italy", got.Name)
	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.Invalidf("trip name must not be empty"))
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodPost, "/trips", map[string]any{"name": "  "})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "trip name must not be empty", resp.Error.Message)
}

func TestCreateTrip_422_UnknownField(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Trips: &mockTripServicer{}}), http.MethodPost, "/trips",
		map[string]any{"name": "Italy", "start_date": "2026-05-01"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "invalid request body")
}

func TestCreateTrip_422_MalformedJSON(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Trips: &mockTripServicer{}}), http.MethodPost, "/trips", `{"name":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

func TestCreateTrip_500_HidesDetail(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, errors.New("disk on fire")
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodPost, "/trips", map[string]any{"name": "Italy"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "disk")
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_DefaultPagination(t *testing.T) {
	var got domain.PaginationParams
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			got = p
			return []domain.Trip{tripFixture()}, 1, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodGet, "/trips", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: domain.DefaultPageLimit}, got)
	var resp handler.TripList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, handler.Pagination{Page: 1, Limit: 20, Total: 1}, resp.Pagination)
}

func TestListTrips_PageAndLimitCapped(t *testing.T) {
	var got domain.PaginationParams
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			got = p
			return []domain.Trip{}, 250, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodGet, "/trips?page=3&limit=500", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: domain.MaxPageLimit}, got)
	var resp handler.TripList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.Data)
	assert.Equal(t, int64(250), resp.Pagination.Total)
}

func TestListTrips_422_BadPage(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Trips: &mockTripServicer{}}), http.MethodGet, "/trips?page=abc", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "page must be an integer", decodeError(t, rec).Error.Message)
}

// ---- GET/PUT/DELETE /trips/{tripID} ----------------------------------------

func TestGetTrip_200(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id int64) (domain.Trip, error) {
			assert.Equal(t, int64(7), id)
			return tripFixture(), nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodGet, "/trips/7", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ int64) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodGet, "/trips/99", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "trip not found", resp.Error.Message)
}

func TestGetTrip_422_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-4"} {
		t.Run(id, func(t *testing.T) {
			rec := do(t, newHTTPHandler(handler.Deps{Trips: &mockTripServicer{}}), http.MethodGet, "/trips/"+id, nil)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "tripID must be a positive integer", decodeError(t, rec).Error.Message)
		})
	}
}

func TestUpdateTrip_200_Renames(t *testing.T) {
	var gotID int64
	var gotName string
	svc := &mockTripServicer{
		rename: func(_ context.Context, id int64, name string) (domain.Trip, error) {
			gotID, gotName = id, name
			trip := tripFixture()
			trip.Name = name
			return trip, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodPut, "/trips/7", map[string]any{"name": "Tuscany"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, "Tuscany", gotName)
	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Tuscany", resp.Name)
}

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ int64) error { return nil },
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodDelete, "/trips/7", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ int64) error { return domain.ErrNotFound },
	}

	rec := do(t, newHTTPHandler(handler.Deps{Trips: svc}), http.MethodDelete, "/trips/7", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /trips/{tripID}/check ---------------------------------------------

func TestCheckTrip_DefaultBuffer(t *testing.T) {
	var gotBuffer int
	items := &mockItemServicer{
		checkTrip: func(_ context.Context, tripID int64, buffer int) ([]domain.DayReport, error) {
			gotBuffer = buffer
			return []domain.DayReport{{DayID: 3, Date: "2026-05-23", Overlaps: []domain.Overlap{}, TightConnections: []domain.TightConnection{}}}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Items: items}), http.MethodGet, "/trips/7/check", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testDefaults.BufferMin, gotBuffer)
	var resp []domain.DayReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2026-05-23", resp[0].Date)
}

func TestCheckTrip_422_BadBuffer(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Items: &mockItemServicer{}}), http.MethodGet, "/trips/7/check?buffer=ten", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "buffer must be an integer", decodeError(t, rec).Error.Message)
}
