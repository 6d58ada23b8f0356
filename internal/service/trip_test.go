package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func echoTripRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back, useful for tests
	// that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = 1
			return t, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_TrimsName(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Create(context.Background(), domain.Trip{Name: "  Italy Adventure  "})

	require.NoError(t, err)
	assert.Equal(t, "Italy Adventure", got.Name)
	assert.EqualValues(t, 1, got.ID)
}

func TestTripService_Create_BlankName(t *testing.T) {
	r := &mockTripRepo{
		create: func(context.Context, domain.Trip) (domain.Trip, error) {
			t.Fatal("repo must not be called for invalid input")
			return domain.Trip{}, nil
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), domain.Trip{Name: " \t "})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "trip name must not be blank", domain.ValidationMessage(err))
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, repoErr },
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), domain.Trip{Name: "x"})

	// The service should propagate repo errors, wrapped.
	assert.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

// ---- GetByID / List --------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(context.Context, int64) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_GetByID_RejectsNonPositiveID(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{})

	_, err := svc.GetByID(context.Background(), 0)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "trip_id must be a positive integer", domain.ValidationMessage(err))
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		list: func(context.Context) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	// Should return an empty slice, not nil; callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_ListPaged_PassesParams(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return nil, 42, nil
		},
	}
	svc := service.NewTripService(r)

	trips, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 3, Limit: 5})

	require.NoError(t, err)
	assert.EqualValues(t, 42, total)
	assert.NotNil(t, trips)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 5}, gotParams)
}

// ---- Rename / Delete -------------------------------------------------------

func TestTripService_Rename(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Rename(context.Background(), 4, " Japan ")

	require.NoError(t, err)
	assert.EqualValues(t, 4, got.ID)
	assert.Equal(t, "Japan", got.Name)
}

func TestTripService_Rename_Blank(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{})

	_, err := svc.Rename(context.Background(), 4, "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Rename_NotFound(t *testing.T) {
	r := &mockTripRepo{
		update: func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	_, err := svc.Rename(context.Background(), 4, "x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Delete(t *testing.T) {
	var deleted int64
	r := &mockTripRepo{
		delete: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := service.NewTripService(r)

	require.NoError(t, svc.Delete(context.Background(), 9))
	assert.EqualValues(t, 9, deleted)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(context.Context, int64) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
