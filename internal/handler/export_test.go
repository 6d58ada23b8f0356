package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

func exportFixture() *mockExporter {
	return &mockExporter{
		export: func(_ context.Context, tripID int64) (domain.Trip, []domain.ExportRow, error) {
			trip := tripFixture()
			return trip, []domain.ExportRow{
				{
					TripID: trip.ID, TripName: trip.Name, DayID: 3, Date: "2026-05-23",
					ItemID: 11, Title: "Colosseum", Category: "sight",
					StartMin: ptr(540), EndMin: ptr(660), Tags: []string{"history", "rome"},
				},
				{TripID: trip.ID, TripName: trip.Name, DayID: 4, Date: "2026-05-24"},
			}, nil
		},
	}
}

func TestExportTrip_DefaultJSON(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Export: exportFixture()}), http.MethodGet, "/trips/7/export", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	var rows []domain.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Colosseum", rows[0].Title)
	assert.Zero(t, rows[1].ItemID)
}

func TestExportTrip_CSV(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Export: exportFixture()}), http.MethodGet, "/trips/7/export?format=csv", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trip-7.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "trip_id,trip_name,day_id,date"))
	assert.Contains(t, lines[1], "09:00,11:00")
	assert.Contains(t, lines[1], "history|rome")
}

func TestExportTrip_XLSX(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Export: exportFixture()}), http.MethodGet, "/trips/7/export?format=XLSX", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="trip-7.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Italy")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Colosseum", rows[1][5])
}

func TestExportTrip_422_UnknownFormat(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Export: &mockExporter{}}), http.MethodGet, "/trips/7/export?format=pdf", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "unknown export format")
}

func TestExportTrip_404(t *testing.T) {
	exp := &mockExporter{
		export: func(_ context.Context, _ int64) (domain.Trip, []domain.ExportRow, error) {
			return domain.Trip{}, nil, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Export: exp}), http.MethodGet, "/trips/7/export", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trip not found", decodeError(t, rec).Error.Message)
}
