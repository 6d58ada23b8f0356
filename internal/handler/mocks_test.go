package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/service"
)

// ---- mocks -----------------------------------------------------------------
// Each mock exposes one function field per method. Set only the fields a test
// needs; calling an unset one panics, which flags an unexpected call.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id int64) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	rename    func(ctx context.Context, id int64, name string) (domain.Trip, error)
	delete    func(ctx context.Context, id int64) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Rename(ctx context.Context, id int64, name string) (domain.Trip, error) {
	return m.rename(ctx, id, name)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockDayServicer struct {
	create     func(ctx context.Context, day domain.Day) (domain.Day, error)
	getByID    func(ctx context.Context, id int64) (domain.Day, error)
	listByTrip func(ctx context.Context, tripID int64) ([]domain.Day, error)
	updateDate func(ctx context.Context, id int64, date string) (domain.Day, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockDayServicer) Create(ctx context.Context, d domain.Day) (domain.Day, error) {
	return m.create(ctx, d)
}
func (m *mockDayServicer) GetByID(ctx context.Context, id int64) (domain.Day, error) {
	return m.getByID(ctx, id)
}
func (m *mockDayServicer) ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDayServicer) UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error) {
	return m.updateDate(ctx, id, date)
}
func (m *mockDayServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockItemServicer struct {
	create     func(ctx context.Context, in domain.NewItem, opts service.CreateOptions) (domain.Item, error)
	getByID    func(ctx context.Context, id int64) (domain.Item, error)
	listByDay  func(ctx context.Context, dayID int64) ([]domain.Item, error)
	update     func(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error)
	reschedule func(ctx context.Context, id int64, start, end int, rejectOverlaps bool) (domain.Item, error)
	clearTime  func(ctx context.Context, id int64) (domain.Item, error)
	delete     func(ctx context.Context, id int64) error
	checkDay   func(ctx context.Context, dayID int64, bufferMin int) (domain.DayReport, error)
	checkTrip  func(ctx context.Context, tripID int64, bufferMin int) ([]domain.DayReport, error)
}

func (m *mockItemServicer) Create(ctx context.Context, in domain.NewItem, opts service.CreateOptions) (domain.Item, error) {
	return m.create(ctx, in, opts)
}
func (m *mockItemServicer) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemServicer) ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockItemServicer) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	return m.update(ctx, id, patch)
}
func (m *mockItemServicer) Reschedule(ctx context.Context, id int64, start, end int, rejectOverlaps bool) (domain.Item, error) {
	return m.reschedule(ctx, id, start, end, rejectOverlaps)
}
func (m *mockItemServicer) ClearTime(ctx context.Context, id int64) (domain.Item, error) {
	return m.clearTime(ctx, id)
}
func (m *mockItemServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockItemServicer) CheckDay(ctx context.Context, dayID int64, bufferMin int) (domain.DayReport, error) {
	return m.checkDay(ctx, dayID, bufferMin)
}
func (m *mockItemServicer) CheckTrip(ctx context.Context, tripID int64, bufferMin int) ([]domain.DayReport, error) {
	return m.checkTrip(ctx, tripID, bufferMin)
}

type mockExporter struct {
	export func(ctx context.Context, tripID int64) (domain.Trip, []domain.ExportRow, error)
}

func (m *mockExporter) Export(ctx context.Context, tripID int64) (domain.Trip, []domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer = (*mockTripServicer)(nil)
	_ handler.DayServicer  = (*mockDayServicer)(nil)
	_ handler.ItemServicer = (*mockItemServicer)(nil)
	_ handler.Exporter     = (*mockExporter)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testDefaults mirrors the configuration defaults.
var testDefaults = handler.Defaults{BufferMin: 15, RejectOverlaps: true}

// newHTTPHandler wires a Server the same way the serve command does, minus
// the middleware stack.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Defaults == (handler.Defaults{}) {
		d.Defaults = testDefaults
	}
	return handler.NewServer(d).Routes()
}

// do sends one request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError reads an ErrorResponse body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func ptr[T any](v T) *T { return &v }

func tripFixture() domain.Trip {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Trip{ID: 7, Name: "Italy", CreatedAt: now, UpdatedAt: now}
}

func dayFixture() domain.Day {
	return domain.Day{ID: 3, TripID: 7, Date: "2026-05-23", Notes: "Rome"}
}

func itemFixture() domain.Item {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Item{
		ID: 11, DayID: 3, Title: "Colosseum", Category: "sight",
		StartMin: ptr(540), EndMin: ptr(660),
		Tags: []string{"history"}, CreatedAt: now, UpdatedAt: now,
	}
}
