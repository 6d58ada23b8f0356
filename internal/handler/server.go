// Package handler implements the HTTP API for the trip planner.
// All handlers are methods on Server. They decode the request, call one
// service operation, and encode the result; no business logic lives here.
// Methods are split into resource files (trip.go, day.go, item.go, ...) but
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id int64) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Rename(ctx context.Context, id int64, name string) (domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

// DayServicer defines the day operations the handlers depend on.
type DayServicer interface {
	Create(ctx context.Context, day domain.Day) (domain.Day, error)
	GetByID(ctx context.Context, id int64) (domain.Day, error)
	ListByTrip(ctx context.Context, tripID int64) ([]domain.Day, error)
	UpdateDate(ctx context.Context, id int64, date string) (domain.Day, error)
	Delete(ctx context.Context, id int64) error
}

// ItemServicer defines the item and scheduling operations the handlers depend on.
type ItemServicer interface {
	Create(ctx context.Context, in domain.NewItem, opts service.CreateOptions) (domain.Item, error)
	GetByID(ctx context.Context, id int64) (domain.Item, error)
	ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error)
	Reschedule(ctx context.Context, id int64, start, end int, rejectOverlaps bool) (domain.Item, error)
	ClearTime(ctx context.Context, id int64) (domain.Item, error)
	Delete(ctx context.Context, id int64) error
	CheckDay(ctx context.Context, dayID int64, bufferMin int) (domain.DayReport, error)
	CheckTrip(ctx context.Context, tripID int64, bufferMin int) ([]domain.DayReport, error)
}

// Exporter builds the flat export of one trip.
type Exporter interface {
	Export(ctx context.Context, tripID int64) (domain.Trip, []domain.ExportRow, error)
}

// Defaults are the scheduling settings applied when a request leaves them out.
type Defaults struct {
	BufferMin      int
	RejectOverlaps bool
}

// Deps groups the Server's collaborators. Ping is optional; when set,
// /healthz reports 503 if it fails.
type Deps struct {
	Trips    TripServicer
	Days     DayServicer
	Items    ItemServicer
	Export   Exporter
	Ping     func(ctx context.Context) error
	Defaults Defaults
}

// Server serves every API endpoint.
type Server struct {
	trips    TripServicer
	days     DayServicer
	items    ItemServicer
	export   Exporter
	ping     func(ctx context.Context) error
	defaults Defaults
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:    d.Trips,
		days:     d.Days,
		items:    d.Items,
		export:   d.Export,
		ping:     d.Ping,
		defaults: d.Defaults,
	}
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware (logging, CORS, limits) is added by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/days", s.ListDays)
			r.Post("/days", s.CreateDay)
			r.Get("/check", s.CheckTrip)
			r.Get("/export", s.ExportTrip)
		})
	})

	r.Route("/days/{dayID}", func(r chi.Router) {
		r.Get("/", s.GetDay)
		r.Put("/", s.UpdateDay)
		r.Delete("/", s.DeleteDay)
		r.Get("/items", s.ListItems)
		r.Post("/items", s.CreateItem)
		r.Get("/check", s.CheckDay)
	})

	r.Route("/items/{itemID}", func(r chi.Router) {
		r.Get("/", s.GetItem)
		r.Patch("/", s.UpdateItem)
		r.Delete("/", s.DeleteItem)
		r.Put("/time", s.RescheduleItem)
		r.Delete("/time", s.ClearItemTime)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	return r
}
