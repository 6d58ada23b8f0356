package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{tripID}.
type TripRequest struct {
	Name string `json:"name"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "trip", err)
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{Name: body.Name})
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, TripList{
		Data:       trips,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}; only the name is mutable.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "trip", err)
		return
	}

	updated, err := s.trips.Rename(r.Context(), id, body.Name)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		fail(w, r, "trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckTrip handles GET /trips/{tripID}/check?buffer=N.
func (s *Server) CheckTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	buffer, err := s.bufferParam(r)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}

	reports, err := s.items.CheckTrip(r.Context(), id, buffer)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
