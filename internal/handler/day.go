package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DayRequest is the body of POST /trips/{tripID}/days and PUT /days/{dayID}.
// Notes is ignored on PUT; only the date moves.
type DayRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

// ListDays handles GET /trips/{tripID}/days.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	days, err := s.days.ListByTrip(r.Context(), tripID)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// CreateDay handles POST /trips/{tripID}/days.
func (s *Server) CreateDay(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	var body DayRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "day", err)
		return
	}

	created, err := s.days.Create(r.Context(), domain.Day{TripID: tripID, Date: body.Date, Notes: body.Notes})
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetDay handles GET /days/{dayID}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	day, err := s.days.GetByID(r.Context(), id)
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// UpdateDay handles PUT /days/{dayID}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	var body DayRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "day", err)
		return
	}

	moved, err := s.days.UpdateDate(r.Context(), id, body.Date)
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	writeJSON(w, http.StatusOK, moved)
}

// DeleteDay handles DELETE /days/{dayID}.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	if err := s.days.Delete(r.Context(), id); err != nil {
		fail(w, r, "day", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckDay handles GET /days/{dayID}/check?buffer=N.
func (s *Server) CheckDay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	buffer, err := s.bufferParam(r)
	if err != nil {
		fail(w, r, "day", err)
		return
	}

	report, err := s.items.CheckDay(r.Context(), id, buffer)
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
