package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// ItemRequest is the body of POST /days/{dayID}/items.
// Omit both start_min and end_min for an unscheduled item. AllowOverlap
// overrides the server's default overlap policy for this request.
type ItemRequest struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	StartMin      *int     `json:"start_min,omitempty"`
	EndMin        *int     `json:"end_min,omitempty"`
	Pinned        bool     `json:"pinned,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Location      string   `json:"location,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	AllowOverlap  *bool    `json:"allow_overlap,omitempty"`
}

// TimeRequest is the body of PUT /items/{itemID}/time.
type TimeRequest struct {
	StartMin     *int  `json:"start_min"`
	EndMin       *int  `json:"end_min"`
	AllowOverlap *bool `json:"allow_overlap,omitempty"`
}

// rejectOverlaps resolves a per-request override against the default.
func (s *Server) rejectOverlaps(allow *bool) bool {
	if allow != nil {
		return !*allow
	}
	return s.defaults.RejectOverlaps
}

// ListItems handles GET /days/{dayID}/items, in canonical order.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	dayID, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	items, err := s.items.ListByDay(r.Context(), dayID)
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /days/{dayID}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	dayID, err := pathID(r, "dayID")
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	var body ItemRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "item", err)
		return
	}

	in := domain.NewItem{
		DayID:         dayID,
		Title:         body.Title,
		Category:      body.Category,
		StartMin:      body.StartMin,
		EndMin:        body.EndMin,
		Pinned:        body.Pinned,
		EstimatedCost: body.EstimatedCost,
		Currency:      body.Currency,
		Location:      body.Location,
		Tags:          body.Tags,
		Notes:         body.Notes,
	}
	opts := service.CreateOptions{RejectOverlaps: s.rejectOverlaps(body.AllowOverlap)}

	created, err := s.items.Create(r.Context(), in, opts)
	if err != nil {
		fail(w, r, "day", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetItem handles GET /items/{itemID}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemID")
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	item, err := s.items.GetByID(r.Context(), id)
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateItem handles PATCH /items/{itemID}. Only fields present in the body
// change; the time window is managed through /items/{itemID}/time.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemID")
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	var patch domain.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		fail(w, r, "item", err)
		return
	}

	updated, err := s.items.Update(r.Context(), id, patch)
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemID")
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	if err := s.items.Delete(r.Context(), id); err != nil {
		fail(w, r, "item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RescheduleItem handles PUT /items/{itemID}/time.
func (s *Server) RescheduleItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemID")
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	var body TimeRequest
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, "item", err)
		return
	}
	if body.StartMin == nil || body.EndMin == nil {
		fail(w, r, "item", domain.Invalidf("start_min and end_min are required; use DELETE to unschedule"))
		return
	}

	moved, err := s.items.Reschedule(r.Context(), id, *body.StartMin, *body.EndMin, s.rejectOverlaps(body.AllowOverlap))
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	writeJSON(w, http.StatusOK, moved)
}

// ClearItemTime handles DELETE /items/{itemID}/time.
func (s *Server) ClearItemTime(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemID")
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	item, err := s.items.ClearTime(r.Context(), id)
	if err != nil {
		fail(w, r, "item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
