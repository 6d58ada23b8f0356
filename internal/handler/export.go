package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/internal/export"
)

// ExportTrip handles GET /trips/{tripID}/export?format=json|csv|xlsx.
// The default format is JSON; CSV and XLSX are sent as attachments.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		fail(w, r, "trip", err)
		return
	}
	format := export.JSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		if format, err = export.ParseFormat(raw); err != nil {
			fail(w, r, "trip", err)
			return
		}
	}

	trip, rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		fail(w, r, "trip", err)
		return
	}

	// Encode into a buffer so an encoder failure can still become a 500.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, trip.Name, rows); err != nil {
		fail(w, r, "trip", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if format != export.JSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%d.%s"`, trip.ID, format))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
