package domain

// ExportRow is a single row in a trip export.
// It is a flat, denormalized view: one row per item, with trip and day fields
// repeated for every item on that day. Days with no items yield one row with
// zero values for all item fields.
//
// Tags is the item's tag list in stored order.
// Callers that need a joined string (e.g. CSV) should join with "|".
type ExportRow struct {
	// Trip and day fields, repeated for every item on the day.
	TripID   int64  `json:"trip_id"`
	TripName string `json:"trip_name"`
	DayID    int64  `json:"day_id"`
	Date     string `json:"date"`

	// Item fields, zero values when the day has no items.
	ItemID        int64    `json:"item_id,omitempty"`
	Title         string   `json:"title,omitempty"`
	Category      string   `json:"category,omitempty"`
	StartMin      *int     `json:"start_min,omitempty"`
	EndMin        *int     `json:"end_min,omitempty"`
	Pinned        bool     `json:"pinned,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Location      string   `json:"location,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}
