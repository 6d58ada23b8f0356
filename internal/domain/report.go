package domain

// Overlap records two scheduled items in the same day whose half-open time
// windows intersect. ItemAID precedes ItemBID in the day's listing order.
type Overlap struct {
	ItemAID    int64 `json:"item_a_id"`
	ItemBID    int64 `json:"item_b_id"`
	OverlapMin int   `json:"overlap_min"`
}

// TightConnection warns that the gap between two time-adjacent scheduled
// items is smaller than BufferMin. GapMin is negative when they overlap.
type TightConnection struct {
	PrevItemID int64 `json:"prev_item_id"`
	NextItemID int64 `json:"next_item_id"`
	GapMin     int   `json:"gap_min"`
	BufferMin  int   `json:"buffer_min"`
}

// DayReport bundles the scheduling diagnostics for one day.
type DayReport struct {
	DayID            int64             `json:"day_id"`
	Date             string            `json:"date"`
	Overlaps         []Overlap         `json:"overlaps"`
	TightConnections []TightConnection `json:"tight_connections"`
}

// Clean reports whether the day has neither overlaps nor tight connections.
func (r DayReport) Clean() bool {
	return len(r.Overlaps) == 0 && len(r.TightConnections) == 0
}
