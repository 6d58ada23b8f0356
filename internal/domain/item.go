package domain

import "time"

// Item is a single activity within a day.
// StartMin and EndMin are minutes since local midnight; both are nil for an
// unscheduled (all-day) item, or both are set with StartMin < EndMin.
type Item struct {
	ID            int64     `json:"id"`
	DayID         int64     `json:"day_id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	StartMin      *int      `json:"start_min"`
	EndMin        *int      `json:"end_min"`
	Pinned        bool      `json:"pinned"`
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`
	ActualCost    *float64  `json:"actual_cost,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Location      string    `json:"location,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Scheduled reports whether the item has a time window.
func (it Item) Scheduled() bool {
	return it.StartMin != nil && it.EndMin != nil
}

// NewItem is the input to ItemService.Create.
// Leave StartMin and EndMin nil to create an unscheduled item.
type NewItem struct {
	DayID         int64
	Title         string
	Category      string
	StartMin      *int
	EndMin        *int
	Pinned        bool
	EstimatedCost *float64
	Currency      string
	Location      string
	Tags          []string
	Notes         string
}

// ItemPatch is a partial update of an item's descriptive fields.
// Nil fields are left untouched. Time windows are changed through
// ItemService.Reschedule and ItemService.ClearTime, never through a patch.
type ItemPatch struct {
	Title         *string   `json:"title,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Pinned        *bool     `json:"pinned,omitempty"`
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`
	ActualCost    *float64  `json:"actual_cost,omitempty"`
	Currency      *string   `json:"currency,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.Pinned == nil &&
		p.EstimatedCost == nil && p.ActualCost == nil && p.Currency == nil &&
		p.Location == nil && p.Tags == nil && p.Notes == nil
}

// Apply returns a copy of it with every non-nil patch field written over it.
func (p ItemPatch) Apply(it Item) Item {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Pinned != nil {
		it.Pinned = *p.Pinned
	}
	if p.EstimatedCost != nil {
		v := *p.EstimatedCost
		it.EstimatedCost = &v
	}
	if p.ActualCost != nil {
		v := *p.ActualCost
		it.ActualCost = &v
	}
	if p.Currency != nil {
		it.Currency = *p.Currency
	}
	if p.Location != nil {
		it.Location = *p.Location
	}
	if p.Tags != nil {
		it.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	return it
}
