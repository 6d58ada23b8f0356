// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies and is imported by every other
// internal package (schedule, repo, service, handler, cli).
package domain

import "time"

// Trip is the top-level container for a travel plan.
// Deleting a trip removes its days and, transitively, their items.
type Trip struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Day is a single calendar date within a trip.
// Date is always an ISO "YYYY-MM-DD" string that denotes a real date.
type Day struct {
	ID     int64  `json:"id"`
	TripID int64  `json:"trip_id"`
	Date   string `json:"date"`
	Notes  string `json:"notes,omitempty"`
}
