package schedule

import (
	"github.com/pkordes/trip-planner/internal/domain"
)

// Window is a half-open interval [Start, End) in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// WindowOf returns the item's window, or false for an unscheduled item.
func WindowOf(it domain.Item) (Window, bool) {
	if !it.Scheduled() {
		return Window{}, false
	}
	return Window{Start: *it.StartMin, End: *it.EndMin}, true
}

// Overlaps reports whether a and b intersect. Touching windows
// (a.End == b.Start) do not.
func Overlaps(a, b Window) bool {
	return a.Start < b.End && b.Start < a.End
}

// OverlapMinutes is the length of the intersection of a and b, 0 if none.
func OverlapMinutes(a, b Window) int {
	return max(0, min(a.End, b.End)-max(a.Start, b.Start))
}

// Scheduled filters items down to those with a window, keeping their order.
func Scheduled(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Scheduled() {
			out = append(out, it)
		}
	}
	return out
}
