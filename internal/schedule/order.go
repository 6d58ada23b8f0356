package schedule

import (
	"cmp"
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Compare is the canonical listing order for a day's items:
//
//  1. scheduled items by start, then end, then id;
//  2. unscheduled items after them, pinned first, then by title, then id.
//
// Repositories return rows in id order and callers sort with this, so the
// order never depends on the storage engine.
func Compare(a, b domain.Item) int {
	aw, aok := WindowOf(a)
	bw, bok := WindowOf(b)

	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok:
		return cmp.Or(
			cmp.Compare(aw.Start, bw.Start),
			cmp.Compare(aw.End, bw.End),
			cmp.Compare(a.ID, b.ID),
		)
	}

	return cmp.Or(
		comparePinned(a.Pinned, b.Pinned),
		cmp.Compare(a.Title, b.Title),
		cmp.Compare(a.ID, b.ID),
	)
}

// comparePinned orders pinned before unpinned.
func comparePinned(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// Sort orders items in place by Compare.
func Sort(items []domain.Item) {
	slices.SortStableFunc(items, Compare)
}

// byTime orders scheduled items by (start, end, id); used for the
// tight-connection sweep.
func byTime(a, b domain.Item) int {
	return cmp.Or(
		cmp.Compare(*a.StartMin, *b.StartMin),
		cmp.Compare(*a.EndMin, *b.EndMin),
		cmp.Compare(a.ID, b.ID),
	)
}
