package schedule

import (
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultBufferMin is the minimum comfortable gap between two scheduled
// items unless the caller asks for another.
const DefaultBufferMin = 15

// InsertOptions controls CheckInsert.
type InsertOptions struct {
	// RejectOverlaps turns the sibling scan on. When false only the window
	// itself is validated.
	RejectOverlaps bool

	// IgnoreID excludes one existing item from the scan; set it to the id
	// of the item being rescheduled so it cannot conflict with itself.
	IgnoreID int64
}

// FindConflict returns the first scheduled item in siblings whose window
// overlaps w. Siblings are scanned in the order given.
func FindConflict(w Window, siblings []domain.Item, ignoreID int64) (domain.Item, bool) {
	for _, it := range siblings {
		if ignoreID != 0 && it.ID == ignoreID {
			continue
		}
		iw, ok := WindowOf(it)
		if !ok {
			continue
		}
		if Overlaps(w, iw) {
			return it, true
		}
	}
	return domain.Item{}, false
}

// CheckInsert decides whether a window may be placed into a day that already
// holds siblings. It validates the window, then, if opts.RejectOverlaps is
// set, fails on the first sibling it overlaps, naming that item and its
// window in the error.
func CheckInsert(start, end int, siblings []domain.Item, opts InsertOptions) error {
	if err := domain.ValidateTimeRange(&start, &end); err != nil {
		return err
	}
	if !opts.RejectOverlaps {
		return nil
	}
	if hit, ok := FindConflict(Window{Start: start, End: end}, siblings, opts.IgnoreID); ok {
		return domain.Invalidf("scheduled item overlaps existing item id=%d (%d–%d)",
			hit.ID, *hit.StartMin, *hit.EndMin)
	}
	return nil
}

// ReportOverlaps lists every pair of scheduled items whose windows overlap.
// Pairs are (A, B) with A before B in the order items were given, so pass
// the day's listing order. The result is never nil.
func ReportOverlaps(items []domain.Item) []domain.Overlap {
	scheduled := Scheduled(items)
	out := []domain.Overlap{}
	for i, a := range scheduled {
		aw, _ := WindowOf(a)
		for _, b := range scheduled[i+1:] {
			bw, _ := WindowOf(b)
			if !Overlaps(aw, bw) {
				continue
			}
			out = append(out, domain.Overlap{
				ItemAID:    a.ID,
				ItemBID:    b.ID,
				OverlapMin: OverlapMinutes(aw, bw),
			})
		}
	}
	return out
}

// ReportTightConnections sorts the scheduled items by (start, end, id) and
// warns about each consecutive pair whose gap is below bufferMin. Overlapping
// neighbours show up here too, with a negative gap. The result is never nil.
func ReportTightConnections(items []domain.Item, bufferMin int) ([]domain.TightConnection, error) {
	if bufferMin < 0 {
		return nil, domain.Invalidf("buffer_min must be an integer >= 0")
	}

	scheduled := Scheduled(items)
	slices.SortFunc(scheduled, byTime)

	out := []domain.TightConnection{}
	for i := 1; i < len(scheduled); i++ {
		prev, next := scheduled[i-1], scheduled[i]
		gap := *next.StartMin - *prev.EndMin
		if gap < bufferMin {
			out = append(out, domain.TightConnection{
				PrevItemID: prev.ID,
				NextItemID: next.ID,
				GapMin:     gap,
				BufferMin:  bufferMin,
			})
		}
	}
	return out, nil
}

// Report runs both diagnostics for one day.
func Report(day domain.Day, items []domain.Item, bufferMin int) (domain.DayReport, error) {
	tight, err := ReportTightConnections(items, bufferMin)
	if err != nil {
		return domain.DayReport{}, err
	}
	return domain.DayReport{
		DayID:            day.ID,
		Date:             day.Date,
		Overlaps:         ReportOverlaps(items),
		TightConnections: tight,
	}, nil
}
