package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/schedule"
)

// CreateOptions controls ItemService.Create.
type CreateOptions struct {
	// RejectOverlaps fails a scheduled create that overlaps any scheduled
	// sibling in the same day.
	RejectOverlaps bool
}

// ItemOption configures an ItemService.
type ItemOption func(*ItemService)

// WithMaxCost overrides domain.DefaultMaxReasonableCost for every cost the
// service validates.
func WithMaxCost(limit float64) ItemOption {
	return func(s *ItemService) { s.maxCost = limit }
}

// ItemService implements business logic for Item operations and the
// per-day scheduling diagnostics.
// It holds trips and days repos because every operation is scoped to a day,
// and trip-wide checks walk the trip's days.
type ItemService struct {
	trips   repo.TripRepo
	days    repo.DayRepo
	items   repo.ItemRepo
	maxCost float64
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(trips repo.TripRepo, days repo.DayRepo, items repo.ItemRepo, opts ...ItemOption) *ItemService {
	s := &ItemService{trips: trips, days: days, items: items, maxCost: domain.DefaultMaxReasonableCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates a new item and persists it under in.DayID.
// A scheduled item is checked against its scheduled siblings when
// opts.RejectOverlaps is set; the error names the first conflicting item.
func (s *ItemService) Create(ctx context.Context, in domain.NewItem, opts CreateOptions) (domain.Item, error) {
	if err := domain.ValidateID("day_id", in.DayID); err != nil {
		return domain.Item{}, rejected("item", err)
	}
	item := domain.Item{
		DayID:         in.DayID,
		Title:         in.Title,
		Category:      in.Category,
		StartMin:      in.StartMin,
		EndMin:        in.EndMin,
		Pinned:        in.Pinned,
		EstimatedCost: in.EstimatedCost,
		Currency:      in.Currency,
		Location:      in.Location,
		Tags:          in.Tags,
		Notes:         in.Notes,
	}
	item, err := s.normalize(item)
	if err != nil {
		return domain.Item{}, rejected("item", err)
	}
	if err := domain.ValidateTimeRange(item.StartMin, item.EndMin); err != nil {
		return domain.Item{}, rejected("item", err)
	}

	if _, err := s.days.GetByID(ctx, item.DayID); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: day: %w", err)
	}

	if item.Scheduled() && opts.RejectOverlaps {
		if err := s.checkSiblings(ctx, item.DayID, *item.StartMin, *item.EndMin, 0); err != nil {
			return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
		}
	}

	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	metrics.IncItemCreated(result.Scheduled())
	return result, nil
}

// GetByID returns a single item.
func (s *ItemService) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	if err := domain.ValidateID("item_id", id); err != nil {
		return domain.Item{}, rejected("item", err)
	}
	result, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	return result, nil
}

// ListByDay returns a day's items in canonical order (see schedule.Compare).
// Returns domain.ErrNotFound if the day does not exist.
func (s *ItemService) ListByDay(ctx context.Context, dayID int64) ([]domain.Item, error) {
	if err := domain.ValidateID("day_id", dayID); err != nil {
		return nil, rejected("item", err)
	}
	if _, err := s.days.GetByID(ctx, dayID); err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByDay: day: %w", err)
	}
	items, err := s.listSorted(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByDay: %w", err)
	}
	return items, nil
}

// Update applies a partial update to an item's descriptive fields.
// Every supplied field is validated before anything is written, so a bad
// field leaves the item untouched.
func (s *ItemService) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	if err := domain.ValidateID("item_id", id); err != nil {
		return domain.Item{}, rejected("item", err)
	}
	if patch.Empty() {
		return domain.Item{}, rejected("item", domain.Invalidf("nothing to update"))
	}

	current, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}

	next, err := s.normalize(patch.Apply(current))
	if err != nil {
		return domain.Item{}, rejected("item", err)
	}

	result, err := s.items.Update(ctx, next)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	return result, nil
}

// Reschedule gives an item a new window. The overlap scan skips the item
// itself, so moving an item within its own old slot is allowed.
func (s *ItemService) Reschedule(ctx context.Context, id int64, start, end int, rejectOverlaps bool) (domain.Item, error) {
	if err := domain.ValidateID("item_id", id); err != nil {
		return domain.Item{}, rejected("item", err)
	}
	if err := domain.ValidateTimeRange(&start, &end); err != nil {
		return domain.Item{}, rejected("item", err)
	}

	current, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Reschedule: %w", err)
	}

	if rejectOverlaps {
		if err := s.checkSiblings(ctx, current.DayID, start, end, id); err != nil {
			return domain.Item{}, fmt.Errorf("service.ItemService.Reschedule: %w", err)
		}
	}

	result, err := s.items.SetTime(ctx, id, &start, &end)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Reschedule: %w", err)
	}
	return result, nil
}

// ClearTime turns an item back into an unscheduled one.
func (s *ItemService) ClearTime(ctx context.Context, id int64) (domain.Item, error) {
	if err := domain.ValidateID("item_id", id); err != nil {
		return domain.Item{}, rejected("item", err)
	}
	result, err := s.items.SetTime(ctx, id, nil, nil)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.ClearTime: %w", err)
	}
	return result, nil
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := domain.ValidateID("item_id", id); err != nil {
		return rejected("item", err)
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}

// Overlaps reports every overlapping pair of scheduled items in a day.
// Returns domain.ErrNotFound if the day does not exist.
func (s *ItemService) Overlaps(ctx context.Context, dayID int64) ([]domain.Overlap, error) {
	if err := domain.ValidateID("day_id", dayID); err != nil {
		return nil, rejected("item", err)
	}
	if _, err := s.days.GetByID(ctx, dayID); err != nil {
		return nil, fmt.Errorf("service.ItemService.Overlaps: day: %w", err)
	}
	items, err := s.listSorted(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.Overlaps: %w", err)
	}
	return schedule.ReportOverlaps(items), nil
}

// TightConnections reports consecutive scheduled items in a day whose gap
// is below bufferMin. Returns domain.ErrNotFound if the day does not exist.
func (s *ItemService) TightConnections(ctx context.Context, dayID int64, bufferMin int) ([]domain.TightConnection, error) {
	if err := validateCheckArgs(dayID, bufferMin); err != nil {
		return nil, rejected("item", err)
	}
	if _, err := s.days.GetByID(ctx, dayID); err != nil {
		return nil, fmt.Errorf("service.ItemService.TightConnections: day: %w", err)
	}
	items, err := s.listSorted(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.TightConnections: %w", err)
	}
	return schedule.ReportTightConnections(items, bufferMin)
}

// CheckDay runs both diagnostics for one day.
// Returns domain.ErrNotFound if the day does not exist.
func (s *ItemService) CheckDay(ctx context.Context, dayID int64, bufferMin int) (domain.DayReport, error) {
	if err := validateCheckArgs(dayID, bufferMin); err != nil {
		return domain.DayReport{}, rejected("item", err)
	}
	day, err := s.days.GetByID(ctx, dayID)
	if err != nil {
		return domain.DayReport{}, fmt.Errorf("service.ItemService.CheckDay: day: %w", err)
	}
	return s.report(ctx, day, bufferMin)
}

// CheckTrip runs both diagnostics for every day of a trip, in date order.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItemService) CheckTrip(ctx context.Context, tripID int64, bufferMin int) ([]domain.DayReport, error) {
	if err := domain.ValidateID("trip_id", tripID); err != nil {
		return nil, rejected("item", err)
	}
	if bufferMin < 0 {
		return nil, rejected("item", domain.Invalidf("buffer_min must be an integer >= 0"))
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ItemService.CheckTrip: trip: %w", err)
	}
	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.CheckTrip: %w", err)
	}

	reports := make([]domain.DayReport, 0, len(days))
	for _, day := range days {
		rep, err := s.report(ctx, day, bufferMin)
		if err != nil {
			return nil, fmt.Errorf("service.ItemService.CheckTrip: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (s *ItemService) report(ctx context.Context, day domain.Day, bufferMin int) (domain.DayReport, error) {
	items, err := s.listSorted(ctx, day.ID)
	if err != nil {
		return domain.DayReport{}, err
	}
	return schedule.Report(day, items, bufferMin)
}

// listSorted fetches a day's items and puts them in canonical order.
func (s *ItemService) listSorted(ctx context.Context, dayID int64) ([]domain.Item, error) {
	items, err := s.items.ListByDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	schedule.Sort(items)
	return items, nil
}

// checkSiblings fails when [start, end) overlaps a scheduled item already
// in the day, other than ignoreID.
func (s *ItemService) checkSiblings(ctx context.Context, dayID int64, start, end int, ignoreID int64) error {
	siblings, err := s.listSorted(ctx, dayID)
	if err != nil {
		return err
	}
	opts := schedule.InsertOptions{RejectOverlaps: true, IgnoreID: ignoreID}
	if err := schedule.CheckInsert(start, end, siblings, opts); err != nil {
		metrics.IncOverlapRejection()
		slog.DebugContext(ctx, "overlapping item rejected",
			"day_id", dayID,
			"start_min", start,
			"end_min", end,
			"reason", domain.ValidationMessage(err),
		)
		return rejected("item", err)
	}
	return nil
}

// normalize trims and validates the descriptive fields shared by Create
// and Update. It does not look at the window.
func (s *ItemService) normalize(it domain.Item) (domain.Item, error) {
	var err error
	if it.Title, err = domain.RequireText("title", it.Title); err != nil {
		return domain.Item{}, err
	}
	if it.Category, err = domain.RequireText("category", it.Category); err != nil {
		return domain.Item{}, err
	}
	if err := domain.ValidateCost(it.EstimatedCost, domain.WithMaxReasonable(s.maxCost)); err != nil {
		return domain.Item{}, err
	}
	if err := domain.ValidateCost(it.ActualCost, domain.WithMaxReasonable(s.maxCost)); err != nil {
		return domain.Item{}, err
	}

	it.Tags = domain.NormalizeTags(it.Tags)
	for _, tag := range it.Tags {
		if strings.ContainsAny(tag, ",|") {
			return domain.Item{}, domain.Invalidf("tag %q must not contain ',' or '|'", tag)
		}
	}

	it.Currency = strings.ToUpper(strings.TrimSpace(it.Currency))
	it.Location = strings.TrimSpace(it.Location)
	it.Notes = strings.TrimSpace(it.Notes)
	return it, nil
}

func validateCheckArgs(dayID int64, bufferMin int) error {
	if err := domain.ValidateID("day_id", dayID); err != nil {
		return err
	}
	if bufferMin < 0 {
		return domain.Invalidf("buffer_min must be an integer >= 0")
	}
	return nil
}
