package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the upper bound for StartMin/EndMin. An EndMin of 1440
// means "until midnight".
const MinutesPerDay = 1440

// DefaultMaxReasonableCost is the ValidateCost threshold unless overridden.
const DefaultMaxReasonableCost = 1_000_000.0

// ValidateTimeRange checks a scheduling window in minutes since midnight.
// Both nil is an unscheduled item and passes. Otherwise both must be set,
// lie in [0, 1440], and satisfy start < end.
func ValidateTimeRange(start, end *int) error {
	if (start == nil) != (end == nil) {
		return Invalidf("start_min and end_min must be both set or both absent")
	}
	if start == nil {
		return nil
	}
	if *start < 0 || *start > MinutesPerDay {
		return Invalidf("start_min must be between 0 and %d", MinutesPerDay)
	}
	if *end < 0 || *end > MinutesPerDay {
		return Invalidf("end_min must be between 0 and %d", MinutesPerDay)
	}
	if *start >= *end {
		return Invalidf("start_min must be strictly less than end_min")
	}
	return nil
}

// CostOption adjusts a single ValidateCost call.
type CostOption func(*costRules)

type costRules struct {
	maxReasonable float64
}

// WithMaxReasonable overrides DefaultMaxReasonableCost for one call.
func WithMaxReasonable(limit float64) CostOption {
	return func(r *costRules) { r.maxReasonable = limit }
}

// ValidateCost checks a monetary amount. Nil (unknown) passes; NaN, infinite,
// negative and above-maximum values fail.
func ValidateCost(value *float64, opts ...CostOption) error {
	rules := costRules{maxReasonable: DefaultMaxReasonableCost}
	for _, opt := range opts {
		opt(&rules)
	}
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return Invalidf("cost must be a number")
	}
	if *value < 0 {
		return Invalidf("cost must not be negative")
	}
	if *value > rules.maxReasonable {
		return Invalidf("cost is unusually large (>%s)", strconv.FormatFloat(rules.maxReasonable, 'f', -1, 64))
	}
	return nil
}

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// ValidateDateString accepts only zero-padded "YYYY-MM-DD" strings that name
// a real Gregorian date.
func ValidateDateString(s string) error {
	if !dateShape.MatchString(s) {
		return Invalidf("date must be in YYYY-MM-DD format")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Year() < 1 {
		return Invalidf("invalid date: %s", s)
	}
	return nil
}

// RequireText trims value and rejects it when nothing is left.
// field names the input in the error message ("title", "trip name").
func RequireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", Invalidf("%s must not be blank", field)
	}
	return v, nil
}

// ValidateID rejects non-positive identifiers.
func ValidateID(field string, id int64) error {
	if id <= 0 {
		return Invalidf("%s must be a positive integer", field)
	}
	return nil
}

// NormalizeTags trims every tag and drops the blank ones.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
