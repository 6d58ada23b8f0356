package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinutes reads a time of day as either "HH:MM" (24-hour, "24:00"
// allowed) or a bare integer count of minutes since midnight.
// Fractional, signed, or otherwise malformed values are validation errors;
// range checking is left to ValidateTimeRange.
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Invalidf("time must not be blank")
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err := parseDigits(h, 2)
		if err != nil {
			return 0, Invalidf("time %q must be HH:MM or whole minutes", s)
		}
		mins, err := parseDigits(m, 2)
		if err != nil || len(m) != 2 || mins > 59 {
			return 0, Invalidf("time %q must be HH:MM or whole minutes", s)
		}
		return hours*60 + mins, nil
	}

	n, err := parseDigits(s, 4)
	if err != nil {
		return 0, Invalidf("time %q must be HH:MM or whole minutes", s)
	}
	return n, nil
}

// parseDigits accepts 1..maxLen ASCII digits and nothing else.
func parseDigits(s string, maxLen int) (int, error) {
	if s == "" || len(s) > maxLen {
		return 0, fmt.Errorf("bad length")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

// FormatMinutes renders minutes since midnight as "HH:MM"; nil renders as "—".
func FormatMinutes(m *int) string {
	if m == nil {
		return "—"
	}
	if *m < 0 {
		return strconv.Itoa(*m)
	}
	return fmt.Sprintf("%02d:%02d", *m/60, *m%60)
}

// FormatRange renders an item's window for display.
func FormatRange(start, end *int) string {
	switch {
	case start == nil && end == nil:
		return "UNSCHEDULED"
	case start == nil || end == nil:
		return "INVALID"
	}
	return FormatMinutes(start) + "–" + FormatMinutes(end)
}
