package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/pkordes/trip-planner/internal/domain"
)

// fatih/color disables itself when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// userError is an error whose message is meant for the person at the
// terminal. It still unwraps to the service error.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// explain turns a service error into the message printed after "error: ".
// Validation failures show their reason; a missing record names entity.
func explain(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation):
		return &userError{msg: domain.ValidationMessage(err), err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &userError{msg: entity + " not found", err: err}
	}
	return err
}

// PrintError writes the final "error: ..." line for a failed command.
func PrintError(w io.Writer, err error) {
	_, _ = errorColor.Fprint(w, "error:")
	_, _ = fmt.Fprintf(w, " %v\n", err)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable aligns rows under a coloured header.
func printTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, headerColor.Sprint(h))
	}
	_, _ = fmt.Fprintln(tw)
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func tripRows(trips []domain.Trip) [][]string {
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Name, t.CreatedAt.Format("2006-01-02")})
	}
	return rows
}

func dayRows(days []domain.Day) [][]string {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{strconv.FormatInt(d.ID, 10), d.Date, d.Notes})
	}
	return rows
}

var itemHeaders = []string{"ID", "TIME", "TITLE", "CATEGORY", "PIN", "COST", "TAGS"}

func itemRows(items []domain.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		pin := ""
		if it.Pinned {
			pin = "*"
		}
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			domain.FormatRange(it.StartMin, it.EndMin),
			it.Title,
			it.Category,
			pin,
			formatCost(it.EstimatedCost, it.ActualCost, it.Currency),
			strings.Join(it.Tags, ","),
		})
	}
	return rows
}

// formatCost shows "est/actual CUR", leaving out whichever is unset.
func formatCost(est, actual *float64, currency string) string {
	var parts []string
	if est != nil {
		parts = append(parts, strconv.FormatFloat(*est, 'f', 2, 64))
	}
	if actual != nil {
		parts = append(parts, "actual "+strconv.FormatFloat(*actual, 'f', 2, 64))
	}
	if len(parts) == 0 {
		return ""
	}
	s := strings.Join(parts, " / ")
	if currency != "" {
		s += " " + currency
	}
	return s
}

// printItem writes one item as label/value lines.
func printItem(w io.Writer, it domain.Item) {
	field := func(label, value string) {
		if value == "" {
			return
		}
		_, _ = dimColor.Fprintf(w, "%-10s", label)
		_, _ = fmt.Fprintln(w, value)
	}
	field("id", strconv.FormatInt(it.ID, 10))
	field("day", strconv.FormatInt(it.DayID, 10))
	field("title", it.Title)
	field("category", it.Category)
	field("time", domain.FormatRange(it.StartMin, it.EndMin))
	field("pinned", strconv.FormatBool(it.Pinned))
	field("cost", formatCost(it.EstimatedCost, it.ActualCost, it.Currency))
	field("location", it.Location)
	field("tags", strings.Join(it.Tags, ", "))
	field("notes", it.Notes)
}

// printReport writes one day's diagnostics; a clean day is one green line.
func printReport(w io.Writer, r domain.DayReport) {
	if r.Clean() {
		printSuccess(w, fmt.Sprintf("%s (day %d): no conflicts", r.Date, r.DayID))
		return
	}
	_, _ = headerColor.Fprintf(w, "%s (day %d)\n", r.Date, r.DayID)
	for _, o := range r.Overlaps {
		_, _ = errorColor.Fprintf(w, "  ✗ overlap: item %d and item %d share %d min\n", o.ItemAID, o.ItemBID, o.OverlapMin)
	}
	for _, tc := range r.TightConnections {
		_, _ = warningColor.Fprintf(w, "  ⚠ tight connection: item %d → item %d has %d min (buffer %d)\n",
			tc.PrevItemID, tc.NextItemID, tc.GapMin, tc.BufferMin)
	}
}
