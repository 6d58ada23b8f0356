// Package export encodes trip export rows as CSV, JSON, or an XLSX workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Format names an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
)

// ParseFormat accepts "csv", "json", or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, XLSX:
		return f, nil
	}
	return "", domain.Invalidf("unknown export format %q (want csv, json, or xlsx)", s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Columns is the header row shared by CSV and XLSX output.
var Columns = []string{
	"trip_id", "trip_name", "day_id", "date",
	"item_id", "title", "category", "start", "end", "pinned",
	"estimated_cost", "actual_cost", "currency", "location", "tags", "notes",
}

// Write encodes rows to w in format f. sheet names the XLSX worksheet and
// is ignored by the other formats.
func Write(w io.Writer, f Format, sheet string, rows []domain.ExportRow) error {
	switch f {
	case CSV:
		return WriteCSV(w, rows)
	case JSON:
		return WriteJSON(w, rows)
	case XLSX:
		return WriteXLSX(w, sheet, rows)
	}
	return fmt.Errorf("export.Write: unknown format %q", f)
}

// WriteCSV writes a header row and one record per export row.
// Tags within a row are pipe-separated ("|") to keep each item on one line.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array (never null).
func WriteJSON(w io.Writer, rows []domain.ExportRow) error {
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("export.WriteJSON: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, sheet string, rows []domain.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("export.WriteXLSX: rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX: header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
		_ = f.SetCellStyle(name, "A1", last, bold)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		values := cells(r)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("export.WriteXLSX: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

// SheetName makes s usable as a worksheet name: Excel forbids []:*?/\ and
// caps names at 31 characters.
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "Itinerary"
	}
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}

// record renders a row as CSV strings; absent values become "".
func record(r domain.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.TripID, 10),
		r.TripName,
		strconv.FormatInt(r.DayID, 10),
		r.Date,
		optID(r.ItemID),
		r.Title,
		r.Category,
		optClock(r.StartMin),
		optClock(r.EndMin),
		optBool(r),
		optFloat(r.EstimatedCost),
		optFloat(r.ActualCost),
		r.Currency,
		r.Location,
		strings.Join(r.Tags, "|"),
		r.Notes,
	}
}

// cells renders a row for XLSX, keeping ids and costs numeric.
func cells(r domain.ExportRow) []any {
	out := make([]any, 0, len(Columns))
	for _, s := range record(r) {
		out = append(out, s)
	}
	out[0] = r.TripID
	out[2] = r.DayID
	out[10] = floatCell(r.EstimatedCost)
	out[11] = floatCell(r.ActualCost)
	return out
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func optClock(m *int) string {
	if m == nil {
		return ""
	}
	return domain.FormatMinutes(m)
}

func optBool(r domain.ExportRow) string {
	if r.ItemID == 0 {
		return ""
	}
	return strconv.FormatBool(r.Pinned)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
