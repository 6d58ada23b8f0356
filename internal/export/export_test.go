package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/export"
)

func ptr[T any](v T) *T { return &v }

func sampleRows() []domain.ExportRow {
	return []domain.ExportRow{
		{
			TripID: 1, TripName: "Italy", DayID: 10, Date: "2026-05-23",
			ItemID: 3, Title: "Colosseum", Category: "activity",
			StartMin: ptr(540), EndMin: ptr(660), Pinned: true,
			EstimatedCost: ptr(24.5), Currency: "EUR", Location: "Rome",
			Tags: []string{"history", "rome"}, Notes: "book, ahead",
		},
		{TripID: 1, TripName: "Italy", DayID: 11, Date: "2026-05-24"},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, export.XLSX, f)

	_, err = export.ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", export.CSV.ContentType())
	assert.Equal(t, "application/json", export.JSON.ContentType())
	assert.Contains(t, export.XLSX.ContentType(), "spreadsheetml")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, export.Columns, records[0])

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "3", first[4])
	assert.Equal(t, "09:00", first[7])
	assert.Equal(t, "11:00", first[8])
	assert.Equal(t, "true", first[9])
	assert.Equal(t, "24.5", first[10])
	assert.Equal(t, "", first[11])
	assert.Equal(t, "history|rome", first[14])
	assert.Equal(t, "book, ahead", first[15], "commas survive CSV quoting")

	empty := records[2]
	assert.Equal(t, "2026-05-24", empty[3])
	assert.Equal(t, "", empty[4], "a day without items has blank item fields")
	assert.Equal(t, "", empty[9])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())

	buf.Reset()
	require.NoError(t, export.WriteJSON(&buf, sampleRows()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Colosseum", got[0]["title"])
	assert.EqualValues(t, 540, got[0]["start_min"])
	assert.NotContains(t, got[1], "item_id")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, "Italy: Rome/Florence", sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := export.SheetName("Italy: Rome/Florence")
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Columns, rows[0])
	assert.Equal(t, "Colosseum", rows[1][5])
	assert.Equal(t, "24.5", rows[1][10])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Italy_ Rome_Florence", export.SheetName("Italy: Rome/Florence"))
	assert.Equal(t, "Itinerary", export.SheetName("  "))
	assert.Len(t, []rune(export.SheetName("a very long trip name that keeps going on")), 31)
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.CSV, "", sampleRows()))
	assert.Contains(t, buf.String(), "trip_id,trip_name")

	assert.Error(t, export.Write(&buf, export.Format("pdf"), "", nil))
}
