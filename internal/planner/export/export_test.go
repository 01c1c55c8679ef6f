package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"wardrobe-planner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var entries = []models.CutListEntry{
	{Section: 1, Carcass: 1, Component: "Top", Width: 800, Depth: 600, Thickness: 18, Material: "Oak", Quantity: 1},
	{Section: 1, Carcass: 1, Component: "Left Side", Height: 1964, Depth: 600, Thickness: 18, Material: "Oak", Quantity: 1},
	{Section: 1, Carcass: 1, Component: "Shelves (4x)", Width: 760, Depth: 578, Thickness: 18, Material: "Oak", Quantity: 4},
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, entries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, cutListHeaders, records[0])
	assert.Equal(t, []string{"1", "1", "Top", "800", "", "600", "18", "Oak", "1"}, records[1])
	assert.Equal(t, []string{"1", "1", "Left Side", "", "1964", "600", "18", "Oak", "1"}, records[2])
	assert.Equal(t, "4", records[3][8])
}

func TestCSV_ZeroDimensionIsWritten(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, []models.CutListEntry{
		{Section: 1, Carcass: 1, Component: "Right Side", Height: 0, Depth: 600, Thickness: 18, Material: "Oak", Quantity: 1},
	}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "1", "Right Side", "", "0", "600", "18", "Oak", "1"}, records[1])
}

func TestXLSX(t *testing.T) {
	estimate := &models.CostEstimate{
		Lines:       []models.CostLine{{Material: "Oak", Thickness: 18, Panels: 6, Area: 2.5e6, Sheets: 1, PricePerSheet: 90, Cost: 90}},
		TotalArea:   2.5e6,
		TotalSheets: 1,
		Total:       90,
	}

	f, err := XLSX(entries, estimate)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{cutListSheet, costsSheet}, book.GetSheetList())

	rows, err := book.GetRows(cutListSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Component", rows[0][2])
	assert.Equal(t, "Shelves (4x)", rows[3][2])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "6", rows[4][8])

	total, err := book.GetCellValue(costsSheet, "H3")
	require.NoError(t, err)
	assert.Equal(t, "90", total)
}

func TestXLSX_WithoutEstimate(t *testing.T) {
	f, err := XLSX(nil, nil)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{cutListSheet}, f.GetSheetList())
}

func TestContentType(t *testing.T) {
	assert.Contains(t, ContentType(FormatCSV), "text/csv")
	assert.Contains(t, ContentType(FormatXLSX), "spreadsheetml")
	assert.Equal(t, "application/octet-stream", ContentType("pdf"))
}
