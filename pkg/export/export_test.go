package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sampleRow struct {
	Day    string `csv:"day"`
	Course string `csv:"course"`
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render([]sampleRow{{Day: "Monday", Course: "CS101, intro"}})
	require.NoError(t, err)

	assert.Equal(t, "day,course\nMonday,\"CS101, intro\"\n", string(out))
}

func TestCSVExporterRejectsNonSlice(t *testing.T) {
	_, err := NewCSVExporter().Render(42)
	assert.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	grid := Grid{
		Title:         "Weekly timetable",
		Corner:        "Time",
		ColumnHeaders: []string{"Monday", "Tuesday"},
		RowHeaders:    []string{"09:00-10:00", "10:00-11:00"},
		Cells:         [][]string{{"CS101", ""}, {"", "MA201"}},
	}

	out, err := NewXLSXExporter("").Render(grid)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Timetable"}, f.GetSheetList())
	v, err := f.GetCellValue("Timetable", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Monday", v)
	v, err = f.GetCellValue("Timetable", "B3")
	require.NoError(t, err)
	assert.Equal(t, "CS101", v)
	v, err = f.GetCellValue("Timetable", "C4")
	require.NoError(t, err)
	assert.Equal(t, "MA201", v)
}

func TestXLSXExporterRequiresColumns(t *testing.T) {
	_, err := NewXLSXExporter("x").Render(Grid{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	rows := make([]map[string]string, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, map[string]string{"Day": "Monday", "Course": "CS101"})
	}

	out, err := NewPDFExporter().Render(Dataset{Headers: []string{"Day", "Course"}, Rows: rows}, "Timetable")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
