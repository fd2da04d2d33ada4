package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXExporter renders grids into a single-sheet workbook.
type XLSXExporter struct {
	SheetName string
}

// NewXLSXExporter constructs an XLSX exporter writing to sheetName.
func NewXLSXExporter(sheetName string) *XLSXExporter {
	if sheetName == "" {
		sheetName = "Timetable"
	}
	return &XLSXExporter{SheetName: sheetName}
}

// Render writes the title on row 1, column headers on row 2 and one row per grid row.
func (e *XLSXExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.ColumnHeaders) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one column")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := e.SheetName
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("drop default sheet: %w", err)
		}
	}

	lastCol := columnName(len(grid.ColumnHeaders) + 1)
	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", lastCol, 28); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("body style: %w", err)
	}

	if grid.Title != "" {
		if err := f.SetCellValue(sheet, "A1", grid.Title); err != nil {
			return nil, err
		}
		if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", headerStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetCellValue(sheet, "A2", grid.Corner); err != nil {
		return nil, err
	}
	for i, header := range grid.ColumnHeaders {
		if err := f.SetCellValue(sheet, cellName(i+2, 2), header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", headerStyle); err != nil {
		return nil, err
	}

	for r, label := range grid.RowHeaders {
		row := r + 3
		if err := f.SetCellValue(sheet, cellName(1, row), label); err != nil {
			return nil, err
		}
		for c := range grid.ColumnHeaders {
			if err := f.SetCellValue(sheet, cellName(c+2, row), grid.cell(r, c)); err != nil {
				return nil, err
			}
		}
	}
	if len(grid.RowHeaders) > 0 {
		last := cellName(len(grid.ColumnHeaders)+1, len(grid.RowHeaders)+2)
		if err := f.SetCellStyle(sheet, "A3", last, bodyStyle); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func columnName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx)
	return name
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
