package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Grid is a two-dimensional sheet with labelled rows and columns.
// Cells is indexed [row][column]; missing cells render empty.
type Grid struct {
	Title         string
	Corner        string
	ColumnHeaders []string
	RowHeaders    []string
	Cells         [][]string
}

func (g Grid) cell(row, col int) string {
	if row >= len(g.Cells) || col >= len(g.Cells[row]) {
		return ""
	}
	return g.Cells[row][col]
}
