package export

import (
	"fmt"

	"github.com/gocarina/gocsv"
)

// CSVExporter renders slices of csv-tagged structs.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes rows, which must be a slice (or pointer to slice) of structs with `csv` tags.
// The header line is always written, even when rows is empty.
func (e *CSVExporter) Render(rows interface{}) ([]byte, error) {
	out, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return out, nil
}
