package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/csvio"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
)

// ExportFormat names a supported timetable export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

var exportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatPDF:  "application/pdf",
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type entriesReader interface {
	Entries(ctx context.Context) ([]models.TimetableEntry, error)
}

type csvRenderer interface {
	Render(rows interface{}) ([]byte, error)
}

type xlsxRenderer interface {
	Render(grid export.Grid) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the persisted timetable.
type ExportService struct {
	entries entriesReader
	csv     csvRenderer
	xlsx    xlsxRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(entries entriesReader, logger *zap.Logger, csv csvRenderer, xlsx xlsxRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter("Timetable")
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{entries: entries, csv: csv, xlsx: xlsx, pdf: pdf, logger: logger, now: time.Now}
}

// ParseExportFormat validates a user supplied format, defaulting to csv.
func ParseExportFormat(raw string) (ExportFormat, error) {
	format := ExportFormat(strings.ToLower(strings.TrimSpace(raw)))
	if format == "" {
		return ExportFormatCSV, nil
	}
	if _, ok := exportContentTypes[format]; !ok {
		return "", appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", raw))
	}
	return format, nil
}

// Export renders the current timetable in the given format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(csvio.EntryRows(entries))
	case ExportFormatXLSX:
		payload, err = s.xlsx.Render(timetableGrid(entries))
	case ExportFormatPDF:
		payload, err = s.pdf.Render(timetableDataset(entries), "Weekly Timetable")
	}
	if err != nil {
		s.logger.Error("failed to render timetable export", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("timetable_%s.%s", s.now().UTC().Format("20060102_150405"), format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

// timetableGrid lays entries out with weekdays as columns and slots as rows.
func timetableGrid(entries []models.TimetableEntry) export.Grid {
	rowHeaders := make([]string, models.SlotsPerDay)
	for slot := 1; slot <= models.SlotsPerDay; slot++ {
		ts, _ := models.TimeSlotByID(models.TimeSlotID(1, slot))
		rowHeaders[slot-1] = fmt.Sprintf("%s-%s", ts.StartTime, ts.EndTime)
	}
	cells := make([][]string, models.SlotsPerDay)
	for i := range cells {
		cells[i] = make([]string, models.DaysPerWeek)
	}
	for _, entry := range entries {
		ts, ok := models.TimeSlotByID(entry.TimeSlotID)
		if !ok {
			continue
		}
		cell := describeEntry(entry)
		if existing := cells[ts.Slot-1][ts.DayIndex-1]; existing != "" {
			cell = existing + "\n\n" + cell
		}
		cells[ts.Slot-1][ts.DayIndex-1] = cell
	}
	return export.Grid{
		Title:         "Weekly Timetable",
		Corner:        "Time",
		ColumnHeaders: models.Weekdays(),
		RowHeaders:    rowHeaders,
		Cells:         cells,
	}
}

var timetableHeaders = []string{"Day", "Time", "Course", "Faculty", "Room"}

func timetableDataset(entries []models.TimetableEntry) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, row := range csvio.EntryRows(entries) {
		course := row.CourseID
		if row.CourseCode != "" {
			course = fmt.Sprintf("%s %s", row.CourseCode, row.CourseName)
		}
		rows = append(rows, map[string]string{
			"Day":     row.Day,
			"Time":    fmt.Sprintf("%s-%s", row.StartTime, row.EndTime),
			"Course":  course,
			"Faculty": firstNonEmpty(row.FacultyName, row.FacultyID),
			"Room":    firstNonEmpty(row.RoomName, row.RoomID),
		})
	}
	return export.Dataset{Headers: timetableHeaders, Rows: rows}
}

func describeEntry(entry models.TimetableEntry) string {
	course := entry.CourseID
	if entry.Course != nil {
		course = fmt.Sprintf("%s %s", entry.Course.Code, entry.Course.Name)
	}
	faculty := entry.FacultyID
	if entry.Faculty != nil {
		faculty = entry.Faculty.Name
	}
	room := entry.RoomID
	if entry.Room != nil {
		room = entry.Room.Name
	}
	return strings.Join([]string{course, faculty, room}, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
