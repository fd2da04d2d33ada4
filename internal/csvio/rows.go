// Package csvio maps catalogue and timetable records to CSV rows.
package csvio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/timetable-api/internal/models"
)

// CourseRow is one line of a courses file.
type CourseRow struct {
	ID            string `csv:"id,omitempty"`
	Name          string `csv:"name"`
	Code          string `csv:"code"`
	Enrollment    int    `csv:"enrollment"`
	DurationHours int    `csv:"duration_hours,omitempty"`
	Description   string `csv:"description,omitempty"`
}

// FacultyRow is one line of a faculty file. Specializations are comma separated
// inside a single quoted field.
type FacultyRow struct {
	ID              string `csv:"id,omitempty"`
	Name            string `csv:"name"`
	Email           string `csv:"email"`
	Department      string `csv:"department,omitempty"`
	Specializations string `csv:"specializations,omitempty"`
}

// RoomRow is one line of a rooms file.
type RoomRow struct {
	ID           string `csv:"id,omitempty"`
	Name         string `csv:"name"`
	Capacity     int    `csv:"capacity"`
	Building     string `csv:"building,omitempty"`
	Floor        int    `csv:"floor,omitempty"`
	HasProjector bool   `csv:"has_projector,omitempty"`
	HasComputers bool   `csv:"has_computers,omitempty"`
}

// EntryRow is the flat export form of a timetable entry.
type EntryRow struct {
	EntryID     string `csv:"entry_id"`
	Day         string `csv:"day"`
	Slot        int    `csv:"slot"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
	TimeSlotID  int    `csv:"time_slot_id"`
	CourseID    string `csv:"course_id"`
	CourseCode  string `csv:"course_code"`
	CourseName  string `csv:"course_name"`
	FacultyID   string `csv:"faculty_id"`
	FacultyName string `csv:"faculty_name"`
	RoomID      string `csv:"room_id"`
	RoomName    string `csv:"room_name"`
}

// ReadCourses decodes a courses CSV with a header line.
func ReadCourses(r io.Reader) ([]CourseRow, error) {
	rows := []CourseRow{}
	if err := decode(r, &rows); err != nil {
		return nil, fmt.Errorf("read courses csv: %w", err)
	}
	return rows, nil
}

// ReadFaculty decodes a faculty CSV with a header line.
func ReadFaculty(r io.Reader) ([]FacultyRow, error) {
	rows := []FacultyRow{}
	if err := decode(r, &rows); err != nil {
		return nil, fmt.Errorf("read faculty csv: %w", err)
	}
	return rows, nil
}

// ReadRooms decodes a rooms CSV with a header line.
func ReadRooms(r io.Reader) ([]RoomRow, error) {
	rows := []RoomRow{}
	if err := decode(r, &rows); err != nil {
		return nil, fmt.Errorf("read rooms csv: %w", err)
	}
	return rows, nil
}

func decode(r io.Reader, out interface{}) error {
	if err := gocsv.Unmarshal(r, out); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return err
	}
	return nil
}

// Request converts the row into a create payload.
func (r CourseRow) Request() models.CreateCourseRequest {
	return models.CreateCourseRequest{
		Name:          strings.TrimSpace(r.Name),
		Code:          strings.TrimSpace(r.Code),
		Enrollment:    r.Enrollment,
		DurationHours: r.DurationHours,
		Description:   strings.TrimSpace(r.Description),
	}
}

// Request converts the row into a create payload.
func (r FacultyRow) Request() models.CreateFacultyRequest {
	return models.CreateFacultyRequest{
		Name:            strings.TrimSpace(r.Name),
		Email:           strings.TrimSpace(r.Email),
		Department:      strings.TrimSpace(r.Department),
		Specializations: r.Specializations,
	}
}

// Request converts the row into a create payload. A zero floor means not recorded.
func (r RoomRow) Request() models.CreateRoomRequest {
	req := models.CreateRoomRequest{
		Name:         strings.TrimSpace(r.Name),
		Capacity:     r.Capacity,
		Building:     strings.TrimSpace(r.Building),
		HasProjector: r.HasProjector,
		HasComputers: r.HasComputers,
	}
	if r.Floor != 0 {
		floor := r.Floor
		req.Floor = &floor
	}
	return req
}

// EntryRows flattens entries for export. Missing references leave the name columns empty.
func EntryRows(entries []models.TimetableEntry) []EntryRow {
	rows := make([]EntryRow, 0, len(entries))
	for _, entry := range entries {
		row := EntryRow{
			EntryID:    entry.ID,
			TimeSlotID: entry.TimeSlotID,
			CourseID:   entry.CourseID,
			FacultyID:  entry.FacultyID,
			RoomID:     entry.RoomID,
		}
		if slot, ok := models.TimeSlotByID(entry.TimeSlotID); ok {
			row.Day = slot.Day
			row.Slot = slot.Slot
			row.StartTime = slot.StartTime
			row.EndTime = slot.EndTime
		}
		if entry.Course != nil {
			row.CourseCode = entry.Course.Code
			row.CourseName = entry.Course.Name
		}
		if entry.Faculty != nil {
			row.FacultyName = entry.Faculty.Name
		}
		if entry.Room != nil {
			row.RoomName = entry.Room.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteEntries encodes entries as CSV with a header line.
func WriteEntries(w io.Writer, entries []models.TimetableEntry) error {
	rows := EntryRows(entries)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write entries csv: %w", err)
	}
	return nil
}
