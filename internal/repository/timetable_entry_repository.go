package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

// TimetableEntryRepository handles persistence for generated timetable entries.
type TimetableEntryRepository struct {
	db *sqlx.DB
}

// NewTimetableEntryRepository creates a new repository instance.
func NewTimetableEntryRepository(db *sqlx.DB) *TimetableEntryRepository {
	return &TimetableEntryRepository{db: db}
}

// List returns all entries with their course, faculty and room, ordered by slot.
func (r *TimetableEntryRepository) List(ctx context.Context) ([]models.TimetableEntry, error) {
	const query = `SELECT e.id, e.course_id, e.faculty_id, e.room_id, e.time_slot_id, e.created_at,
c.name AS course_name, c.code AS course_code, c.enrollment AS course_enrollment, c.duration_hours AS course_duration_hours, c.description AS course_description, c.created_at AS course_created_at,
f.name AS faculty_name, f.email AS faculty_email, f.department AS faculty_department, f.specializations AS faculty_specializations, f.created_at AS faculty_created_at,
r.name AS room_name, r.capacity AS room_capacity, r.building AS room_building, r.floor AS room_floor, r.has_projector AS room_has_projector, r.has_computers AS room_has_computers, r.created_at AS room_created_at
FROM timetable_entries e
JOIN courses c ON c.id = e.course_id
JOIN faculty f ON f.id = e.faculty_id
JOIN rooms r ON r.id = e.room_id
ORDER BY e.time_slot_id ASC`
	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	entries := make([]models.TimetableEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toModel())
	}
	return entries, nil
}

// ReplaceAll deletes every entry and inserts entries in one transaction.
// On any failure the transaction is rolled back and prior entries remain.
func (r *TimetableEntryRepository) ReplaceAll(ctx context.Context, entries []models.TimetableEntry) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace timetable entries: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM timetable_entries`); err != nil {
		return fmt.Errorf("delete timetable entries: %w", err)
	}

	if err = r.insertAll(ctx, tx, entries); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace timetable entries: %w", err)
	}
	return nil
}

func (r *TimetableEntryRepository) insertAll(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	const query = `INSERT INTO timetable_entries (id, course_id, faculty_id, room_id, time_slot_id, created_at) VALUES (:id, :course_id, :faculty_id, :room_id, :time_slot_id, :created_at)`
	now := time.Now().UTC()
	for i := range entries {
		entry := &entries[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		row := entryInsertRow{
			ID:         entry.ID,
			CourseID:   entry.CourseID,
			FacultyID:  entry.FacultyID,
			RoomID:     entry.RoomID,
			TimeSlotID: entry.TimeSlotID,
			CreatedAt:  entry.CreatedAt,
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, query, row); err != nil {
			return fmt.Errorf("insert timetable entry for slot %d: %w", entry.TimeSlotID, err)
		}
	}
	return nil
}

// DeleteAll removes every entry. Deleting from an empty table is not an error.
func (r *TimetableEntryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timetable_entries`); err != nil {
		return fmt.Errorf("delete timetable entries: %w", err)
	}
	return nil
}
