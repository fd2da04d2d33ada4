package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/timetable-api/internal/models"
)

// Storage rows keep nullable columns as sql.Null* values. Each row type has a
// single toModel step where catalogue defaults are applied.

type courseRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Code          string         `db:"code"`
	Enrollment    int            `db:"enrollment"`
	DurationHours sql.NullInt64  `db:"duration_hours"`
	Description   sql.NullString `db:"description"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (r courseRow) toModel() models.Course {
	duration := int(r.DurationHours.Int64)
	if !r.DurationHours.Valid || duration < 1 {
		duration = models.DefaultDurationHours
	}
	return models.Course{
		ID:            r.ID,
		Name:          r.Name,
		Code:          r.Code,
		Enrollment:    r.Enrollment,
		DurationHours: duration,
		Description:   r.Description.String,
		CreatedAt:     r.CreatedAt,
	}
}

func courseRowFrom(c models.Course) courseRow {
	return courseRow{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		Enrollment:    c.Enrollment,
		DurationHours: sql.NullInt64{Int64: int64(c.DurationHours), Valid: c.DurationHours > 0},
		Description:   sql.NullString{String: c.Description, Valid: c.Description != ""},
		CreatedAt:     c.CreatedAt,
	}
}

type facultyRow struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	Department      sql.NullString `db:"department"`
	Specializations pq.StringArray `db:"specializations"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (r facultyRow) toModel() models.Faculty {
	specs := make([]string, 0, len(r.Specializations))
	specs = append(specs, r.Specializations...)
	return models.Faculty{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Department:      r.Department.String,
		Specializations: specs,
		CreatedAt:       r.CreatedAt,
	}
}

func facultyRowFrom(f models.Faculty) facultyRow {
	specs := pq.StringArray(f.Specializations)
	if specs == nil {
		specs = pq.StringArray{}
	}
	return facultyRow{
		ID:              f.ID,
		Name:            f.Name,
		Email:           f.Email,
		Department:      sql.NullString{String: f.Department, Valid: f.Department != ""},
		Specializations: specs,
		CreatedAt:       f.CreatedAt,
	}
}

type roomRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Capacity     int            `db:"capacity"`
	Building     sql.NullString `db:"building"`
	Floor        sql.NullInt64  `db:"floor"`
	HasProjector sql.NullBool   `db:"has_projector"`
	HasComputers sql.NullBool   `db:"has_computers"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r roomRow) toModel() models.Room {
	floor := int(r.Floor.Int64)
	if !r.Floor.Valid || floor == 0 {
		floor = models.DefaultRoomFloor
	}
	return models.Room{
		ID:           r.ID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		Building:     r.Building.String,
		Floor:        floor,
		HasProjector: r.HasProjector.Valid && r.HasProjector.Bool,
		HasComputers: r.HasComputers.Valid && r.HasComputers.Bool,
		CreatedAt:    r.CreatedAt,
	}
}

func roomRowFrom(room models.Room) roomRow {
	return roomRow{
		ID:           room.ID,
		Name:         room.Name,
		Capacity:     room.Capacity,
		Building:     sql.NullString{String: room.Building, Valid: room.Building != ""},
		Floor:        sql.NullInt64{Int64: int64(room.Floor), Valid: true},
		HasProjector: sql.NullBool{Bool: room.HasProjector, Valid: true},
		HasComputers: sql.NullBool{Bool: room.HasComputers, Valid: true},
		CreatedAt:    room.CreatedAt,
	}
}

// entryRow is the joined read shape of a timetable entry.
type entryRow struct {
	ID         string    `db:"id"`
	CourseID   string    `db:"course_id"`
	FacultyID  string    `db:"faculty_id"`
	RoomID     string    `db:"room_id"`
	TimeSlotID int       `db:"time_slot_id"`
	CreatedAt  time.Time `db:"created_at"`

	CourseName          string         `db:"course_name"`
	CourseCode          string         `db:"course_code"`
	CourseEnrollment    int            `db:"course_enrollment"`
	CourseDurationHours sql.NullInt64  `db:"course_duration_hours"`
	CourseDescription   sql.NullString `db:"course_description"`
	CourseCreatedAt     time.Time      `db:"course_created_at"`

	FacultyName            string         `db:"faculty_name"`
	FacultyEmail           string         `db:"faculty_email"`
	FacultyDepartment      sql.NullString `db:"faculty_department"`
	FacultySpecializations pq.StringArray `db:"faculty_specializations"`
	FacultyCreatedAt       time.Time      `db:"faculty_created_at"`

	RoomName         string         `db:"room_name"`
	RoomCapacity     int            `db:"room_capacity"`
	RoomBuilding     sql.NullString `db:"room_building"`
	RoomFloor        sql.NullInt64  `db:"room_floor"`
	RoomHasProjector sql.NullBool   `db:"room_has_projector"`
	RoomHasComputers sql.NullBool   `db:"room_has_computers"`
	RoomCreatedAt    time.Time      `db:"room_created_at"`
}

func (r entryRow) toModel() models.TimetableEntry {
	course := courseRow{
		ID:            r.CourseID,
		Name:          r.CourseName,
		Code:          r.CourseCode,
		Enrollment:    r.CourseEnrollment,
		DurationHours: r.CourseDurationHours,
		Description:   r.CourseDescription,
		CreatedAt:     r.CourseCreatedAt,
	}.toModel()
	faculty := facultyRow{
		ID:              r.FacultyID,
		Name:            r.FacultyName,
		Email:           r.FacultyEmail,
		Department:      r.FacultyDepartment,
		Specializations: r.FacultySpecializations,
		CreatedAt:       r.FacultyCreatedAt,
	}.toModel()
	room := roomRow{
		ID:           r.RoomID,
		Name:         r.RoomName,
		Capacity:     r.RoomCapacity,
		Building:     r.RoomBuilding,
		Floor:        r.RoomFloor,
		HasProjector: r.RoomHasProjector,
		HasComputers: r.RoomHasComputers,
		CreatedAt:    r.RoomCreatedAt,
	}.toModel()

	entry := models.TimetableEntry{
		ID:         r.ID,
		CourseID:   r.CourseID,
		FacultyID:  r.FacultyID,
		RoomID:     r.RoomID,
		TimeSlotID: r.TimeSlotID,
		CreatedAt:  r.CreatedAt,
		Course:     &course,
		Faculty:    &faculty,
		Room:       &room,
	}
	if slot, ok := models.TimeSlotByID(r.TimeSlotID); ok {
		entry.TimeSlot = &slot
	}
	return entry
}

// entryInsertRow is the write shape of a timetable entry.
type entryInsertRow struct {
	ID         string    `db:"id"`
	CourseID   string    `db:"course_id"`
	FacultyID  string    `db:"faculty_id"`
	RoomID     string    `db:"room_id"`
	TimeSlotID int       `db:"time_slot_id"`
	CreatedAt  time.Time `db:"created_at"`
}
