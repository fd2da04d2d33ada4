// Package scheduler assigns courses to faculty, rooms and weekly time slots.
//
// The engine is greedy and first-fit. Courses are taken in input order, each
// gets the first room large enough for its enrollment, a faculty member chosen
// by course-code prefix and the first slot not yet used by any earlier course
// in the same run. Nothing is backtracked; a course that cannot be placed is
// skipped and reported as a Warning.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/timetable-api/internal/models"
)

// ErrMissingData is returned when courses, faculty or rooms is empty.
var ErrMissingData = errors.New("scheduler: courses, faculty and rooms are required")

// WarningReason classifies why a course was skipped.
type WarningReason string

const (
	ReasonNoSuitableRoom WarningReason = "NO_SUITABLE_ROOM"
	ReasonNoFreeSlot     WarningReason = "NO_FREE_SLOT"
)

// Warning describes a course that produced no entry.
type Warning struct {
	CourseID   string        `json:"courseId"`
	CourseName string        `json:"courseName"`
	Reason     WarningReason `json:"reason"`
	Message    string        `json:"message"`
}

// Assignment records how the faculty member of an entry was chosen.
type Assignment struct {
	EntryID         string `json:"entryId"`
	CourseID        string `json:"courseId"`
	FacultyID       string `json:"facultyId"`
	FacultyFallback bool   `json:"facultyFallback"`
}

// Result is the outcome of one generation run. Assignments is parallel to Entries.
type Result struct {
	Entries     []models.TimetableEntry
	Assignments []Assignment
	Warnings    []Warning
}

// Option customises an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the entry id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// Engine generates timetables. It holds no state between runs and is safe for concurrent use
// as long as the id generator is.
type Engine struct {
	newID func() string
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs the default engine.
func Generate(courses []models.Course, faculty []models.Faculty, rooms []models.Room) (Result, error) {
	return New().Generate(courses, faculty, rooms)
}

// Generate places every course it can. Inputs are never modified.
func (e *Engine) Generate(courses []models.Course, faculty []models.Faculty, rooms []models.Room) (Result, error) {
	result := Result{
		Entries:     []models.TimetableEntry{},
		Assignments: []Assignment{},
		Warnings:    []Warning{},
	}
	if len(courses) == 0 || len(faculty) == 0 || len(rooms) == 0 {
		return result, ErrMissingData
	}

	state := newRunState()
	for i := range courses {
		course := courses[i]

		room, ok := firstRoomFor(course, rooms)
		if !ok {
			result.Warnings = append(result.Warnings, newWarning(course, ReasonNoSuitableRoom,
				fmt.Sprintf("no room holds %d students", course.Enrollment)))
			continue
		}

		member, fallback := pickFaculty(course.Code, faculty)

		slotID, ok := state.firstFreeSlot(course.DurationHours)
		if !ok {
			result.Warnings = append(result.Warnings, newWarning(course, ReasonNoFreeSlot,
				"no free time slot left in the week"))
			continue
		}
		state.occupy(slotID)

		entry := buildEntry(e.newID(), course, member, room, slotID)
		result.Entries = append(result.Entries, entry)
		result.Assignments = append(result.Assignments, Assignment{
			EntryID:         entry.ID,
			CourseID:        course.ID,
			FacultyID:       member.ID,
			FacultyFallback: fallback,
		})
	}

	return result, nil
}

func firstRoomFor(course models.Course, rooms []models.Room) (models.Room, bool) {
	for _, room := range rooms {
		if room.Capacity >= course.Enrollment {
			return room, true
		}
	}
	return models.Room{}, false
}

func newWarning(course models.Course, reason WarningReason, message string) Warning {
	return Warning{
		CourseID:   course.ID,
		CourseName: course.Name,
		Reason:     reason,
		Message:    message,
	}
}

func buildEntry(id string, course models.Course, member models.Faculty, room models.Room, slotID int) models.TimetableEntry {
	courseCopy := course
	memberCopy := member
	if member.Specializations != nil {
		memberCopy.Specializations = append([]string(nil), member.Specializations...)
	}
	roomCopy := room
	slot, _ := models.TimeSlotByID(slotID)

	return models.TimetableEntry{
		ID:         id,
		CourseID:   course.ID,
		FacultyID:  member.ID,
		RoomID:     room.ID,
		TimeSlotID: slotID,
		Course:     &courseCopy,
		Faculty:    &memberCopy,
		Room:       &roomCopy,
		TimeSlot:   &slot,
	}
}

// runState tracks slots taken during one run. A slot used by any entry is
// unavailable to every other course, whatever its room or faculty.
type runState struct {
	occupied map[int]struct{}
}

func newRunState() *runState {
	return &runState{occupied: make(map[int]struct{}, models.TotalTimeSlots)}
}

// firstFreeSlot scans Monday to Friday, hour 1 upward. The last start hour
// leaves room for the course's duration, but only the start slot is reserved.
func (s *runState) firstFreeSlot(durationHours int) (int, bool) {
	if durationHours < 1 {
		durationHours = 1
	}
	lastStart := models.SlotsPerDay - (durationHours - 1)
	for day := 1; day <= models.DaysPerWeek; day++ {
		for hour := 1; hour <= lastStart; hour++ {
			id := models.TimeSlotID(day, hour)
			if !s.isOccupied(id) {
				return id, true
			}
		}
	}
	return 0, false
}

func (s *runState) isOccupied(slotID int) bool {
	_, taken := s.occupied[slotID]
	return taken
}

func (s *runState) occupy(slotID int) {
	s.occupied[slotID] = struct{}{}
}
