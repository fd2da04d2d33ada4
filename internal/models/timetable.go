package models

import "time"

// TimetableEntry assigns one course to a faculty member, a room and a slot.
// The embedded references are populated on read and by the generator.
type TimetableEntry struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	FacultyID  string    `json:"faculty_id"`
	RoomID     string    `json:"room_id"`
	TimeSlotID int       `json:"time_slot_id"`
	CreatedAt  time.Time `json:"created_at"`

	Course   *Course   `json:"course,omitempty"`
	Faculty  *Faculty  `json:"faculty,omitempty"`
	Room     *Room     `json:"room,omitempty"`
	TimeSlot *TimeSlot `json:"time_slot,omitempty"`
}
