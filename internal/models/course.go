package models

import "time"

// DefaultDurationHours applies when a stored course carries no usable duration.
const DefaultDurationHours = 1

// Course is a teachable unit that needs one room, one instructor and a weekly slot.
type Course struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Enrollment    int       `json:"enrollment"`
	DurationHours int       `json:"duration_hours"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCourseRequest is the payload for registering a course.
type CreateCourseRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Code          string `json:"code" validate:"required,max=32"`
	Enrollment    int    `json:"enrollment" validate:"required,min=1"`
	DurationHours int    `json:"duration_hours" validate:"omitempty,min=1"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
}
