package models

import (
	"strings"
	"time"
)

// Faculty is an instructor who can be assigned to courses.
type Faculty struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Department      string    `json:"department"`
	Specializations []string  `json:"specializations"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateFacultyRequest is the payload for registering an instructor.
// Specializations arrive as one comma-separated string.
type CreateFacultyRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Department      string `json:"department" validate:"omitempty,max=200"`
	Specializations string `json:"specializations" validate:"omitempty,max=1000"`
}

// SplitSpecializations turns "AI, Machine Learning,," into ["AI", "Machine Learning"].
func SplitSpecializations(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
