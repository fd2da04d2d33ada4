package models

import "time"

// DefaultRoomFloor applies when a room has no floor recorded.
const DefaultRoomFloor = 1

// Room is a teaching space. Equipment flags are informational only.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Building     string    `json:"building"`
	Floor        int       `json:"floor"`
	HasProjector bool      `json:"has_projector"`
	HasComputers bool      `json:"has_computers"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateRoomRequest is the payload for registering a room.
type CreateRoomRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	Building     string `json:"building" validate:"omitempty,max=200"`
	Floor        *int   `json:"floor" validate:"omitempty"`
	HasProjector bool   `json:"has_projector"`
	HasComputers bool   `json:"has_computers"`
}
