package dto

import (
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/scheduler"
)

// NotificationLevel classifies a user-facing notification.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a message surfaced alongside a coordinator result.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
}

// TimetableSnapshot is the full state returned by a load.
type TimetableSnapshot struct {
	Courses       []models.Course         `json:"courses"`
	Faculty       []models.Faculty        `json:"faculty"`
	Rooms         []models.Room           `json:"rooms"`
	Entries       []models.TimetableEntry `json:"entries"`
	HasData       bool                    `json:"hasData"`
	Notifications []Notification          `json:"notifications,omitempty"`
}

// GenerationOutcome reports how a generate or save call ended.
type GenerationOutcome string

const (
	OutcomeGenerated         GenerationOutcome = "GENERATED"
	OutcomeNothingAssignable GenerationOutcome = "NOTHING_ASSIGNABLE"
	OutcomeMissingData       GenerationOutcome = "MISSING_DATA"
	OutcomeLoadFailed        GenerationOutcome = "LOAD_FAILED"
	OutcomeSaveFailed        GenerationOutcome = "SAVE_FAILED"
	OutcomeSaved             GenerationOutcome = "SAVED"
)

// GenerationResult carries the entries produced by a run. Entries are
// present even when persisting them failed.
type GenerationResult struct {
	Outcome       GenerationOutcome       `json:"outcome"`
	Entries       []models.TimetableEntry `json:"entries"`
	Warnings      []scheduler.Warning     `json:"warnings"`
	Saved         bool                    `json:"saved"`
	Notifications []Notification          `json:"notifications,omitempty"`
}

// CoordinatorState names the coordinator's current phase.
type CoordinatorState string

const (
	StateUninitialized CoordinatorState = "UNINITIALIZED"
	StateLoaded        CoordinatorState = "LOADED"
	StateGenerating    CoordinatorState = "GENERATING"
	StateSaving        CoordinatorState = "SAVING"
	StateClearing      CoordinatorState = "CLEARING"
)

// CoordinatorStatus exposes the in-flight flags.
type CoordinatorStatus struct {
	State        CoordinatorState `json:"state"`
	IsGenerating bool             `json:"isGenerating"`
	IsClearing   bool             `json:"isClearing"`
	IsSaving     bool             `json:"isSaving"`
}

// SaveTimetableEntry is one entry of an explicit save payload.
type SaveTimetableEntry struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	CourseID   string `json:"courseId" validate:"required"`
	FacultyID  string `json:"facultyId" validate:"required"`
	RoomID     string `json:"roomId" validate:"required"`
	TimeSlotID int    `json:"timeSlotId" validate:"required,min=1,max=40"`
}

// SaveTimetableRequest replaces the persisted timetable with Entries.
type SaveTimetableRequest struct {
	Entries []SaveTimetableEntry `json:"entries" validate:"dive"`
}

// ImportResult summarises a catalogue CSV import.
type ImportResult struct {
	Resource string `json:"resource"`
	Imported int    `json:"imported"`
}
