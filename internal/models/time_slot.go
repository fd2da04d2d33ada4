package models

import "fmt"

const (
	DaysPerWeek    = 5
	SlotsPerDay    = 8
	TotalTimeSlots = DaysPerWeek * SlotsPerDay
)

var weekdays = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeSlot is one fixed weekly teaching hour.
type TimeSlot struct {
	ID        int    `json:"id"`
	Day       string `json:"day"`
	DayIndex  int    `json:"day_index"`
	Slot      int    `json:"slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

var timeSlotCatalogue = buildTimeSlots()

func buildTimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, TotalTimeSlots)
	for day := 1; day <= DaysPerWeek; day++ {
		for slot := 1; slot <= SlotsPerDay; slot++ {
			// Morning block starts at 09:00, afternoon block at 14:00 after lunch.
			start := 9 + slot - 1
			if slot > 4 {
				start = 14 + slot - 5
			}
			slots = append(slots, TimeSlot{
				ID:        TimeSlotID(day, slot),
				Day:       weekdays[day-1],
				DayIndex:  day,
				Slot:      slot,
				StartTime: fmt.Sprintf("%02d:00", start),
				EndTime:   fmt.Sprintf("%02d:00", start+1),
			})
		}
	}
	return slots
}

// TimeSlotID encodes a (day, slot) pair, both 1-based.
func TimeSlotID(day, slot int) int {
	return (day-1)*SlotsPerDay + slot
}

// ValidTimeSlotID reports whether id is within the weekly catalogue.
func ValidTimeSlotID(id int) bool {
	return id >= 1 && id <= TotalTimeSlots
}

// TimeSlotByID looks up a slot in the catalogue.
func TimeSlotByID(id int) (TimeSlot, bool) {
	if !ValidTimeSlotID(id) {
		return TimeSlot{}, false
	}
	return timeSlotCatalogue[id-1], true
}

// TimeSlots returns a copy of the weekly catalogue ordered by id.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlotCatalogue))
	copy(out, timeSlotCatalogue)
	return out
}

// Weekdays returns the day names in catalogue order.
func Weekdays() []string {
	return append([]string(nil), weekdays[:]...)
}
