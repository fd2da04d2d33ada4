package repository

import (
	"context"
	"time"

	"github.com/noah-isme/timetable-api/internal/models"
)

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type facultyLister interface {
	List(ctx context.Context) ([]models.Faculty, error)
}

type roomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

type entryStore interface {
	List(ctx context.Context) ([]models.TimetableEntry, error)
	ReplaceAll(ctx context.Context, entries []models.TimetableEntry) error
	DeleteAll(ctx context.Context) error
}

// QueryObserver receives the duration of every store call.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// TimetableStore is the data store consumed by the timetable coordinator.
// Every call runs under its own timeout.
type TimetableStore struct {
	courses  courseLister
	faculty  facultyLister
	rooms    roomLister
	entries  entryStore
	timeout  time.Duration
	observer QueryObserver
}

// NewTimetableStore composes the catalogue and entry repositories.
func NewTimetableStore(courses courseLister, faculty facultyLister, rooms roomLister, entries entryStore, timeout time.Duration, observer QueryObserver) *TimetableStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TimetableStore{
		courses:  courses,
		faculty:  faculty,
		rooms:    rooms,
		entries:  entries,
		timeout:  timeout,
		observer: observer,
	}
}

func (s *TimetableStore) call(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if s.observer != nil {
		s.observer.ObserveDBQuery(label, time.Since(start))
	}
	return err
}

// ListCourses returns courses in creation order.
func (s *TimetableStore) ListCourses(ctx context.Context) (courses []models.Course, err error) {
	err = s.call(ctx, "list_courses", func(ctx context.Context) error {
		courses, err = s.courses.List(ctx)
		return err
	})
	return courses, err
}

// ListFaculty returns faculty in creation order.
func (s *TimetableStore) ListFaculty(ctx context.Context) (faculty []models.Faculty, err error) {
	err = s.call(ctx, "list_faculty", func(ctx context.Context) error {
		faculty, err = s.faculty.List(ctx)
		return err
	})
	return faculty, err
}

// ListRooms returns rooms in creation order.
func (s *TimetableStore) ListRooms(ctx context.Context) (rooms []models.Room, err error) {
	err = s.call(ctx, "list_rooms", func(ctx context.Context) error {
		rooms, err = s.rooms.List(ctx)
		return err
	})
	return rooms, err
}

// ListEntries returns the persisted timetable.
func (s *TimetableStore) ListEntries(ctx context.Context) (entries []models.TimetableEntry, err error) {
	err = s.call(ctx, "list_entries", func(ctx context.Context) error {
		entries, err = s.entries.List(ctx)
		return err
	})
	return entries, err
}

// ReplaceEntries atomically swaps the persisted timetable for entries.
func (s *TimetableStore) ReplaceEntries(ctx context.Context, entries []models.TimetableEntry) error {
	return s.call(ctx, "replace_entries", func(ctx context.Context) error {
		return s.entries.ReplaceAll(ctx, entries)
	})
}

// DeleteAllEntries clears the persisted timetable.
func (s *TimetableStore) DeleteAllEntries(ctx context.Context) error {
	return s.call(ctx, "delete_entries", func(ctx context.Context) error {
		return s.entries.DeleteAll(ctx)
	})
}
