package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"

	"github.com/noah-isme/timetable-api/internal/models"
)

type courseListerStub struct {
	courses []models.Course
	err     error
}

func (s courseListerStub) List(ctx context.Context) ([]models.Course, error) {
	return s.courses, s.err
}

type facultyListerStub struct{}

func (facultyListerStub) List(ctx context.Context) ([]models.Faculty, error) {
	return []models.Faculty{{ID: "f1"}}, nil
}

type roomListerStub struct{}

func (roomListerStub) List(ctx context.Context) ([]models.Room, error) {
	return []models.Room{{ID: "r1"}}, nil
}

type entryStoreStub struct {
	replaced []models.TimetableEntry
	block    bool
}

func (s *entryStoreStub) List(ctx context.Context) ([]models.TimetableEntry, error) {
	return s.replaced, nil
}

func (s *entryStoreStub) ReplaceAll(ctx context.Context, entries []models.TimetableEntry) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	s.replaced = entries
	return nil
}

func (s *entryStoreStub) DeleteAll(ctx context.Context) error {
	s.replaced = nil
	return nil
}

type observerStub struct {
	mu     sync.Mutex
	labels []string
}

func (o *observerStub) ObserveDBQuery(label string, duration time.Duration) {
	o.mu.Lock()
	o.labels = append(o.labels, label)
	o.mu.Unlock()
}

func TestTimetableStoreDelegatesAndObserves(t *testing.T) {
	observer := &observerStub{}
	entries := &entryStoreStub{}
	store := NewTimetableStore(courseListerStub{courses: []models.Course{{ID: "c1"}}}, facultyListerStub{}, roomListerStub{}, entries, time.Second, observer)

	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	require.NoError(t, store.ReplaceEntries(context.Background(), []models.TimetableEntry{{ID: "e1"}}))
	listed, err := store.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, store.DeleteAllEntries(context.Background()))

	assert.Equal(t, []string{"list_courses", "replace_entries", "list_entries", "delete_entries"}, observer.labels)
}

func TestTimetableStorePropagatesErrors(t *testing.T) {
	store := NewTimetableStore(courseListerStub{err: appErrors.ErrInternal}, facultyListerStub{}, roomListerStub{}, &entryStoreStub{}, time.Second, nil)

	_, err := store.ListCourses(context.Background())

	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestTimetableStoreAppliesTimeout(t *testing.T) {
	store := NewTimetableStore(courseListerStub{}, facultyListerStub{}, roomListerStub{}, &entryStoreStub{block: true}, 20*time.Millisecond, nil)

	start := time.Now()
	err := store.ReplaceEntries(context.Background(), []models.TimetableEntry{{ID: "e1"}})

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), time.Second)
}
