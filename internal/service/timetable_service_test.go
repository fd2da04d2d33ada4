package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type stubTimetableStore struct {
	mu       sync.Mutex
	courses  []models.Course
	faculty  []models.Faculty
	rooms    []models.Room
	entries  []models.TimetableEntry
	listErr  error
	saveErr  error
	clearErr error

	replaceCalls int
	listCalls    int
	// When set, ReplaceEntries signals entered and waits for release.
	entered chan struct{}
	release chan struct{}
}

func (s *stubTimetableStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses, s.listErr
}

func (s *stubTimetableStore) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	return s.faculty, nil
}

func (s *stubTimetableStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms, nil
}

func (s *stubTimetableStore) ListEntries(ctx context.Context) ([]models.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return s.entries, nil
}

func (s *stubTimetableStore) ReplaceEntries(ctx context.Context, entries []models.TimetableEntry) error {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = append([]models.TimetableEntry(nil), entries...)
	return nil
}

func (s *stubTimetableStore) DeleteAllEntries(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	}
}

func newTimetableServiceForTest(store *stubTimetableStore, cacheRepo CacheRepository) *TimetableService {
	var cache *CacheService
	if cacheRepo != nil {
		cache = NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	}
	engine := scheduler.New(scheduler.WithIDGenerator(sequentialIDs()))
	return NewTimetableService(store, engine, cache, NewMetricsService(), nil, zap.NewNop(), TimetableConfig{CacheTTL: time.Minute})
}

func fullStore() *stubTimetableStore {
	return &stubTimetableStore{courses: sampleCourses(), faculty: sampleFaculty(), rooms: sampleRooms()}
}

func TestTimetableServiceStatusStartsUninitialized(t *testing.T) {
	svc := newTimetableServiceForTest(fullStore(), nil)

	status := svc.Status()

	assert.Equal(t, dto.StateUninitialized, status.State)
	assert.False(t, status.IsGenerating)
	assert.False(t, status.IsClearing)
	assert.False(t, status.IsSaving)
}

func TestTimetableServiceLoad(t *testing.T) {
	store := fullStore()
	store.entries = []models.TimetableEntry{{ID: "e1", CourseID: "c1", FacultyID: "f2", RoomID: "r1", TimeSlotID: 1}}
	svc := newTimetableServiceForTest(store, nil)

	snapshot := svc.Load(context.Background())

	assert.True(t, snapshot.HasData)
	assert.Len(t, snapshot.Courses, 2)
	assert.Len(t, snapshot.Entries, 1)
	assert.Empty(t, snapshot.Notifications)
	assert.Equal(t, dto.StateLoaded, svc.Status().State)
}

func TestTimetableServiceLoadWithoutRoomsHasNoData(t *testing.T) {
	store := fullStore()
	store.rooms = nil
	svc := newTimetableServiceForTest(store, nil)

	snapshot := svc.Load(context.Background())

	assert.False(t, snapshot.HasData)
	assert.NotNil(t, snapshot.Rooms)
	assert.NotNil(t, snapshot.Entries)
}

func TestTimetableServiceLoadFailureReturnsEmptySnapshot(t *testing.T) {
	store := fullStore()
	store.listErr = errors.New("connection refused")
	svc := newTimetableServiceForTest(store, nil)

	snapshot := svc.Load(context.Background())

	require.NotNil(t, snapshot)
	assert.False(t, snapshot.HasData)
	assert.Empty(t, snapshot.Courses)
	assert.NotNil(t, snapshot.Courses)
	assert.Empty(t, snapshot.Faculty)
	assert.Empty(t, snapshot.Rooms)
	assert.Empty(t, snapshot.Entries)
	require.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, appErrors.ErrLoadFailed.Code, snapshot.Notifications[0].Code)
	assert.Equal(t, dto.NotificationError, snapshot.Notifications[0].Level)
}

func TestTimetableServiceLoadServesEntriesFromCache(t *testing.T) {
	store := fullStore()
	store.entries = []models.TimetableEntry{{ID: "e1", CourseID: "c1", FacultyID: "f2", RoomID: "r1", TimeSlotID: 1}}
	cacheRepo := newStubCacheRepo()
	svc := newTimetableServiceForTest(store, cacheRepo)

	first := svc.Load(context.Background())
	second := svc.Load(context.Background())

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, first.Entries[0].ID, second.Entries[0].ID)
	assert.True(t, cacheRepo.has(TimetableEntriesCacheKey))
}

func TestTimetableServiceLoadFallsBackWhenCacheFails(t *testing.T) {
	store := fullStore()
	store.entries = []models.TimetableEntry{{ID: "e1", TimeSlotID: 1}}
	cacheRepo := newStubCacheRepo()
	cacheRepo.getErr = errors.New("redis down")
	svc := newTimetableServiceForTest(store, cacheRepo)

	snapshot := svc.Load(context.Background())

	assert.Len(t, snapshot.Entries, 1)
	assert.Empty(t, snapshot.Notifications)
}

func TestTimetableServiceGenerateSavesEntries(t *testing.T) {
	store := fullStore()
	cacheRepo := newStubCacheRepo()
	svc := newTimetableServiceForTest(store, cacheRepo)
	_ = svc.Load(context.Background())
	require.True(t, cacheRepo.has(TimetableEntriesCacheKey))

	res, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeGenerated, res.Outcome)
	assert.True(t, res.Saved)
	require.Len(t, res.Entries, 2)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, "c1", res.Entries[0].CourseID)
	assert.Equal(t, "f2", res.Entries[0].FacultyID)
	assert.Equal(t, 1, res.Entries[0].TimeSlotID)
	assert.Equal(t, "f1", res.Entries[1].FacultyID)
	assert.Equal(t, 2, res.Entries[1].TimeSlotID)

	assert.Equal(t, 1, store.replaceCalls)
	assert.Len(t, store.entries, 2)
	assert.False(t, cacheRepo.has(TimetableEntriesCacheKey))
	assert.Equal(t, dto.StateLoaded, svc.Status().State)
}

func TestTimetableServiceGenerateMissingData(t *testing.T) {
	store := fullStore()
	store.faculty = nil
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Generate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrMissingData)
	require.NotNil(t, res)
	assert.Equal(t, dto.OutcomeMissingData, res.Outcome)
	assert.Empty(t, res.Entries)
	assert.Zero(t, store.replaceCalls)
}

func TestTimetableServiceGenerateNothingAssignableLeavesStore(t *testing.T) {
	store := fullStore()
	store.courses = []models.Course{{ID: "big", Name: "Huge Lecture", Code: "CS999", Enrollment: 500, DurationHours: 1}}
	store.entries = []models.TimetableEntry{{ID: "old", TimeSlotID: 3}}
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeNothingAssignable, res.Outcome)
	assert.False(t, res.Saved)
	assert.Empty(t, res.Entries)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, scheduler.ReasonNoSuitableRoom, res.Warnings[0].Reason)
	assert.Zero(t, store.replaceCalls)
	assert.Equal(t, "old", store.entries[0].ID)
}

func TestTimetableServiceGenerateSaveFailureKeepsEntries(t *testing.T) {
	store := fullStore()
	store.saveErr = errors.New("insert failed")
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Generate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrSaveFailed)
	require.NotNil(t, res)
	assert.Equal(t, dto.OutcomeSaveFailed, res.Outcome)
	assert.False(t, res.Saved)
	assert.Len(t, res.Entries, 2)
	assert.Equal(t, dto.StateLoaded, svc.Status().State)
}

func TestTimetableServiceGenerateLoadFailure(t *testing.T) {
	store := fullStore()
	store.listErr = errors.New("timeout")
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Generate(context.Background())

	assert.ErrorIs(t, err, appErrors.ErrLoadFailed)
	require.NotNil(t, res)
	assert.Equal(t, dto.OutcomeLoadFailed, res.Outcome)
	assert.Empty(t, res.Entries)
	assert.Equal(t, dto.StateUninitialized, svc.Status().State)
}

func TestTimetableServiceRejectsConcurrentOperations(t *testing.T) {
	store := fullStore()
	store.entered = make(chan struct{})
	store.release = make(chan struct{})
	svc := newTimetableServiceForTest(store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background())
		done <- err
	}()
	<-store.entered

	status := svc.Status()
	assert.Equal(t, dto.StateSaving, status.State)
	assert.True(t, status.IsGenerating)
	assert.True(t, status.IsSaving)

	_, err := svc.Generate(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrOperationInProgress)

	_, err = svc.Clear(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrOperationInProgress)

	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{})
	assert.ErrorIs(t, err, appErrors.ErrOperationInProgress)

	snapshot := svc.Load(context.Background())
	assert.True(t, snapshot.HasData)

	close(store.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.replaceCalls)
	assert.False(t, svc.Status().IsGenerating)
}

func TestTimetableServiceClearIsIdempotent(t *testing.T) {
	store := fullStore()
	store.entries = []models.TimetableEntry{{ID: "e1", TimeSlotID: 1}}
	cacheRepo := newStubCacheRepo()
	svc := newTimetableServiceForTest(store, cacheRepo)

	entries, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	entries, err = svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, store.entries)
	assert.Contains(t, cacheRepo.deleted, TimetableEntriesCacheKey)
}

func TestTimetableServiceClearFailure(t *testing.T) {
	store := fullStore()
	store.clearErr = errors.New("locked")
	svc := newTimetableServiceForTest(store, nil)

	_, err := svc.Clear(context.Background())

	assert.ErrorIs(t, err, appErrors.ErrClearFailed)
	assert.False(t, svc.Status().IsClearing)
}

func TestTimetableServiceSave(t *testing.T) {
	store := fullStore()
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Save(context.Background(), dto.SaveTimetableRequest{Entries: []dto.SaveTimetableEntry{
		{CourseID: "c1", FacultyID: "f2", RoomID: "r1", TimeSlotID: 9},
	}})

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeSaved, res.Outcome)
	assert.True(t, res.Saved)
	require.Len(t, res.Entries, 1)
	require.NotNil(t, res.Entries[0].TimeSlot)
	assert.Equal(t, "Tuesday", res.Entries[0].TimeSlot.Day)
	assert.Len(t, store.entries, 1)
}

func TestTimetableServiceSaveRejectsInvalidEntries(t *testing.T) {
	svc := newTimetableServiceForTest(fullStore(), nil)

	_, err := svc.Save(context.Background(), dto.SaveTimetableRequest{Entries: []dto.SaveTimetableEntry{
		{CourseID: "c1", FacultyID: "f1", RoomID: "r1", TimeSlotID: 41},
	}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{Entries: []dto.SaveTimetableEntry{
		{CourseID: "c1", FacultyID: "f1", RoomID: "r1", TimeSlotID: 2},
		{CourseID: "c2", FacultyID: "f1", RoomID: "r1", TimeSlotID: 2},
	}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestTimetableServiceSaveFailure(t *testing.T) {
	store := fullStore()
	store.saveErr = errors.New("fk violation")
	svc := newTimetableServiceForTest(store, nil)

	res, err := svc.Save(context.Background(), dto.SaveTimetableRequest{Entries: []dto.SaveTimetableEntry{
		{CourseID: "c1", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1},
	}})

	assert.ErrorIs(t, err, appErrors.ErrSaveFailed)
	require.NotNil(t, res)
	assert.Equal(t, dto.OutcomeSaveFailed, res.Outcome)
	assert.Len(t, res.Entries, 1)
}
