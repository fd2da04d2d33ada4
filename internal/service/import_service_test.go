package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type stubBatchWriter struct {
	courses []models.Course
	faculty []models.Faculty
	rooms   []models.Room
	err     error
}

func (s *stubBatchWriter) createCourses(ctx context.Context, courses []models.Course) error {
	s.courses = courses
	return s.err
}

type courseWriterFunc func(ctx context.Context, courses []models.Course) error

func (f courseWriterFunc) CreateBatch(ctx context.Context, courses []models.Course) error {
	return f(ctx, courses)
}

type facultyWriterFunc func(ctx context.Context, faculty []models.Faculty) error

func (f facultyWriterFunc) CreateBatch(ctx context.Context, faculty []models.Faculty) error {
	return f(ctx, faculty)
}

type roomWriterFunc func(ctx context.Context, rooms []models.Room) error

func (f roomWriterFunc) CreateBatch(ctx context.Context, rooms []models.Room) error {
	return f(ctx, rooms)
}

func newImportServiceForTest(w *stubBatchWriter, maxBytes int64) *ImportService {
	return NewImportService(
		courseWriterFunc(w.createCourses),
		facultyWriterFunc(func(ctx context.Context, faculty []models.Faculty) error {
			w.faculty = faculty
			return w.err
		}),
		roomWriterFunc(func(ctx context.Context, rooms []models.Room) error {
			w.rooms = rooms
			return w.err
		}),
		nil, nil, maxBytes,
	)
}

func TestImportServiceCourses(t *testing.T) {
	w := &stubBatchWriter{}
	svc := newImportServiceForTest(w, 0)
	body := "name,code,enrollment,duration_hours,description\n" +
		"Intro to Programming,CS101,30,,\n" +
		"Calculus,MA101,45,2,Limits and series\n"

	res, err := svc.ImportCourses(context.Background(), strings.NewReader(body))

	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, "courses", res.Resource)
	require.Len(t, w.courses, 2)
	assert.Equal(t, models.DefaultDurationHours, w.courses[0].DurationHours)
	assert.Equal(t, 2, w.courses[1].DurationHours)
	assert.Equal(t, "Limits and series", w.courses[1].Description)
}

func TestImportServiceRejectsInvalidRow(t *testing.T) {
	w := &stubBatchWriter{}
	svc := newImportServiceForTest(w, 0)
	body := "name,code,enrollment\nIntro,CS101,30\nBroken,,10\n"

	_, err := svc.ImportCourses(context.Background(), strings.NewReader(body))

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Contains(t, err.Error(), "line 3")
	assert.Nil(t, w.courses)
}

func TestImportServiceFacultyAndRooms(t *testing.T) {
	w := &stubBatchWriter{}
	svc := newImportServiceForTest(w, 0)

	_, err := svc.ImportFaculty(context.Background(), strings.NewReader(
		"name,email,department,specializations\nAda,ada@uni.test,Computer Science,\"AI, Compilers\"\n"))
	require.NoError(t, err)
	require.Len(t, w.faculty, 1)
	assert.Equal(t, []string{"AI", "Compilers"}, w.faculty[0].Specializations)

	_, err = svc.ImportRooms(context.Background(), strings.NewReader(
		"name,capacity,building,floor,has_projector,has_computers\nRoom 101,35,,,true,false\nLab,20,Main,2,false,true\n"))
	require.NoError(t, err)
	require.Len(t, w.rooms, 2)
	assert.Equal(t, models.DefaultRoomFloor, w.rooms[0].Floor)
	assert.True(t, w.rooms[0].HasProjector)
	assert.Equal(t, 2, w.rooms[1].Floor)
}

func TestImportServiceLimitsAndEmptyUploads(t *testing.T) {
	w := &stubBatchWriter{}
	svc := newImportServiceForTest(w, 16)

	_, err := svc.ImportCourses(context.Background(), strings.NewReader("name,code,enrollment\nIntro,CS101,30\n"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.ImportRooms(context.Background(), strings.NewReader("   \n"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestImportServiceStoreFailure(t *testing.T) {
	w := &stubBatchWriter{err: errors.New("duplicate key")}
	svc := newImportServiceForTest(w, 0)

	_, err := svc.ImportRooms(context.Background(), strings.NewReader("name,capacity\nRoom,10\n"))

	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestImportServiceKeepsUUIDRowIDs(t *testing.T) {
	w := &stubBatchWriter{}
	svc := newImportServiceForTest(w, 0)
	body := "id,name,code,enrollment\n" +
		"6f1c2a8e-0b4e-4e43-9a52-3c1d2f7b9a10,Intro,CS101,30\n" +
		"c2,Calculus,MA101,45\n"

	_, err := svc.ImportCourses(context.Background(), strings.NewReader(body))

	require.NoError(t, err)
	require.Len(t, w.courses, 2)
	assert.Equal(t, "6f1c2a8e-0b4e-4e43-9a52-3c1d2f7b9a10", w.courses[0].ID)
	assert.Empty(t, w.courses[1].ID)
}
