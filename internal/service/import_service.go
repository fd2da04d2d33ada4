package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/csvio"
	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

const defaultImportMaxBytes int64 = 1 << 20

type courseBatchWriter interface {
	CreateBatch(ctx context.Context, courses []models.Course) error
}

type facultyBatchWriter interface {
	CreateBatch(ctx context.Context, faculty []models.Faculty) error
}

type roomBatchWriter interface {
	CreateBatch(ctx context.Context, rooms []models.Room) error
}

// ImportService loads catalogue rows from CSV. A file is imported all or nothing.
type ImportService struct {
	courses   courseBatchWriter
	faculty   facultyBatchWriter
	rooms     roomBatchWriter
	validator *validator.Validate
	logger    *zap.Logger
	maxBytes  int64
}

// NewImportService constructs an ImportService.
func NewImportService(courses courseBatchWriter, faculty facultyBatchWriter, rooms roomBatchWriter, validate *validator.Validate, logger *zap.Logger, maxBytes int64) *ImportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = defaultImportMaxBytes
	}
	return &ImportService{courses: courses, faculty: faculty, rooms: rooms, validator: validate, logger: logger, maxBytes: maxBytes}
}

// ImportCourses creates one course per CSV row.
func (s *ImportService) ImportCourses(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	body, err := s.readLimited(r)
	if err != nil {
		return nil, err
	}
	rows, err := csvio.ReadCourses(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed courses csv")
	}
	courses := make([]models.Course, 0, len(rows))
	for i, row := range rows {
		req := row.Request()
		if err := s.validateRow(req, i); err != nil {
			return nil, err
		}
		item := newCourse(req)
		item.ID = rowID(row.ID)
		courses = append(courses, item)
	}
	if err := s.courses.CreateBatch(ctx, courses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import courses")
	}
	s.logger.Info("courses imported", zap.Int("count", len(courses)))
	return &dto.ImportResult{Resource: "courses", Imported: len(courses)}, nil
}

// ImportFaculty creates one faculty member per CSV row.
func (s *ImportService) ImportFaculty(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	body, err := s.readLimited(r)
	if err != nil {
		return nil, err
	}
	rows, err := csvio.ReadFaculty(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed faculty csv")
	}
	faculty := make([]models.Faculty, 0, len(rows))
	for i, row := range rows {
		req := row.Request()
		if err := s.validateRow(req, i); err != nil {
			return nil, err
		}
		item := newFaculty(req)
		item.ID = rowID(row.ID)
		faculty = append(faculty, item)
	}
	if err := s.faculty.CreateBatch(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import faculty")
	}
	s.logger.Info("faculty imported", zap.Int("count", len(faculty)))
	return &dto.ImportResult{Resource: "faculty", Imported: len(faculty)}, nil
}

// ImportRooms creates one room per CSV row.
func (s *ImportService) ImportRooms(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	body, err := s.readLimited(r)
	if err != nil {
		return nil, err
	}
	rows, err := csvio.ReadRooms(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed rooms csv")
	}
	rooms := make([]models.Room, 0, len(rows))
	for i, row := range rows {
		req := row.Request()
		if err := s.validateRow(req, i); err != nil {
			return nil, err
		}
		item := newRoom(req)
		item.ID = rowID(row.ID)
		rooms = append(rooms, item)
	}
	if err := s.rooms.CreateBatch(ctx, rooms); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import rooms")
	}
	s.logger.Info("rooms imported", zap.Int("count", len(rooms)))
	return &dto.ImportResult{Resource: "rooms", Imported: len(rooms)}, nil
}

func (s *ImportService) readLimited(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("upload exceeds %d bytes", s.maxBytes))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "upload contains no rows")
	}
	return bytes.NewReader(data), nil
}

// rowID keeps a file-supplied id only when it is a UUID; anything else is
// replaced by the store.
func rowID(raw string) string {
	id := strings.TrimSpace(raw)
	if !validID(id) {
		return ""
	}
	return id
}

// validateRow reports the 1-based file line, counting the header.
func (s *ImportService) validateRow(req interface{}, index int) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid row on line %d", index+2))
	}
	return nil
}
