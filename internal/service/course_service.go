package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CourseService orchestrates course catalogue operations. Courses are
// immutable once created; edits are delete and recreate.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all courses in creation order.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	return course, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req models.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := newCourse(req)
	if err := s.repo.Create(ctx, &course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return &course, nil
}

// Delete removes a course together with its timetable entries.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "course")
	}
	invalidateTimetable(ctx, s.cache, s.logger)
	return nil
}

func newCourse(req models.CreateCourseRequest) models.Course {
	duration := req.DurationHours
	if duration < 1 {
		duration = models.DefaultDurationHours
	}
	return models.Course{
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.TrimSpace(req.Code),
		Enrollment:    req.Enrollment,
		DurationHours: duration,
		Description:   strings.TrimSpace(req.Description),
	}
}
