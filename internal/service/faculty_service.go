package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type facultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, member *models.Faculty) error
	Delete(ctx context.Context, id string) error
}

// FacultyService orchestrates faculty catalogue operations.
type FacultyService struct {
	repo      facultyRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(repo facultyRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all faculty in creation order.
func (s *FacultyService) List(ctx context.Context) ([]models.Faculty, error) {
	faculty, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	return faculty, nil
}

// Get returns a faculty member by id.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.Faculty, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "faculty member")
	}
	return member, nil
}

// Create registers a new faculty member.
func (s *FacultyService) Create(ctx context.Context, req models.CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	member := newFaculty(req)
	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty member")
	}
	return &member, nil
}

// Delete removes a faculty member together with their timetable entries.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "faculty member")
	}
	invalidateTimetable(ctx, s.cache, s.logger)
	return nil
}

func newFaculty(req models.CreateFacultyRequest) models.Faculty {
	return models.Faculty{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Department:      strings.TrimSpace(req.Department),
		Specializations: models.SplitSpecializations(req.Specializations),
	}
}
