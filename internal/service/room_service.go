package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// RoomService orchestrates room catalogue operations.
type RoomService struct {
	repo      roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all rooms in creation order.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "room")
	}
	return room, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	room := newRoom(req)
	if err := s.repo.Create(ctx, &room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return &room, nil
}

// Delete removes a room together with its timetable entries.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "room")
	}
	invalidateTimetable(ctx, s.cache, s.logger)
	return nil
}

func newRoom(req models.CreateRoomRequest) models.Room {
	floor := models.DefaultRoomFloor
	if req.Floor != nil && *req.Floor != 0 {
		floor = *req.Floor
	}
	return models.Room{
		Name:         strings.TrimSpace(req.Name),
		Capacity:     req.Capacity,
		Building:     strings.TrimSpace(req.Building),
		Floor:        floor,
		HasProjector: req.HasProjector,
		HasComputers: req.HasComputers,
	}
}
