package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type timetableStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListEntries(ctx context.Context) ([]models.TimetableEntry, error)
	ReplaceEntries(ctx context.Context, entries []models.TimetableEntry) error
	DeleteAllEntries(ctx context.Context) error
}

type assignmentEngine interface {
	Generate(courses []models.Course, faculty []models.Faculty, rooms []models.Room) (scheduler.Result, error)
}

// TimetableConfig tunes the coordinator.
type TimetableConfig struct {
	CacheTTL time.Duration
}

// TimetableService coordinates loading, generating, saving and clearing the
// timetable. At most one mutating operation runs at a time; a second one is
// rejected rather than queued.
type TimetableService struct {
	store     timetableStore
	engine    assignmentEngine
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableConfig

	mu     sync.Mutex
	op     dto.CoordinatorState
	phase  dto.CoordinatorState
	loaded bool
}

// NewTimetableService constructs the coordinator around an injected store.
func NewTimetableService(store timetableStore, engine assignmentEngine, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg TimetableConfig) *TimetableService {
	if engine == nil {
		engine = scheduler.New()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		store:     store,
		engine:    engine,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

type timetableInputs struct {
	courses []models.Course
	faculty []models.Faculty
	rooms   []models.Room
	entries []models.TimetableEntry
}

// Load returns every collection. It never fails: a store error yields empty
// collections and a LOAD_FAILED notification.
func (s *TimetableService) Load(ctx context.Context) *dto.TimetableSnapshot {
	in, err := s.loadInputs(ctx, true)
	if err != nil {
		s.logger.Error("failed to load timetable data", zap.Error(err))
		return &dto.TimetableSnapshot{
			Courses:       []models.Course{},
			Faculty:       []models.Faculty{},
			Rooms:         []models.Room{},
			Entries:       []models.TimetableEntry{},
			Notifications: []dto.Notification{errorNotification(appErrors.ErrLoadFailed)},
		}
	}

	s.markLoaded()
	return &dto.TimetableSnapshot{
		Courses: in.courses,
		Faculty: in.faculty,
		Rooms:   in.rooms,
		Entries: in.entries,
		HasData: len(in.courses) > 0 && len(in.faculty) > 0 && len(in.rooms) > 0,
	}
}

// Entries returns the persisted timetable, from cache when possible.
func (s *TimetableService) Entries(ctx context.Context) ([]models.TimetableEntry, error) {
	var cached []models.TimetableEntry
	if hit, _ := s.cache.Get(ctx, TimetableEntriesCacheKey, &cached); hit {
		return nonNil(cached), nil
	}

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrLoadFailed, err, "")
	}
	entries = nonNil(entries)
	_ = s.cache.Set(ctx, TimetableEntriesCacheKey, entries, s.cfg.CacheTTL)
	s.metrics.SetTimetableEntries(len(entries))
	return entries, nil
}

// Generate runs the assignment engine over the stored catalogue and replaces
// the persisted timetable with the result. When persisting fails the
// generated entries are still returned together with a SAVE_FAILED error.
func (s *TimetableService) Generate(ctx context.Context) (*dto.GenerationResult, error) {
	if err := s.begin(dto.StateGenerating); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &dto.GenerationResult{Entries: []models.TimetableEntry{}, Warnings: []scheduler.Warning{}}
	defer func() {
		outcome := string(res.Outcome)
		if outcome == "" {
			outcome = "ERROR"
		}
		s.metrics.ObserveGeneration(outcome, time.Since(start))
		s.finish(res.Outcome != dto.OutcomeLoadFailed)
	}()

	in, err := s.loadInputs(ctx, false)
	if err != nil {
		s.logger.Error("failed to load generation inputs", zap.Error(err))
		res.Outcome = dto.OutcomeLoadFailed
		res.Notifications = []dto.Notification{errorNotification(appErrors.ErrLoadFailed)}
		return res, appErrors.WrapAs(appErrors.ErrLoadFailed, err, "")
	}

	result, err := s.engine.Generate(in.courses, in.faculty, in.rooms)
	if err != nil {
		if errors.Is(err, scheduler.ErrMissingData) {
			res.Outcome = dto.OutcomeMissingData
			res.Notifications = []dto.Notification{errorNotification(appErrors.ErrMissingData)}
			return res, appErrors.WrapAs(appErrors.ErrMissingData, err, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate timetable")
	}

	s.logGeneration(result)
	res.Entries = nonNil(result.Entries)
	res.Warnings = nonNil(result.Warnings)

	if len(res.Entries) == 0 {
		res.Outcome = dto.OutcomeNothingAssignable
		res.Notifications = []dto.Notification{{
			Level:   dto.NotificationWarning,
			Code:    string(dto.OutcomeNothingAssignable),
			Message: "no course could be assigned; the stored timetable was left unchanged",
		}}
		return res, nil
	}

	s.enter(dto.StateSaving)
	if err := s.store.ReplaceEntries(ctx, res.Entries); err != nil {
		s.logger.Error("failed to save generated timetable", zap.Int("entries", len(res.Entries)), zap.Error(err))
		res.Outcome = dto.OutcomeSaveFailed
		res.Notifications = append(skippedNotifications(res.Warnings), errorNotification(appErrors.ErrSaveFailed))
		return res, appErrors.WrapAs(appErrors.ErrSaveFailed, err, "")
	}
	s.afterReplace(ctx, len(res.Entries))

	res.Outcome = dto.OutcomeGenerated
	res.Saved = true
	res.Notifications = append([]dto.Notification{{
		Level:   dto.NotificationInfo,
		Code:    string(dto.OutcomeGenerated),
		Message: fmt.Sprintf("generated %d timetable entries", len(res.Entries)),
	}}, skippedNotifications(res.Warnings)...)
	return res, nil
}

// Save replaces the persisted timetable with the supplied entries.
func (s *TimetableService) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.GenerationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	entries, err := entriesFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.begin(dto.StateSaving); err != nil {
		return nil, err
	}
	defer s.finish(true)

	res := &dto.GenerationResult{Entries: entries, Warnings: []scheduler.Warning{}}
	if err := s.store.ReplaceEntries(ctx, entries); err != nil {
		s.logger.Error("failed to save timetable", zap.Int("entries", len(entries)), zap.Error(err))
		res.Outcome = dto.OutcomeSaveFailed
		res.Notifications = []dto.Notification{errorNotification(appErrors.ErrSaveFailed)}
		return res, appErrors.WrapAs(appErrors.ErrSaveFailed, err, "")
	}
	s.afterReplace(ctx, len(entries))

	res.Outcome = dto.OutcomeSaved
	res.Saved = true
	return res, nil
}

// Clear deletes every persisted entry. Clearing an empty timetable succeeds.
func (s *TimetableService) Clear(ctx context.Context) ([]models.TimetableEntry, error) {
	if err := s.begin(dto.StateClearing); err != nil {
		return nil, err
	}
	defer s.finish(true)

	if err := s.store.DeleteAllEntries(ctx); err != nil {
		s.logger.Error("failed to clear timetable", zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrClearFailed, err, "")
	}
	s.afterReplace(ctx, 0)
	return []models.TimetableEntry{}, nil
}

// Status reports the coordinator phase and in-flight flags.
func (s *TimetableService) Status() dto.CoordinatorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := dto.StateUninitialized
	if s.loaded {
		state = dto.StateLoaded
	}
	if s.phase != "" {
		state = s.phase
	}
	return dto.CoordinatorStatus{
		State:        state,
		IsGenerating: s.op == dto.StateGenerating,
		IsClearing:   s.op == dto.StateClearing,
		IsSaving:     s.phase == dto.StateSaving,
	}
}

func (s *TimetableService) begin(op dto.CoordinatorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.op != "" {
		return appErrors.Clone(appErrors.ErrOperationInProgress, fmt.Sprintf("timetable is busy %s", strings.ToLower(string(s.op))))
	}
	s.op = op
	s.phase = op
	return nil
}

func (s *TimetableService) enter(phase dto.CoordinatorState) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

func (s *TimetableService) finish(loaded bool) {
	s.mu.Lock()
	s.op = ""
	s.phase = ""
	if loaded {
		s.loaded = true
	}
	s.mu.Unlock()
}

func (s *TimetableService) markLoaded() {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
}

func (s *TimetableService) loadInputs(ctx context.Context, withEntries bool) (timetableInputs, error) {
	var in timetableInputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		courses, err := s.store.ListCourses(gctx)
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		in.courses = nonNil(courses)
		return nil
	})
	g.Go(func() error {
		faculty, err := s.store.ListFaculty(gctx)
		if err != nil {
			return fmt.Errorf("list faculty: %w", err)
		}
		in.faculty = nonNil(faculty)
		return nil
	})
	g.Go(func() error {
		rooms, err := s.store.ListRooms(gctx)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		in.rooms = nonNil(rooms)
		return nil
	})
	if withEntries {
		g.Go(func() error {
			entries, err := s.Entries(gctx)
			if err != nil {
				return fmt.Errorf("list entries: %w", err)
			}
			in.entries = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return timetableInputs{}, err
	}
	return in, nil
}

func (s *TimetableService) afterReplace(ctx context.Context, count int) {
	_ = s.cache.Invalidate(ctx, TimetableEntriesCacheKey)
	s.metrics.SetTimetableEntries(count)
}

func (s *TimetableService) logGeneration(result scheduler.Result) {
	for _, w := range result.Warnings {
		s.metrics.RecordGenerationWarning(string(w.Reason))
		s.logger.Warn("course not scheduled",
			zap.String("course_id", w.CourseID),
			zap.String("course_name", w.CourseName),
			zap.String("reason", string(w.Reason)),
			zap.String("detail", w.Message),
		)
	}
	for _, a := range result.Assignments {
		if a.FacultyFallback {
			s.logger.Info("no faculty matched course prefix, using first faculty",
				zap.String("course_id", a.CourseID),
				zap.String("faculty_id", a.FacultyID),
			)
		}
	}
	s.logger.Info("timetable generated",
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Warnings)),
	)
}

func entriesFromRequest(req dto.SaveTimetableRequest) ([]models.TimetableEntry, error) {
	entries := make([]models.TimetableEntry, 0, len(req.Entries))
	seen := make(map[int]struct{}, len(req.Entries))
	for _, e := range req.Entries {
		if _, dup := seen[e.TimeSlotID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("time slot %d is assigned more than once", e.TimeSlotID))
		}
		seen[e.TimeSlotID] = struct{}{}

		entry := models.TimetableEntry{
			ID:         e.ID,
			CourseID:   e.CourseID,
			FacultyID:  e.FacultyID,
			RoomID:     e.RoomID,
			TimeSlotID: e.TimeSlotID,
		}
		if slot, ok := models.TimeSlotByID(e.TimeSlotID); ok {
			entry.TimeSlot = &slot
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func errorNotification(base *appErrors.Error) dto.Notification {
	return dto.Notification{Level: dto.NotificationError, Code: base.Code, Message: base.Message}
}

func skippedNotifications(warnings []scheduler.Warning) []dto.Notification {
	if len(warnings) == 0 {
		return nil
	}
	return []dto.Notification{{
		Level:   dto.NotificationWarning,
		Code:    "COURSES_SKIPPED",
		Message: fmt.Sprintf("%d course(s) could not be scheduled", len(warnings)),
	}}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
