package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/config"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type stubCoordinator struct {
	generated int
}

func (s *stubCoordinator) Load(ctx context.Context) *dto.TimetableSnapshot {
	return &dto.TimetableSnapshot{}
}

func (s *stubCoordinator) Generate(ctx context.Context) (*dto.GenerationResult, error) {
	s.generated++
	return &dto.GenerationResult{Outcome: dto.OutcomeGenerated, Saved: true}, nil
}

func (s *stubCoordinator) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.GenerationResult, error) {
	return &dto.GenerationResult{Outcome: dto.OutcomeSaved, Saved: true}, nil
}

func (s *stubCoordinator) Clear(ctx context.Context) ([]models.TimetableEntry, error) {
	return []models.TimetableEntry{}, nil
}

func (s *stubCoordinator) Status() dto.CoordinatorStatus {
	return dto.CoordinatorStatus{State: dto.StateLoaded}
}

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	switch token {
	case "viewer":
		return &models.JWTClaims{Role: models.RoleViewer}, nil
	case "scheduler":
		return &models.JWTClaims{Role: models.RoleScheduler}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type recordingObserver struct {
	paths []string
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.paths = append(r.paths, method+" "+path)
}

func newTestRouter(authEnabled bool, coordinator *stubCoordinator, observer *recordingObserver) http.Handler {
	handlers := Handlers{
		Courses:   handler.NewCourseHandler(nil, nil),
		Faculty:   handler.NewFacultyHandler(nil, nil),
		Rooms:     handler.NewRoomHandler(nil, nil),
		TimeSlots: handler.NewTimeSlotHandler(),
		Timetable: handler.NewTimetableHandler(coordinator, nil),
		Metrics:   handler.NewMetricsHandler(nil, nil),
	}
	opts := Options{Env: config.EnvDevelopment, APIPrefix: "/api/v1", AuthEnabled: authEnabled}
	return New(opts, handlers, Dependencies{Metrics: observer, Auth: stubValidator{}})
}

func serve(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterOpenWhenAuthDisabled(t *testing.T) {
	coordinator := &stubCoordinator{}
	observer := &recordingObserver{}
	r := newTestRouter(false, coordinator, observer)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/time-slots", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/timetable/generate", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/nope", "").Code)

	assert.Equal(t, 1, coordinator.generated)
	assert.Contains(t, observer.paths, "POST /api/v1/timetable/generate")
	assert.Contains(t, observer.paths, "GET unmatched")
}

func TestRouterEnforcesRolesOnMutations(t *testing.T) {
	coordinator := &stubCoordinator{}
	r := newTestRouter(true, coordinator, &recordingObserver{})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/timetable", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/timetable", "forged").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/timetable/status", "viewer").Code)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/api/v1/timetable/generate", "viewer").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodDelete, "/api/v1/timetable", "viewer").Code)
	require.Equal(t, 0, coordinator.generated)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/timetable/generate", "scheduler").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete, "/api/v1/timetable", "scheduler").Code)
	assert.Equal(t, 1, coordinator.generated)
}

func TestRouterServesDocsOutsideProduction(t *testing.T) {
	r := newTestRouter(false, &stubCoordinator{}, &recordingObserver{})
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/docs/doc.json", "").Code)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/v2"}
	cfg.Auth.Enabled = true
	cfg.CORS.AllowedOrigins = []string{"http://a.test"}

	opts := FromConfig(cfg)

	assert.Equal(t, Options{Env: config.EnvProduction, APIPrefix: "/v2", AllowedOrigins: []string{"http://a.test"}, AuthEnabled: true}, opts)
}
