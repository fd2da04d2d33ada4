package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type timetableCoordinator interface {
	Load(ctx context.Context) *dto.TimetableSnapshot
	Generate(ctx context.Context) (*dto.GenerationResult, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.GenerationResult, error)
	Clear(ctx context.Context) ([]models.TimetableEntry, error)
	Status() dto.CoordinatorStatus
}

type timetableExporter interface {
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
}

// TimetableHandler exposes the timetable coordinator over HTTP.
type TimetableHandler struct {
	coordinator timetableCoordinator
	exporter    timetableExporter
}

// NewTimetableHandler constructs a TimetableHandler.
func NewTimetableHandler(coordinator timetableCoordinator, exporter timetableExporter) *TimetableHandler {
	return &TimetableHandler{coordinator: coordinator, exporter: exporter}
}

// Load godoc
// @Summary Load courses, faculty, rooms and the persisted timetable
// @Description Never fails; a storage error yields empty collections and a LOAD_FAILED notification.
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.TimetableSnapshot}
// @Router /timetable [get]
func (h *TimetableHandler) Load(c *gin.Context) {
	snapshot := h.coordinator.Load(c.Request.Context())
	response.JSON(c, http.StatusOK, snapshot, map[string]interface{}{"entries": len(snapshot.Entries)})
}

// Status godoc
// @Summary Coordinator state and in-flight flags
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.CoordinatorStatus}
// @Router /timetable/status [get]
func (h *TimetableHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.coordinator.Status())
}

// Generate godoc
// @Summary Generate and persist a new timetable
// @Description When saving fails the generated entries are returned in data alongside the error.
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.GenerationResult}
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 500 {object} response.Envelope{data=dto.GenerationResult}
// @Failure 503 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	result, err := h.coordinator.Generate(c.Request.Context())
	respondGeneration(c, result, err)
}

// Save godoc
// @Summary Replace the persisted timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Entries to persist"
// @Success 200 {object} response.Envelope{data=dto.GenerationResult}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /timetable [put]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	result, err := h.coordinator.Save(c.Request.Context(), req)
	respondGeneration(c, result, err)
}

// Clear godoc
// @Summary Delete every timetable entry
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /timetable [delete]
func (h *TimetableHandler) Clear(c *gin.Context) {
	entries, err := h.coordinator.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Export godoc
// @Summary Download the persisted timetable
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), xlsx or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func respondGeneration(c *gin.Context, result *dto.GenerationResult, err error) {
	switch {
	case err != nil && result != nil:
		response.Partial(c, result, err)
	case err != nil:
		response.Error(c, err)
	default:
		response.JSON(c, http.StatusOK, result)
	}
}
