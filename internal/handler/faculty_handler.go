package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type facultyService interface {
	List(ctx context.Context) ([]models.Faculty, error)
	Get(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, req models.CreateFacultyRequest) (*models.Faculty, error)
	Delete(ctx context.Context, id string) error
}

type facultyImporter interface {
	ImportFaculty(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

// FacultyHandler wires faculty services to HTTP routes.
type FacultyHandler struct {
	faculty  facultyService
	importer facultyImporter
}

// NewFacultyHandler constructs a new FacultyHandler.
func NewFacultyHandler(faculty facultyService, importer facultyImporter) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, importer: importer}
}

// List godoc
// @Summary List faculty
// @Tags Faculty
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	faculty, err := h.faculty.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, map[string]interface{}{"total": len(faculty)})
}

// Get godoc
// @Summary Get faculty member detail
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	member, err := h.faculty.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}

// Create godoc
// @Summary Create faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body models.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req models.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	member, err := h.faculty.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Delete godoc
// @Summary Delete faculty member and their timetable entries
// @Tags Faculty
// @Param id path string true "Faculty ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.faculty.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Import godoc
// @Summary Import faculty from CSV
// @Description Columns: name, email, department, specializations (comma separated, quoted).
// @Tags Faculty
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /faculty/import [post]
func (h *FacultyHandler) Import(c *gin.Context) {
	body, err := uploadBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	result, err := h.importer.ImportFaculty(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
