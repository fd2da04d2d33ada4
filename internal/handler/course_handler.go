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

type courseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, req models.CreateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseImporter interface {
	ImportCourses(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

// CourseHandler wires course services to HTTP routes.
type CourseHandler struct {
	courses  courseService
	importer courseImporter
}

// NewCourseHandler constructs a new CourseHandler.
func NewCourseHandler(courses courseService, importer courseImporter) *CourseHandler {
	return &CourseHandler{courses: courses, importer: importer}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"total": len(courses)})
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Delete godoc
// @Summary Delete course and its timetable entries
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Import godoc
// @Summary Import courses from CSV
// @Description Columns: name, code, enrollment, duration_hours, description.
// @Tags Courses
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/import [post]
func (h *CourseHandler) Import(c *gin.Context) {
	body, err := uploadBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	result, err := h.importer.ImportCourses(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
