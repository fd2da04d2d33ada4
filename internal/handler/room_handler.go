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

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

type roomImporter interface {
	ImportRooms(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

// RoomHandler wires room services to HTTP routes.
type RoomHandler struct {
	rooms    roomService
	importer roomImporter
}

// NewRoomHandler constructs a new RoomHandler.
func NewRoomHandler(rooms roomService, importer roomImporter) *RoomHandler {
	return &RoomHandler{rooms: rooms, importer: importer}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"total": len(rooms)})
}

// Get godoc
// @Summary Get room detail
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Create godoc
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body models.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Delete godoc
// @Summary Delete room and its timetable entries
// @Tags Rooms
// @Param id path string true "Room ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Import godoc
// @Summary Import rooms from CSV
// @Description Columns: name, capacity, building, floor, has_projector, has_computers.
// @Tags Rooms
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /rooms/import [post]
func (h *RoomHandler) Import(c *gin.Context) {
	body, err := uploadBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	result, err := h.importer.ImportRooms(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
