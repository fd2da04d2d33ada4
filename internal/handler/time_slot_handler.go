package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/response"
)

// TimeSlotHandler serves the fixed weekly slot catalogue.
type TimeSlotHandler struct{}

// NewTimeSlotHandler constructs a TimeSlotHandler.
func NewTimeSlotHandler() *TimeSlotHandler {
	return &TimeSlotHandler{}
}

// List godoc
// @Summary List the 40 weekly time slots
// @Tags TimeSlots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-slots [get]
func (h *TimeSlotHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.TimeSlots())
}
