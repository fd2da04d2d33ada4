package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Partial sends data together with an error, for operations that produced a
// usable result but failed a later step.
func Partial(c *gin.Context, data interface{}, err error, meta ...map[string]interface{}) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	envelope := Envelope{Data: data, Error: appErr}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(appErr.Status, envelope)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
