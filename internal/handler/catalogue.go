package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// uploadBody returns the CSV payload of an import request. It accepts either
// a raw text/csv body or a multipart form with a "file" field.
func uploadBody(c *gin.Context) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType != "multipart/form-data" {
		return c.Request.Body, nil
	}
	header, err := c.FormFile("file")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing file field")
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload")
	}
	return file, nil
}
