package api

import (
	"net/http" // HTTP status codes

	"craveseat/internal/utils" // Uploader interface

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// uploadFromForm reads the multipart "file" field and pushes it to the media
// host. On failure it writes the error response and returns ok=false.
func uploadFromForm(c *gin.Context, up utils.Uploader, folder string) (string, bool) {
	if up == nil {
		Fail(c, http.StatusInternalServerError, "Media host is not configured")
		return "", false
	}
	fileHeader, err := c.FormFile("file") // Multipart file field
	if err != nil {
		Fail(c, http.StatusBadRequest, "Missing file")
		return "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		Fail(c, http.StatusBadRequest, "Could not read file")
		return "", false
	}
	defer file.Close()
	url, err := up.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		// Upstream failure is surfaced to the caller, never retried here
		logrus.WithFields(logrus.Fields{"folder": folder, "error": err.Error()}).Error("Image upload failed")
		Fail(c, http.StatusInternalServerError, "Image upload failed")
		return "", false
	}
	return url, true
}
