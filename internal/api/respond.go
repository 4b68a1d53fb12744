package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Envelope is the uniform JSON shape of every authenticated response
type Envelope struct {
	Success bool   `json:"success"` // Whether the request succeeded
	Message string `json:"message"` // Human-readable outcome
	Data    any    `json:"data"`    // Payload, null on failure
}

// OK writes a success envelope with the given status and payload
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// Recovery converts panics into the standard envelope so clients never see a
// raw fault
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithField("panic", recovered).Error("Unhandled fault") // Log the fault
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Internal server error",
		})
	})
}
