package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/pkg/logger"
)

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondError writes a JSON error with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// RespondErrorDetails writes a JSON error with an extra details string.
func RespondErrorDetails(c *gin.Context, status int, message, details string) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// LogAndRespondError logs the underlying error server-side and returns only
// the generic message to the caller.
func LogAndRespondError(c *gin.Context, status int, err error, message string) {
	logger.L.WithError(err).WithFields(map[string]interface{}{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
		"status":     status,
	}).Error(message)
	c.JSON(status, ErrorResponse{Error: message})
}
