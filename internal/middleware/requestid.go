package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request id.
const RequestIDHeader = "X-Request-ID"

// ContextRequestID is the gin context key for the request id.
const ContextRequestID = "request_id"

// RequestID assigns every request a UUID, honoring one supplied by the
// caller, and reflects it in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
