// internal/middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const requestIDKey = "request_id"

// RequestIDMiddleware mints a ULID per request and echoes it in the
// X-Request-ID response header for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the request's ULID, or "" outside the middleware.
func RequestID(c *gin.Context) string {
	id, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	s, ok := id.(string)
	if !ok {
		return ""
	}
	return s
}
