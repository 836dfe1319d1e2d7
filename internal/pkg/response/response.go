package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire shape of every failed request. Clients inspect the
// message field opportunistically; success bodies are the plain resource.
type ErrorBody struct {
	Message string `json:"message"`
}

// Message is the body of operations with no resource to return
// (for example a successful delete).
type Message struct {
	Message string `json:"message"`
}

// JSON sends a resource (or resource list) verbatim as the response body.
func JSON(c *gin.Context, status int, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string) {
	c.Abort()
	c.JSON(code, ErrorBody{Message: message})
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
