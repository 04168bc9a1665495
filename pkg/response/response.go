package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Success writes {"success": true, "message", "request_id", "timestamp"} merged with the payload keys.
// Payload keys never override the envelope keys.
func Success(ctx *gin.Context, status int, message string, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	body["request_id"] = ctx.GetString("request_id")
	body["timestamp"] = time.Now().UTC()
	ctx.JSON(status, body)
}

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

func newError(ctx *gin.Context, message string, details interface{}) ErrorBody {
	return ErrorBody{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
}

// Error writes an error body with the given status.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, newError(ctx, message, details))
}

// Abort writes an error body and stops the handler chain; used by middleware.
func Abort(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, newError(ctx, message, details))
}
