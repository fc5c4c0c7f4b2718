package response

import (
	"net/http"

	"ojplay/pkg/errors"
	"ojplay/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response represents a standard API response
type Response struct {
	Code      errors.ErrorCode `json:"code"`                 // Error code
	Message   string           `json:"message"`              // Error message
	Data      interface{}      `json:"data,omitempty"`       // Response data (omit if nil)
	Details   interface{}      `json:"details,omitempty"`    // Additional details (omit if nil)
	RequestID string           `json:"request_id,omitempty"` // Request id
}

// Success sends a successful response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      errors.Success,
		Message:   "Success",
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// Error sends an error response
// It automatically extracts error code and message from the error
func Error(c *gin.Context, err error) {
	customErr := errors.GetError(err)

	logger.Error(c.Request.Context(), "request error",
		zap.Int("code", int(customErr.Code)),
		zap.String("message", customErr.Error()),
		zap.Any("details", customErr.Details),
	)

	var details interface{}
	if len(customErr.Details) > 0 {
		details = customErr.Details
	}
	c.JSON(customErr.Code.HTTPStatus(), Response{
		Code:      customErr.Code,
		Message:   customErr.Error(),
		Details:   details,
		RequestID: getRequestID(c),
	})
}

// ErrorWithCode sends an error response with specific error code
func ErrorWithCode(c *gin.Context, code errors.ErrorCode, message string) {
	if message == "" {
		message = code.Message()
	}
	Error(c, errors.New(code).WithMessage(message))
}

// BadRequest sends a 400 bad request error
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, errors.InvalidParams, message)
}

// NotFound sends a 404 not found error
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, errors.NotFound, message)
}

func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
