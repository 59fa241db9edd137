package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/logging"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *Error      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success:   true,
		Data:      data,
		Timestamp: timeNow().UTC(),
	})
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if apperrors.ShouldLogError(err) {
		logging.Logger().Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "status", status, "err", err)
	}
	c.AbortWithStatusJSON(status, Response{
		Error: &Error{
			Code:    apperrors.GetErrorCode(err),
			Message: apperrors.GetUserMessage(err),
			Field:   errorField(err),
		},
		Timestamp: timeNow().UTC(),
	})
}

// errorField names the request field an invalid-argument error refers to.
func errorField(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return ""
	}
	field, _ := appErr.GetContext("field")
	name, _ := field.(string)
	return name
}

// statusFor maps error types to HTTP status codes.
func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrorTypePermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
