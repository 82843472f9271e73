package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/logger"
)

// envelope is the uniform response body shared by every API endpoint:
// {success, data?, message, errors?}.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HandleError is the single controller-boundary error writer. Domain
// errors keep their carried status, message and field list; anything
// else is logged server-side and surfaced as an opaque 500.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		logger.CtxWithError(c.Request.Context(), "unhandled error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, envelope{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr, "path", c.Request.URL.Path)
		// Do not leak wrapped internals on 5xx
		c.JSON(appErr.HTTPCode, envelope{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(appErr.HTTPCode, envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
