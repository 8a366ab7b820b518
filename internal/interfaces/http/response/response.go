package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response in the legacy wire shape:
// {"status": 0, "error": "..."} with the HTTP status from the AppError.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"status": 0,
		"error":  appErr.Message,
	})
}

// ErrorWithDetail sends a failure response with a non-sensitive diagnostic
// string alongside the generic message.
func ErrorWithDetail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, gin.H{
		"status":       0,
		"error":        message,
		"error_detail": detail,
	})
}
