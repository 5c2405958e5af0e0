package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbook/booking-api/pkg/errors"
)

// RespondWithMessage sends a bare message payload. The booking endpoints keep
// this legacy shape for compatibility with existing clients.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// RespondWithErrorMessage sends a bare error payload.
func RespondWithErrorMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithError maps an error to an HTTP response.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		RespondWithErrorMessage(c, appErr.Status, appErr.Message)
		return
	}
	RespondWithErrorMessage(c, http.StatusInternalServerError, "internal server error")
}
