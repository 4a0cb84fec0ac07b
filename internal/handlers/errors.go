package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
)

// respondError maps service errors onto HTTP statuses. Anything not in
// the taxonomy is treated as a transient store failure.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicateToken),
		errors.Is(err, apperr.ErrDuplicateApplication),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
