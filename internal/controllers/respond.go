package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/apperrors"
)

// respondError maps the error taxonomy onto HTTP codes and the
// success/error response shape mutation endpoints use.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.NotFound:
		status = http.StatusNotFound
	case apperrors.Conflict:
		status = http.StatusConflict
	case apperrors.InvalidState:
		status = http.StatusUnprocessableEntity
	case apperrors.Unauthorized:
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
