package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/model"
)

// handleError maps service errors to HTTP responses. Every named failure
// kind stays distinguishable for the caller; nothing is swallowed.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrStorageUnavailable), errors.Is(err, model.ErrStorageDeleteFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrRoleUpdateFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
