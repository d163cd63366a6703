package handler

import (
	"errors"
	"net/http"

	"fixtrack/backend/internal/assignment"
	"fixtrack/backend/internal/gateway"
	"fixtrack/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP requests into the assignment engine and storage.
type Handler struct {
	Engine    *assignment.Engine
	Storage   storage.Storage
	Hub       *gateway.Hub
	JWTSecret []byte
}

func NewHandler(engine *assignment.Engine, s storage.Storage, hub *gateway.Hub, jwtSecret []byte) *Handler {
	return &Handler{
		Engine:    engine,
		Storage:   s,
		Hub:       hub,
		JWTSecret: jwtSecret,
	}
}

// respondError maps engine errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assignment.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, assignment.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, assignment.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
