package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/session"
)

// HealthHandler reports liveness plus a coarse view of engine load.
type HealthHandler struct {
	manager *session.Manager
	version string
}

func NewHealthHandler(manager *session.Manager, version string) *HealthHandler {
	return &HealthHandler{manager: manager, version: version}
}

// Check returns the health status of the API.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"version":  h.version,
		"sessions": h.manager.Count(),
	})
}
