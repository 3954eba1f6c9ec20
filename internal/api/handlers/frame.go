package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/metrics"
	"github.com/Sepzie/SonicUX/internal/session"
)

// Global metrics instance
var sentryMetrics = metrics.NewSentryMetrics()

type FrameHandler struct {
	manager *session.Manager
	cw      *metrics.Client
}

func NewFrameHandler(manager *session.Manager, cw *metrics.Client) *FrameHandler {
	return &FrameHandler{
		manager: manager,
		cw:      cw,
	}
}

// UpdateFrame feeds one interaction frame through the session's engine and
// returns the resulting musical output. Clients that need per-display-frame
// cadence should prefer the WebSocket stream endpoint.
func (h *FrameHandler) UpdateFrame(c *gin.Context) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req FrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	out := s.Update(req.toFrame())
	duration := time.Since(start)

	sentryMetrics.RecordEngineUpdate(c.Request.Context(), s.ID, duration, len(out.Events))
	if h.cw != nil {
		h.cw.RecordFrameUpdate(duration, len(out.Events))
	}

	c.JSON(http.StatusOK, outputToJSON(out))
}
