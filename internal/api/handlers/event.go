package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/session"
)

type EventHandler struct {
	manager *session.Manager
}

func NewEventHandler(manager *session.Manager) *EventHandler {
	return &EventHandler{manager: manager}
}

// PostEvent feeds one discrete interaction (click, nav, hover) to the
// session's engine and returns any music events it produced.
func (h *EventHandler) PostEvent(c *gin.Context) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := req.toEvent()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": musicEventsToJSON(s.Event(event)),
	})
}
