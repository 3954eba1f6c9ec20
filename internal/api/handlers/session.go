package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/api/middleware"
	"github.com/Sepzie/SonicUX/internal/config"
	"github.com/Sepzie/SonicUX/internal/engine"
	"github.com/Sepzie/SonicUX/internal/logger"
	"github.com/Sepzie/SonicUX/internal/metrics"
	"github.com/Sepzie/SonicUX/internal/session"
)

type SessionHandler struct {
	manager *session.Manager
	cfg     *config.Config
	cw      *metrics.Client
}

func NewSessionHandler(manager *session.Manager, cfg *config.Config, cw *metrics.Client) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		cfg:     cfg,
		cw:      cw,
	}
}

type CreateSessionRequest struct {
	Seed        *uint64 `json:"seed"`        // defaults to DEFAULT_SEED
	Preset      string  `json:"preset"`      // defaults to DEFAULT_PRESET
	Diagnostics bool    `json:"diagnostics"` // start with diagnostic output on
}

// CreateSession starts a new engine session and returns its ID. Equal seeds
// and presets produce engines that replay identically.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	// An empty body creates a session with all defaults.
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	presetName := req.Preset
	if presetName == "" {
		presetName = h.cfg.DefaultPreset
	}
	preset, err := engine.ParsePreset(presetName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid preset. Allowed: ambient, minimal, dramatic, playful",
		})
		return
	}

	seed := h.cfg.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	s, err := h.manager.Create(seed, preset)
	if err != nil {
		if errors.Is(err, session.ErrLimitReached) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Session limit reached"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	if req.Diagnostics || h.cfg.Diagnostics {
		s.SetDiagnostics(true)
	}

	fields := logger.Fields{
		"session_id": s.ID,
		"preset":     preset.String(),
		"seed":       s.Seed,
	}
	if userID, ok := middleware.GetUserIDFromGateway(c); ok {
		fields["user_id"] = userID
	}
	logger.Info("Session created", fields)

	if h.cw != nil {
		h.cw.RecordSessionCount(h.manager.Count())
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"seed":       s.Seed,
		"preset":     preset.String(),
		"harmony":    harmonyToResponse(s.HarmonyState()),
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// GetSession returns a snapshot of one session's configuration and counters.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	stats := s.Stats()
	c.JSON(http.StatusOK, gin.H{
		"session_id": s.ID,
		"seed":       s.Seed,
		"preset":     s.Preset().String(),
		"enabled":    s.Enabled(),
		"harmony":    harmonyToResponse(s.HarmonyState()),
		"stats": gin.H{
			"frames":      stats.Frames,
			"events":      stats.Events,
			"created_at":  stats.CreatedAt.UTC().Format(time.RFC3339),
			"last_active": stats.LastActive.UTC().Format(time.RFC3339),
		},
	})
}

// DeleteSession removes a session. Its engine state is not recoverable.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if !h.manager.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	fields := logger.WithContext(c)
	fields["session_id"] = id
	logger.Info("Session deleted", fields)

	if h.cw != nil {
		h.cw.RecordSessionCount(h.manager.Count())
	}

	c.Status(http.StatusNoContent)
}
