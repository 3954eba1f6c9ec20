package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/engine"
	"github.com/Sepzie/SonicUX/internal/logger"
	"github.com/Sepzie/SonicUX/internal/session"
)

// ControlHandler mutates the configuration of a live session. Every endpoint
// validates its whole payload before touching the engine, so a rejected
// request leaves the session exactly as it was.
type ControlHandler struct {
	manager *session.Manager
}

func NewControlHandler(manager *session.Manager) *ControlHandler {
	return &ControlHandler{manager: manager}
}

func (h *ControlHandler) getSession(c *gin.Context) (*session.Session, bool) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	}
	return s, ok
}

type SetPresetRequest struct {
	Preset string `json:"preset" binding:"required"`
}

// SetPreset switches the session's behavior profile.
func (h *ControlHandler) SetPreset(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preset, err := engine.ParsePreset(req.Preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid preset. Allowed: ambient, minimal, dramatic, playful",
		})
		return
	}

	s.SetPreset(preset)

	fields := logger.WithContext(c)
	fields["session_id"] = s.ID
	fields["preset"] = preset.String()
	logger.Info("Session preset changed", fields)

	c.JSON(http.StatusOK, gin.H{
		"preset":  preset.String(),
		"harmony": harmonyToResponse(s.HarmonyState()),
	})
}

type SetScaleRequest struct {
	// Root accepts a note name ("A", "F#", "Bb") or a semitone number.
	// No required tag on Root: the validator counts the numeric root 0 (C)
	// as empty. parseScaleRoot rejects a missing root itself.
	Root any    `json:"root"`
	Mode string `json:"mode" binding:"required"`
}

// parseScaleRoot accepts the two JSON shapes a scale root arrives in: a note
// name string or a bare number (decoded by encoding/json as float64).
func parseScaleRoot(v any) (int, error) {
	switch root := v.(type) {
	case string:
		return engine.ParseNoteName(root)
	case float64:
		return int(root), nil
	default:
		return 0, errors.New("root must be a note name or a number")
	}
}

func parseChordDegrees(names []string) ([]engine.ChordDegree, error) {
	degrees := make([]engine.ChordDegree, 0, len(names))
	for _, name := range names {
		degree, err := engine.ParseChordDegree(name)
		if err != nil {
			return nil, err
		}
		degrees = append(degrees, degree)
	}
	return degrees, nil
}

// SetScale sets the key root and mode directly, bypassing the preset default.
func (h *ControlHandler) SetScale(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	root, err := parseScaleRoot(req.Root)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := engine.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetScale(root, mode)
	c.JSON(http.StatusOK, gin.H{"harmony": harmonyToResponse(s.HarmonyState())})
}

type SetChordPoolRequest struct {
	// Empty or absent degrees restore the default pool (I, IV, V, VI).
	Degrees []string `json:"degrees"`
}

// SetChordPool replaces the chord degrees cycled through on section changes.
func (h *ControlHandler) SetChordPool(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetChordPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	degrees, err := parseChordDegrees(req.Degrees)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetChordPool(degrees)

	names := make([]string, 0, len(degrees))
	for _, degree := range degrees {
		names = append(names, degree.String())
	}
	c.JSON(http.StatusOK, gin.H{"degrees": names})
}

type SetModulationRateRequest struct {
	Rate *float64 `json:"rate" binding:"required"`
}

// SetModulationRate overrides the preset's key modulation rate.
func (h *ControlHandler) SetModulationRate(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetModulationRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate := *req.Rate
	if rate < 0 || rate > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("rate %v outside [0, 1]", rate)})
		return
	}

	s.SetModulationRate(rate)
	c.JSON(http.StatusOK, gin.H{"modulation_rate": rate})
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetEnabled turns the session's engine on or off. A disabled engine returns
// zero output and ignores input without losing its state.
func (h *ControlHandler) SetEnabled(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetEnabled(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

type SetDiagnosticsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetDiagnostics toggles diagnostic output on the session's frames.
func (h *ControlHandler) SetDiagnostics(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetDiagnosticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetDiagnostics(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"diagnostics": *req.Enabled})
}

type SetSectionRequest struct {
	SectionID uint32 `json:"section_id"`
}

// SetSection reports a navigation to the given section and returns the
// resulting music events, typically a pad chord.
func (h *ControlHandler) SetSection(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req SetSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": musicEventsToJSON(s.SetSection(req.SectionID)),
	})
}
