package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Sepzie/SonicUX/internal/api/middleware"
	"github.com/Sepzie/SonicUX/internal/engine"
	"github.com/Sepzie/SonicUX/internal/logger"
	"github.com/Sepzie/SonicUX/internal/metrics"
	"github.com/Sepzie/SonicUX/internal/session"
)

const (
	streamWriteWait = 10 * time.Second

	// Clients push frames at UI cadence, so a quiet connection is a dead
	// one. Backgrounded tabs that want to keep the stream open send "ping".
	streamIdleWait = 90 * time.Second

	streamMaxMessageBytes = 4096
)

// StreamHandler drives a session over a WebSocket, the intended transport for
// per-display-frame updates. The client sends type-tagged messages and the
// server answers each one in order on the same connection.
type StreamHandler struct {
	manager  *session.Manager
	cw       *metrics.Client
	upgrader websocket.Upgrader
}

func NewStreamHandler(manager *session.Manager, cw *metrics.Client) *StreamHandler {
	return &StreamHandler{
		manager: manager,
		cw:      cw,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     middleware.OriginChecker(),
		},
	}
}

// streamRequest is the union of every message a client may send. Type selects
// which fields are read; the rest stay at their zero values.
//
//	{"type": "frame", "frame": {...}}
//	{"type": "event", "event": {"type": "click", ...}}
//	{"type": "set_section", "section_id": 3}
//	{"type": "set_preset", "preset": "dramatic"}
//	{"type": "set_scale", "root": "F#", "mode": "lydian"}
//	{"type": "set_chord_pool", "degrees": ["I", "V", "VI"]}
//	{"type": "set_modulation_rate", "rate": 0.5}
//	{"type": "set_enabled", "enabled": false}
//	{"type": "set_diagnostics", "enabled": true}
//	{"type": "ping"}
type streamRequest struct {
	Type string `json:"type"`

	Frame *FrameRequest `json:"frame,omitempty"`
	Event *EventRequest `json:"event,omitempty"`

	SectionID uint32   `json:"section_id,omitempty"`
	Preset    string   `json:"preset,omitempty"`
	Root      any      `json:"root,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	Degrees   []string `json:"degrees,omitempty"`
	Rate      *float64 `json:"rate,omitempty"`
	Enabled   *bool    `json:"enabled,omitempty"`
}

// Stream upgrades the connection and serves the session until the client
// hangs up or the connection goes idle. Replies are written from the read
// loop, so each message sees the engine state its predecessors produced.
func (h *StreamHandler) Stream(c *gin.Context) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		logger.Warn("WebSocket upgrade failed", logger.Fields{
			"session_id": s.ID,
			"error":      err.Error(),
		})
		return
	}
	defer conn.Close()

	conn.SetReadLimit(streamMaxMessageBytes)
	logger.Info("Stream opened", logger.Fields{"session_id": s.ID})

	var (
		started     = time.Now()
		frames      uint64
		musicEvents uint64
	)

	for {
		conn.SetReadDeadline(time.Now().Add(streamIdleWait))

		var req streamRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Stream read failed", logger.Fields{
					"session_id": s.ID,
					"error":      err.Error(),
				})
			}
			break
		}

		resp := h.dispatch(s, req, &frames, &musicEvents)

		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("Stream write failed", logger.Fields{
				"session_id": s.ID,
				"error":      err.Error(),
			})
			break
		}
	}

	duration := time.Since(started)
	logger.LogStreamSession(s.ID, duration, frames, musicEvents, nil)
	sentryMetrics.RecordStreamSession(s.ID, frames, musicEvents, duration)
	if h.cw != nil {
		h.cw.RecordStreamSession(frames, musicEvents, duration)
	}
}

// dispatch applies one client message to the session and builds the reply.
// Invalid messages produce an error reply and leave the session untouched,
// mirroring the HTTP endpoints.
func (h *StreamHandler) dispatch(s *session.Session, req streamRequest, frames, musicEvents *uint64) gin.H {
	switch req.Type {
	case "frame":
		if req.Frame == nil {
			return streamError(`"frame" message needs a frame payload`)
		}
		out := s.Update(req.Frame.toFrame())
		*frames++
		*musicEvents += uint64(len(out.Events))
		resp := outputToJSON(out)
		resp["type"] = "output"
		return resp

	case "event":
		if req.Event == nil {
			return streamError(`"event" message needs an event payload`)
		}
		event, err := req.Event.toEvent()
		if err != nil {
			return streamError(err.Error())
		}
		events := s.Event(event)
		*musicEvents += uint64(len(events))
		return gin.H{"type": "events", "events": musicEventsToJSON(events)}

	case "set_section":
		events := s.SetSection(req.SectionID)
		*musicEvents += uint64(len(events))
		return gin.H{"type": "events", "events": musicEventsToJSON(events)}

	case "set_preset":
		preset, err := engine.ParsePreset(req.Preset)
		if err != nil {
			return streamError(err.Error())
		}
		s.SetPreset(preset)
		return gin.H{
			"type":    "ack",
			"op":      "set_preset",
			"preset":  preset.String(),
			"harmony": harmonyToResponse(s.HarmonyState()),
		}

	case "set_scale":
		if req.Root == nil || req.Mode == "" {
			return streamError(`"set_scale" needs root and mode`)
		}
		root, err := parseScaleRoot(req.Root)
		if err != nil {
			return streamError(err.Error())
		}
		mode, err := engine.ParseMode(req.Mode)
		if err != nil {
			return streamError(err.Error())
		}
		s.SetScale(root, mode)
		return gin.H{
			"type":    "ack",
			"op":      "set_scale",
			"harmony": harmonyToResponse(s.HarmonyState()),
		}

	case "set_chord_pool":
		degrees, err := parseChordDegrees(req.Degrees)
		if err != nil {
			return streamError(err.Error())
		}
		s.SetChordPool(degrees)
		return gin.H{"type": "ack", "op": "set_chord_pool"}

	case "set_modulation_rate":
		if req.Rate == nil {
			return streamError(`"set_modulation_rate" needs a rate`)
		}
		rate := *req.Rate
		if rate < 0 || rate > 1 {
			return streamError(fmt.Sprintf("rate %v outside [0, 1]", rate))
		}
		s.SetModulationRate(rate)
		return gin.H{"type": "ack", "op": "set_modulation_rate", "modulation_rate": rate}

	case "set_enabled":
		if req.Enabled == nil {
			return streamError(`"set_enabled" needs enabled`)
		}
		s.SetEnabled(*req.Enabled)
		return gin.H{"type": "ack", "op": "set_enabled", "enabled": *req.Enabled}

	case "set_diagnostics":
		if req.Enabled == nil {
			return streamError(`"set_diagnostics" needs enabled`)
		}
		s.SetDiagnostics(*req.Enabled)
		return gin.H{"type": "ack", "op": "set_diagnostics", "diagnostics": *req.Enabled}

	case "ping":
		return gin.H{"type": "pong"}
	}

	return streamError(fmt.Sprintf("unknown message type %q", req.Type))
}

func streamError(msg string) gin.H {
	return gin.H{"type": "error", "error": msg}
}
