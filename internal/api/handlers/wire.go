package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/engine"
)

// FrameRequest is the wire form of one interaction frame. Clients send the
// full struct every frame; a hidden pointer is reported as pointer_x = -1,
// pointer_y = -1 rather than by omission.
type FrameRequest struct {
	TMs           uint64  `json:"t_ms"`
	ViewportW     int     `json:"viewport_w"`
	ViewportH     int     `json:"viewport_h"`
	PointerX      float64 `json:"pointer_x"`
	PointerY      float64 `json:"pointer_y"`
	PointerSpeed  float64 `json:"pointer_speed"`
	PointerDown   bool    `json:"pointer_down"`
	ScrollY       float64 `json:"scroll_y"`
	ScrollV       float64 `json:"scroll_v"`
	HoverID       uint32  `json:"hover_id"`
	SectionID     uint32  `json:"section_id"`
	Focus         bool    `json:"focus"`
	TabFocused    bool    `json:"tab_focused"`
	ReducedMotion bool    `json:"reduced_motion"`
}

func (r FrameRequest) toFrame() engine.InteractionFrame {
	return engine.InteractionFrame{
		TMs:           r.TMs,
		ViewportW:     r.ViewportW,
		ViewportH:     r.ViewportH,
		PointerX:      r.PointerX,
		PointerY:      r.PointerY,
		PointerSpeed:  r.PointerSpeed,
		PointerDown:   r.PointerDown,
		ScrollY:       r.ScrollY,
		ScrollV:       r.ScrollV,
		HoverID:       r.HoverID,
		SectionID:     r.SectionID,
		Focus:         r.Focus,
		TabFocused:    r.TabFocused,
		ReducedMotion: r.ReducedMotion,
	}
}

// EventRequest is the wire form of a discrete interaction, tagged by type:
// "click", "nav", "hover_start" or "hover_end".
type EventRequest struct {
	Type      string   `json:"type" binding:"required"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	TargetID  uint32   `json:"target_id"`
	SectionID uint32   `json:"section_id"`
	HoverID   uint32   `json:"hover_id"`
	Weight    *float64 `json:"weight,omitempty"`
}

func (r EventRequest) toEvent() (engine.InteractionEvent, error) {
	var kind engine.InteractionKind
	switch r.Type {
	case "click":
		kind = engine.InteractionClick
	case "nav":
		kind = engine.InteractionNav
	case "hover_start":
		kind = engine.InteractionHoverStart
	case "hover_end":
		kind = engine.InteractionHoverEnd
	default:
		return engine.InteractionEvent{}, fmt.Errorf("unknown event type %q", r.Type)
	}

	return engine.InteractionEvent{
		Kind:      kind,
		X:         r.X,
		Y:         r.Y,
		TargetID:  r.TargetID,
		SectionID: r.SectionID,
		HoverID:   r.HoverID,
		Weight:    r.Weight,
	}, nil
}

// ParamsResponse carries the eight smoothed parameters, all in 0..1.
type ParamsResponse struct {
	Master     float64 `json:"master"`
	Warmth     float64 `json:"warmth"`
	Brightness float64 `json:"brightness"`
	Width      float64 `json:"width"`
	Motion     float64 `json:"motion"`
	Reverb     float64 `json:"reverb"`
	Density    float64 `json:"density"`
	Tension    float64 `json:"tension"`
}

// HarmonyResponse is the current key context.
type HarmonyResponse struct {
	Root    int     `json:"root"`
	Mode    string  `json:"mode"`
	Tension float64 `json:"tension"`
}

func paramsToResponse(p engine.MusicParams) ParamsResponse {
	return ParamsResponse{
		Master:     p.Master,
		Warmth:     p.Warmth,
		Brightness: p.Brightness,
		Width:      p.Width,
		Motion:     p.Motion,
		Reverb:     p.Reverb,
		Density:    p.Density,
		Tension:    p.Tension,
	}
}

func harmonyToResponse(h engine.HarmonyState) HarmonyResponse {
	return HarmonyResponse{
		Root:    h.Root,
		Mode:    h.Mode.String(),
		Tension: h.Tension,
	}
}

// musicEventToJSON serializes one music event as a type-tagged object so
// clients can switch on "type" without probing optional fields.
func musicEventToJSON(ev engine.MusicEvent) gin.H {
	switch ev.Kind {
	case engine.EventPluck:
		return gin.H{
			"type":     "pluck",
			"note":     ev.Note,
			"velocity": ev.Velocity,
			"salience": ev.Salience,
		}
	case engine.EventPadChord:
		return gin.H{
			"type":     "pad_chord",
			"notes":    ev.Notes,
			"velocity": ev.Velocity,
			"salience": ev.Salience,
		}
	case engine.EventCadence:
		return gin.H{
			"type":     "cadence",
			"to_root":  ev.ToRoot,
			"to_mode":  ev.ToMode.String(),
			"salience": ev.Salience,
		}
	case engine.EventAccent:
		return gin.H{
			"type":     "accent",
			"strength": ev.Strength,
			"salience": ev.Salience,
		}
	case engine.EventMute:
		return gin.H{
			"type":     "mute",
			"on":       ev.On,
			"salience": ev.Salience,
		}
	}
	return gin.H{"type": ev.Kind.String(), "salience": ev.Salience}
}

// musicEventsToJSON always yields a non-nil slice so clients see [] rather
// than null on quiet frames.
func musicEventsToJSON(events []engine.MusicEvent) []gin.H {
	out := make([]gin.H, 0, len(events))
	for _, ev := range events {
		out = append(out, musicEventToJSON(ev))
	}
	return out
}

func outputToJSON(out engine.OutputFrame) gin.H {
	resp := gin.H{
		"params":  paramsToResponse(out.Params),
		"harmony": harmonyToResponse(out.Harmony),
		"events":  musicEventsToJSON(out.Events),
	}

	if out.Hold != nil {
		resp["hold"] = gin.H{
			"note":     out.Hold.Note,
			"velocity": out.Hold.Velocity,
		}
	}

	if out.Diagnostics != nil {
		resp["diagnostics"] = gin.H{
			"key":                 out.Diagnostics.Key,
			"mode":                out.Diagnostics.Mode.String(),
			"chord":               out.Diagnostics.Chord.String(),
			"raw_activity":        out.Diagnostics.RawActivity,
			"smoothing_attack":    out.Diagnostics.SmoothingAttack,
			"smoothing_release":   out.Diagnostics.SmoothingRelease,
			"time_since_event_ms": out.Diagnostics.TimeSinceEventMs,
		}
	}

	return resp
}
