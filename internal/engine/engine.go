package engine

import "math"

const (
	firstFrameDtMs     = 16 // assume ~60fps before the first real delta
	clickEnergyDecayMs = 450.0
	pointerDecayRate   = 0.02

	harmonyStream = 1
	eventStream   = 2
)

// Engine is the musicalization core. It consumes interaction telemetry and
// produces smoothed musical parameters plus discrete events.
//
// All methods are synchronous and must not be called concurrently; hosts
// that share an engine across goroutines serialize access themselves.
type Engine struct {
	smoother *ParamSmoother
	harmony  *HarmonyManager
	events   *EventGenerator

	// Pointer coordinates survive sentinel frames by decaying slowly
	// instead of snapping to zero.
	pointerX DecayingValue
	pointerY DecayingValue

	lastTMs            uint64
	reducedMotion      bool
	enabled            bool
	diagnosticsEnabled bool
	rawActivity        float64
	clickEnergy        float64
}

// NewEngine creates an engine. The seed fixes both internal random streams,
// so equal seeds and presets replay identically for identical input.
func NewEngine(seed uint64, preset Preset) *Engine {
	events := NewEventGenerator(streamSeed(seed, eventStream))
	events.ApplyPreset(preset)

	return &Engine{
		smoother: NewParamSmoother(),
		harmony:  NewHarmonyManager(streamSeed(seed, harmonyStream), preset),
		events:   events,
		pointerX: NewDecayingValue(0.5, pointerDecayRate),
		pointerY: NewDecayingValue(0.5, pointerDecayRate),
		enabled:  true,
	}
}

// Update processes one interaction frame and returns the musical output.
// Call once per display frame. A disabled engine returns a zero frame and
// mutates nothing.
func (e *Engine) Update(frame InteractionFrame) OutputFrame {
	if !e.enabled {
		return OutputFrame{}
	}

	// Delta time saturates at zero so a clock regression stalls rather
	// than rewinds the engine.
	var dtMs uint64
	if e.lastTMs == 0 {
		dtMs = firstFrameDtMs
	} else if frame.TMs > e.lastTMs {
		dtMs = frame.TMs - e.lastTMs
	}
	e.lastTMs = frame.TMs

	e.decayClickEnergy(dtMs)

	if frame.ReducedMotion != e.reducedMotion {
		e.reducedMotion = frame.ReducedMotion
		if e.reducedMotion {
			e.smoother.ApplyReducedMotion()
		} else {
			e.smoother.ApplyNormalMotion()
		}
		e.events.ApplyReducedMotion(e.reducedMotion)
	}

	e.pointerX.Update(frame.PointerX)
	e.pointerY.Update(frame.PointerY)

	e.rawActivity = e.calculateActivity(frame)

	e.updateParams(frame, e.rawActivity)
	e.smoother.Update()

	events := e.events.Update(dtMs, frame.SectionID, frame.HoverID, e.rawActivity, e.harmony)

	// Tab hidden while the window still has focus: tell the host to mute.
	if !frame.TabFocused && frame.Focus {
		events = append(events, MusicEvent{
			Kind:     EventMute,
			On:       true,
			Salience: 1.0,
		})
	}

	hold := e.computeHold(frame)

	var diagnostics *DiagnosticOutput
	if e.diagnosticsEnabled {
		state := e.harmony.State()
		diagnostics = &DiagnosticOutput{
			Key:              state.Root,
			Mode:             state.Mode,
			Chord:            e.events.LastChord(),
			RawActivity:      e.rawActivity,
			SmoothingAttack:  e.smoother.Attack(),
			SmoothingRelease: e.smoother.Release(),
			TimeSinceEventMs: e.events.TimeSinceEventMs(),
		}
	}

	return OutputFrame{
		Params:      e.smoother.Params(),
		Harmony:     e.harmony.State(),
		Events:      events,
		Hold:        hold,
		Diagnostics: diagnostics,
	}
}

// Event processes a discrete interaction immediately, outside the frame
// cadence. A disabled engine returns nothing.
func (e *Engine) Event(event InteractionEvent) []MusicEvent {
	if !e.enabled {
		return nil
	}

	if event.Kind == InteractionClick {
		weight := 1.0
		if event.Weight != nil {
			weight = clamp(*event.Weight, 0, 1)
		}
		intensity := clamp(0.6+weight*0.4+event.Y*0.1, 0, 1)
		e.clickEnergy = math.Max(e.clickEnergy, intensity)
	}

	return e.events.ProcessEvent(event, e.harmony)
}

// SetSection reports a navigation to the given section, equivalent to a Nav
// interaction event.
func (e *Engine) SetSection(sectionID uint32) []MusicEvent {
	return e.Event(InteractionEvent{
		Kind:      InteractionNav,
		SectionID: sectionID,
	})
}

// SetEnabled turns the engine on or off. While disabled, Update and Event
// return empty output and leave all state untouched.
func (e *Engine) SetEnabled(enabled bool) { e.enabled = enabled }

// Enabled reports whether the engine is active.
func (e *Engine) Enabled() bool { return e.enabled }

// SetDiagnostics toggles diagnostic output on frames.
func (e *Engine) SetDiagnostics(enabled bool) { e.diagnosticsEnabled = enabled }

// SetPreset switches the behavior profile, reconfiguring the harmony mode
// default and the event density. Takes effect immediately.
func (e *Engine) SetPreset(preset Preset) {
	e.harmony.SetPreset(preset)
	e.events.ApplyPreset(preset)
}

// SetScale sets root and mode directly, effective immediately.
func (e *Engine) SetScale(root int, mode Mode) {
	e.harmony.SetScale(root, mode)
}

// SetChordPool replaces the chord degrees used for section navigation.
func (e *Engine) SetChordPool(degrees []ChordDegree) {
	e.harmony.SetChordPool(degrees)
}

// SetModulationRate overrides the preset modulation rate, clamped to [0,1].
func (e *Engine) SetModulationRate(rate float64) {
	e.harmony.SetModulationRate(rate)
}

// HarmonyState returns the current key context.
func (e *Engine) HarmonyState() HarmonyState { return e.harmony.State() }

// Preset returns the active preset.
func (e *Engine) Preset() Preset { return e.harmony.Preset() }

// calculateActivity folds pointer speed and scroll velocity into a single
// 0..1 level, damped to 30% when the window lacks focus.
func (e *Engine) calculateActivity(frame InteractionFrame) float64 {
	raw := frame.PointerSpeed*0.6 + math.Abs(frame.ScrollV)*0.4

	focusMult := 0.3
	if frame.Focus {
		focusMult = 1.0
	}

	return clamp(raw*focusMult, 0, 1)
}

func (e *Engine) decayClickEnergy(dtMs uint64) {
	e.clickEnergy *= math.Exp(-float64(dtMs) / clickEnergyDecayMs)
}

// computeHold derives the sustained note while the pointer is held. It is
// recomputed from scratch every frame; releasing the pointer clears it.
func (e *Engine) computeHold(frame InteractionFrame) *HoldState {
	if !frame.PointerDown {
		return nil
	}

	degreeCount := len(e.harmony.State().Mode.Intervals())
	degree := int(clamp(e.pointerX.Value(), 0, 0.9999) * float64(degreeCount))
	note := e.harmony.ScaleNote(degree, 4)
	velocity := clamp(0.35+clamp(e.pointerY.Value(), 0, 1)*0.65, 0.2, 1.0)

	return &HoldState{Note: note, Velocity: velocity}
}

// updateParams maps the frame and activity level onto the eight parameter
// targets. Smoothing happens afterwards in the caller. Pointer coordinates
// come from the decaying trackers, which mirror the raw frame values while
// the pointer is present.
func (e *Engine) updateParams(frame InteractionFrame, activity float64) {
	width := math.Abs(e.pointerX.Value()-0.5) * 2
	brightness := clamp(e.pointerY.Value(), 0, 1)

	master := 0.55 + activity*0.45

	hoverBoost := 0.0
	if frame.HoverID > 0 {
		hoverBoost = 0.2
	}
	warmth := clamp(0.3+frame.PointerSpeed*0.5+hoverBoost, 0, 1)

	motion := activity * 0.6

	scrollEnergy := clamp(math.Abs(frame.ScrollV), 0, 1)
	reducedBoost := 0.0
	if frame.ReducedMotion {
		reducedBoost = 0.2
	}
	reverb := clamp(0.2+scrollEnergy*0.6+reducedBoost, 0, 1)

	density := activity

	scrollSpike := clamp((scrollEnergy-0.4)/0.6, 0, 1)
	tension := clamp(
		e.harmony.State().Tension*0.35+scrollSpike*0.35+e.clickEnergy*0.4,
		0, 1,
	)

	e.smoother.SetTargets(MusicParams{
		Master:     master,
		Warmth:     warmth,
		Brightness: brightness,
		Width:      width,
		Motion:     motion,
		Reverb:     reverb,
		Density:    density,
		Tension:    tension,
	})
}
