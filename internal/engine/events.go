package engine

import "math"

// Event pacing gates. Reduced motion widens the interval and cuts the
// effective density to 30% of the baseline.
const (
	minEventIntervalMs        = 100
	reducedEventIntervalMs    = 300
	reducedDensityFactor      = 0.3
	defaultEventDensity       = 0.6
	accentActivityThreshold   = 0.7
	accentProbabilityFraction = 0.1
)

// EventGenerator turns interactions and state changes into discrete musical
// events, gated by a minimum interval and a seeded density draw. The draw
// order is part of the deterministic contract: the density draw happens only
// after the time gate passes.
type EventGenerator struct {
	rng              *SeededRNG
	timeSinceEventMs uint64
	eventDensity     float64
	reducedMotion    bool
	lastSectionID    uint32
	lastHoverID      uint32
	lastChord        ChordDegree
}

// NewEventGenerator creates a generator with the baseline density and the
// normal-motion interval.
func NewEventGenerator(seed uint64) *EventGenerator {
	return &EventGenerator{
		rng:          NewSeededRNG(seed),
		eventDensity: defaultEventDensity,
	}
}

// SetDensity sets the baseline event density, clamped to [0,1]. Lower means
// fewer events.
func (g *EventGenerator) SetDensity(density float64) {
	g.eventDensity = clamp(density, 0, 1)
}

// ApplyPreset adopts the preset's baseline event density.
func (g *EventGenerator) ApplyPreset(preset Preset) {
	g.eventDensity = preset.EventDensity()
}

// ApplyReducedMotion toggles the reduced-motion gating profile. The baseline
// density is kept, so leaving reduced motion restores the previous behavior.
func (g *EventGenerator) ApplyReducedMotion(reduced bool) {
	g.reducedMotion = reduced
}

func (g *EventGenerator) minIntervalMs() uint64 {
	if g.reducedMotion {
		return reducedEventIntervalMs
	}
	return minEventIntervalMs
}

func (g *EventGenerator) effectiveDensity() float64 {
	if g.reducedMotion {
		return g.eventDensity * reducedDensityFactor
	}
	return g.eventDensity
}

// shouldEmitEvent gates on elapsed time, then on a density draw.
func (g *EventGenerator) shouldEmitEvent() bool {
	return g.timeSinceEventMs > g.minIntervalMs() &&
		g.rng.Random() < g.effectiveDensity()
}

// ProcessEvent converts one interaction into musical events. Clicks and
// section navigation always sound; hover plucks are density-gated.
func (g *EventGenerator) ProcessEvent(event InteractionEvent, harmony *HarmonyManager) []MusicEvent {
	var events []MusicEvent

	switch event.Kind {
	case InteractionClick:
		// Position shapes the pluck: higher clicks are louder and lower
		// pitched, central clicks are more salient.
		velocity := 0.5 + (1-event.Y)*0.3
		octave := 3 + int(clamp(math.Round(event.Y*2), 0, 2))
		degree := int(clamp(event.X*5, 0, 4))
		note := harmony.ScaleNote(degree, octave)

		centerDist := (math.Abs(event.X-0.5) + math.Abs(event.Y-0.5)) / 2
		salience := (1 - centerDist) * velocity

		events = append(events, MusicEvent{
			Kind:     EventPluck,
			Note:     note,
			Velocity: velocity,
			Salience: salience,
		})

	case InteractionNav:
		degree := harmony.ChordForSection(event.SectionID)
		g.lastChord = degree
		events = append(events, MusicEvent{
			Kind:     EventPadChord,
			Notes:    harmony.ChordNotes(degree, 3),
			Velocity: 0.4,
			Salience: 0.8,
		})

	case InteractionHoverStart:
		if event.HoverID != g.lastHoverID && g.shouldEmitEvent() {
			note := harmony.ScaleNote(g.rng.RandomInt(0, 5), 4)
			events = append(events, MusicEvent{
				Kind:     EventPluck,
				Note:     note,
				Velocity: 0.2,
				Salience: 0.3,
			})
			g.lastHoverID = event.HoverID
		}

	case InteractionHoverEnd:
		// Silent. Hover tracking is refreshed by Update.
	}

	return events
}

// Update advances pacing state once per frame and emits state-driven events:
// section-change chords, modulation cadences and high-activity accents.
func (g *EventGenerator) Update(dtMs uint64, sectionID, hoverID uint32, activity float64, harmony *HarmonyManager) []MusicEvent {
	g.timeSinceEventMs += dtMs
	var events []MusicEvent

	if sectionID != g.lastSectionID {
		degree := harmony.ChordForSection(sectionID)
		g.lastChord = degree
		events = append(events, MusicEvent{
			Kind:     EventPadChord,
			Notes:    harmony.ChordNotes(degree, 3),
			Velocity: 0.5,
			Salience: 0.9,
		})
		g.lastSectionID = sectionID
		g.timeSinceEventMs = 0
	}

	if toRoot, toMode, changed := harmony.Update(dtMs, activity); changed {
		events = append(events, MusicEvent{
			Kind:     EventCadence,
			ToRoot:   toRoot,
			ToMode:   toMode,
			Salience: 0.7,
		})
	}

	if activity > accentActivityThreshold && g.shouldEmitEvent() &&
		g.rng.Random() < activity*accentProbabilityFraction {
		events = append(events, MusicEvent{
			Kind:     EventAccent,
			Strength: activity,
			Salience: activity * 0.6,
		})
		g.timeSinceEventMs = 0
	}

	g.lastHoverID = hoverID
	return events
}

// TimeSinceEventMs reports milliseconds since the last gated event, for
// diagnostics.
func (g *EventGenerator) TimeSinceEventMs() uint64 {
	return g.timeSinceEventMs
}

// LastChord reports the chord degree most recently sounded, for diagnostics.
func (g *EventGenerator) LastChord() ChordDegree {
	return g.lastChord
}
