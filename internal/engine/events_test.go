package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickGeneratesPluck(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)

	events := gen.ProcessEvent(InteractionEvent{
		Kind:     InteractionClick,
		X:        0.5,
		Y:        0.5,
		TargetID: 1,
	}, harmony)

	require.Len(t, events, 1)
	pluck := events[0]
	assert.Equal(t, EventPluck, pluck.Kind)
	assert.InDelta(t, 0.65, pluck.Velocity, 1e-9)
	assert.InDelta(t, 0.65, pluck.Salience, 1e-9)

	// Center click in ambient lydian: degree 2, octave 4 -> E4 area.
	assert.Equal(t, 52, pluck.Note)
}

func TestClickPositionShapesThePluck(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)

	tests := []struct {
		name     string
		x, y     float64
		note     int
		velocity float64
	}{
		// Lydian over C: intervals 0 2 4 6 7 9 11.
		{"top left is loud and low", 0.0, 0.0, 36, 0.8},
		{"bottom right is soft and high", 0.99, 1.0, 67, 0.5},
		{"top edge keeps octave 3", 0.5, 0.0, 40, 0.8},
		{"bottom edge caps at octave 5", 0.5, 1.0, 64, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := gen.ProcessEvent(InteractionEvent{
				Kind: InteractionClick,
				X:    tt.x,
				Y:    tt.y,
			}, harmony)

			require.Len(t, events, 1)
			assert.Equal(t, tt.note, events[0].Note)
			assert.InDelta(t, tt.velocity, events[0].Velocity, 1e-9)
		})
	}
}

func TestClickSalienceStaysInRange(t *testing.T) {
	gen := NewEventGenerator(7)
	harmony := NewHarmonyManager(7, PresetPlayful)

	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, y := range []float64{0, 0.25, 0.5, 0.75, 1} {
			events := gen.ProcessEvent(InteractionEvent{
				Kind: InteractionClick, X: x, Y: y,
			}, harmony)
			require.Len(t, events, 1)
			assert.GreaterOrEqual(t, events[0].Salience, 0.0)
			assert.LessOrEqual(t, events[0].Salience, 1.0)
		}
	}
}

func TestNavPlaysChordFromPool(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)
	harmony.SetScale(0, ModeMajor)

	events := gen.ProcessEvent(InteractionEvent{
		Kind:      InteractionNav,
		SectionID: 0,
	}, harmony)

	require.Len(t, events, 1)
	chord := events[0]
	assert.Equal(t, EventPadChord, chord.Kind)
	assert.Equal(t, []int{36, 40, 43}, chord.Notes)
	assert.InDelta(t, 0.4, chord.Velocity, 1e-9)
	assert.InDelta(t, 0.8, chord.Salience, 1e-9)

	// Section 2 maps to the V in the default pool.
	events = gen.ProcessEvent(InteractionEvent{
		Kind:      InteractionNav,
		SectionID: 2,
	}, harmony)
	require.Len(t, events, 1)
	assert.Equal(t, []int{43, 47, 38}, events[0].Notes)
}

func TestHoverRequiresNewTargetAndElapsedTime(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.SetDensity(1.0)
	harmony := NewHarmonyManager(42, PresetAmbient)

	// No time elapsed: the 100ms gate blocks emission.
	events := gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 9,
	}, harmony)
	assert.Empty(t, events)

	// Past the gate with density 1.0 a new hover target always plucks.
	gen.Update(150, 0, 0, 0, harmony)
	events = gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 9,
	}, harmony)
	require.Len(t, events, 1)
	assert.Equal(t, EventPluck, events[0].Kind)
	assert.InDelta(t, 0.2, events[0].Velocity, 1e-9)
	assert.InDelta(t, 0.3, events[0].Salience, 1e-9)

	// Same target again: ignored regardless of timing.
	gen.Update(150, 0, 9, 0, harmony)
	events = gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 9,
	}, harmony)
	assert.Empty(t, events)
}

func TestHoverEndIsSilent(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)
	gen.Update(500, 0, 0, 0, harmony)

	events := gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverEnd,
		HoverID: 9,
	}, harmony)
	assert.Empty(t, events)
}

func TestZeroDensitySilencesGatedEvents(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.SetDensity(0)
	harmony := NewHarmonyManager(42, PresetAmbient)

	gen.Update(10_000, 0, 0, 0, harmony)
	events := gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 3,
	}, harmony)
	assert.Empty(t, events, "density 0 never passes the draw")

	// Clicks bypass the density gate entirely.
	events = gen.ProcessEvent(InteractionEvent{
		Kind: InteractionClick, X: 0.5, Y: 0.5,
	}, harmony)
	assert.Len(t, events, 1)
}

func TestSectionChangeEmitsChordOnUpdate(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)
	harmony.SetScale(0, ModeMajor)

	events := gen.Update(16, 1, 0, 0, harmony)
	require.Len(t, events, 1)
	chord := events[0]
	assert.Equal(t, EventPadChord, chord.Kind)
	assert.Equal(t, []int{41, 45, 36}, chord.Notes, "section 1 is the IV")
	assert.InDelta(t, 0.5, chord.Velocity, 1e-9)
	assert.InDelta(t, 0.9, chord.Salience, 1e-9)
	assert.Equal(t, DegreeIV, gen.LastChord())

	// Same section again stays quiet and the timer was reset.
	events = gen.Update(16, 1, 0, 0, harmony)
	assert.Empty(t, events)
	assert.Equal(t, uint64(16), gen.TimeSinceEventMs())
}

func TestModulationSurfacesAsCadence(t *testing.T) {
	gen := NewEventGenerator(42)
	harmony := NewHarmonyManager(42, PresetAmbient)
	harmony.SetModulationRate(1.0)

	// One oversized step blows straight through the modulation cooldown.
	events := gen.Update(20_000, 0, 0, 0, harmony)
	require.Len(t, events, 1)
	cadence := events[0]
	assert.Equal(t, EventCadence, cadence.Kind)
	assert.InDelta(t, 0.7, cadence.Salience, 1e-9)
	assert.Contains(t, []int{7, 5, 9, 3}, cadence.ToRoot)
	assert.Equal(t, ModeLydian, cadence.ToMode)
	assert.Equal(t, harmony.State().Root, cadence.ToRoot)
}

func TestHighActivityEventuallyAccents(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.SetDensity(1.0)
	harmony := NewHarmonyManager(42, PresetAmbient)
	harmony.SetModulationRate(0)

	found := false
	for i := 0; i < 10_000 && !found; i++ {
		for _, ev := range gen.Update(200, 0, 0, 0.9, harmony) {
			if ev.Kind == EventAccent {
				assert.InDelta(t, 0.9, ev.Strength, 1e-9)
				assert.InDelta(t, 0.54, ev.Salience, 1e-9)
				found = true
			}
		}
	}
	assert.True(t, found, "activity 0.9 with density 1.0 should accent eventually")
}

func TestLowActivityNeverAccents(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.SetDensity(1.0)
	harmony := NewHarmonyManager(42, PresetAmbient)
	harmony.SetModulationRate(0)

	for i := 0; i < 1000; i++ {
		for _, ev := range gen.Update(200, 0, 0, 0.7, harmony) {
			require.NotEqual(t, EventAccent, ev.Kind, "activity at the threshold must not accent")
		}
	}
}

func TestReducedMotionWidensTheEventGate(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.SetDensity(1.0)
	harmony := NewHarmonyManager(42, PresetAmbient)
	gen.ApplyReducedMotion(true)

	// 200ms elapsed is enough normally but not under reduced motion.
	gen.Update(200, 0, 0, 0, harmony)
	events := gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 4,
	}, harmony)
	assert.Empty(t, events)

	// Leaving reduced motion restores the baseline density and interval.
	gen.ApplyReducedMotion(false)
	events = gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 4,
	}, harmony)
	require.Len(t, events, 1, "200ms elapsed passes the normal 100ms gate at density 1.0")
}

func TestPresetDensityApplies(t *testing.T) {
	gen := NewEventGenerator(42)
	gen.ApplyPreset(PresetPlayful)
	harmony := NewHarmonyManager(42, PresetPlayful)

	// Playful density is 1.0, so a new hover past the gate always lands.
	gen.Update(150, 0, 0, 0, harmony)
	events := gen.ProcessEvent(InteractionEvent{
		Kind:    InteractionHoverStart,
		HoverID: 2,
	}, harmony)
	assert.Len(t, events, 1)
}
