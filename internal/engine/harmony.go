package engine

import (
	"fmt"
	"strings"
)

// Preset names a behavior profile: default mode, how often the key
// modulates, how high tension may drift and how busy the event layer is.
// Presets are pure configuration; all runtime state lives in the managers.
type Preset int

const (
	// PresetAmbient is lush and dreamy. Lydian, slow modulation.
	PresetAmbient Preset = iota
	// PresetMinimal is sparse and calm. Pentatonic, very few events.
	PresetMinimal
	// PresetDramatic is tense and cinematic. Dorian, high tension ceiling.
	PresetDramatic
	// PresetPlayful is bright and bouncy. Major pentatonic, quick changes.
	PresetPlayful
)

type presetProfile struct {
	mode           Mode
	modulationRate float64
	tensionCeiling float64
	eventDensity   float64
}

var presetProfiles = [...]presetProfile{
	PresetAmbient:  {ModeLydian, 0.10, 0.5, 0.6},
	PresetMinimal:  {ModePentatonicMajor, 0.05, 0.3, 0.3},
	PresetDramatic: {ModeDorian, 0.20, 0.9, 0.8},
	PresetPlayful:  {ModePentatonicMajor, 0.30, 0.4, 1.0},
}

var presetNames = [...]string{"ambient", "minimal", "dramatic", "playful"}

func (p Preset) profile() presetProfile {
	if int(p) < 0 || int(p) >= len(presetProfiles) {
		return presetProfiles[PresetAmbient]
	}
	return presetProfiles[p]
}

// DefaultMode returns the mode the preset starts in.
func (p Preset) DefaultMode() Mode { return p.profile().mode }

// ModulationRate returns how eagerly the preset changes key, 0..1.
func (p Preset) ModulationRate() float64 { return p.profile().modulationRate }

// TensionCeiling returns the upper bound tension drifts toward, 0..1.
func (p Preset) TensionCeiling() float64 { return p.profile().tensionCeiling }

// EventDensity returns the baseline probability gate for generated events.
func (p Preset) EventDensity() float64 { return p.profile().eventDensity }

func (p Preset) String() string {
	if int(p) >= 0 && int(p) < len(presetNames) {
		return presetNames[p]
	}
	return "unknown"
}

// ParsePreset resolves a preset tag, case insensitive.
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ambient":
		return PresetAmbient, nil
	case "minimal":
		return PresetMinimal, nil
	case "dramatic":
		return PresetDramatic, nil
	case "playful":
		return PresetPlayful, nil
	default:
		return PresetAmbient, fmt.Errorf("unknown preset %q", name)
	}
}

const (
	initialTension     = 0.3
	tensionLerpStep    = 0.1
	modulationWindowMs = 10000.0
)

// Common modulation targets relative to the current root: up a fifth, up a
// fourth, relative major/minor, up a minor third.
var modulationSteps = [...]int{7, 5, 9, 3}

var defaultChordPool = []ChordDegree{DegreeI, DegreeIV, DegreeV, DegreeVI}

// HarmonyManager owns the key context: root, mode, tension, the chord pool
// and the modulation cooldown. All randomness comes from its own seeded
// stream so harmonic drift is reproducible.
type HarmonyManager struct {
	state                  HarmonyState
	preset                 Preset
	modulationRateOverride *float64
	chordPool              []ChordDegree
	timeSinceModulationMs  uint64
	rng                    *SeededRNG
}

// NewHarmonyManager creates a manager rooted at C in the preset's default
// mode with tension 0.3.
func NewHarmonyManager(seed uint64, preset Preset) *HarmonyManager {
	return &HarmonyManager{
		state: HarmonyState{
			Root:    0,
			Mode:    preset.DefaultMode(),
			Tension: initialTension,
		},
		preset:    preset,
		chordPool: defaultChordPool,
		rng:       NewSeededRNG(seed),
	}
}

// State returns the current harmonic state.
func (h *HarmonyManager) State() HarmonyState { return h.state }

// Preset returns the active preset.
func (h *HarmonyManager) Preset() Preset { return h.preset }

// SetPreset switches the profile and resets the mode to the preset default.
// Root and any modulation rate override stay in force.
func (h *HarmonyManager) SetPreset(preset Preset) {
	h.preset = preset
	h.state.Mode = preset.DefaultMode()
}

// SetScale sets root and mode directly. Root is stored as a pitch class.
func (h *HarmonyManager) SetScale(root int, mode Mode) {
	h.state.Root = ((root % 12) + 12) % 12
	h.state.Mode = mode
}

// SetChordPool replaces the degrees section navigation draws chords from.
// An empty pool restores the default I IV V VI.
func (h *HarmonyManager) SetChordPool(degrees []ChordDegree) {
	if len(degrees) == 0 {
		h.chordPool = defaultChordPool
		return
	}
	pool := make([]ChordDegree, len(degrees))
	copy(pool, degrees)
	h.chordPool = pool
}

// SetModulationRate overrides the preset modulation rate, clamped to [0,1].
func (h *HarmonyManager) SetModulationRate(rate float64) {
	r := clamp(rate, 0, 1)
	h.modulationRateOverride = &r
}

// Update advances tension toward activity*ceiling and occasionally modulates
// the key. Returns the new root and mode with changed=true when a modulation
// occurred this step. The tension step is a fixed 0.1 per call regardless of
// dt; hosts drive updates at frame rate, which keeps the drift stable.
func (h *HarmonyManager) Update(dtMs uint64, activity float64) (int, Mode, bool) {
	h.timeSinceModulationMs += dtMs

	targetTension := activity * h.preset.TensionCeiling()
	h.state.Tension = lerp(h.state.Tension, targetTension, tensionLerpStep)

	rate := h.preset.ModulationRate()
	if h.modulationRateOverride != nil {
		rate = *h.modulationRateOverride
	}
	thresholdMs := uint64(modulationWindowMs / (rate + 0.01))

	if h.timeSinceModulationMs > thresholdMs && h.rng.Random() < rate {
		h.timeSinceModulationMs = 0
		h.state.Root = h.pickModulationTarget()
		return h.state.Root, h.state.Mode, true
	}

	return 0, ModeMajor, false
}

// pickModulationTarget chooses a musically sensible new root.
func (h *HarmonyManager) pickModulationTarget() int {
	step := modulationSteps[h.rng.RandomInt(0, len(modulationSteps))]
	return (h.state.Root + step) % 12
}

// ScaleNote returns the MIDI note for a scale degree in the given octave.
// Degrees wrap around the scale length; octaves are not clamped.
func (h *HarmonyManager) ScaleNote(degree, octave int) int {
	intervals := h.state.Mode.Intervals()
	n := len(intervals)
	return h.state.Root + intervals[((degree%n)+n)%n] + octave*12
}

// ChordNotes builds the triad on a scale degree by stacking thirds, as MIDI
// notes over the given octave.
func (h *HarmonyManager) ChordNotes(degree ChordDegree, octave int) []int {
	intervals := h.state.Mode.Intervals()
	n := len(intervals)
	idx := int(degree)

	root := intervals[idx%n]
	third := intervals[(idx+2)%n]
	fifth := intervals[(idx+4)%n]

	base := h.state.Root + octave*12
	return []int{base + root, base + third, base + fifth}
}

// ChordForSection maps a section to a chord degree from the pool. The
// default pool gives section 0 the I, 1 the IV, 2 the V and 3 the VI.
func (h *HarmonyManager) ChordForSection(sectionID uint32) ChordDegree {
	return h.chordPool[int(sectionID)%len(h.chordPool)]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
