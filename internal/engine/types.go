// Package engine converts UI interaction telemetry into musical control
// parameters and discrete musical events. It is synchronous, allocation-light
// and fully deterministic: the host drives it with one Update per display
// frame, and two engines built with the same seed and preset produce
// identical output for identical input sequences. The package never reads
// clocks, never logs and never starts goroutines; callers own scheduling
// and serialization.
package engine

// InteractionFrame is one sample of interaction telemetry, captured by the
// host once per display frame.
type InteractionFrame struct {
	TMs           uint64  // monotonic timestamp in milliseconds
	ViewportW     int     // viewport width in px
	ViewportH     int     // viewport height in px
	PointerX      float64 // normalized 0..1, negative when no pointer present
	PointerY      float64 // normalized 0..1, negative when no pointer present
	PointerSpeed  float64 // normalized 0..1
	PointerDown   bool
	ScrollY       float64 // normalized document position 0..1
	ScrollV       float64 // signed scroll velocity -1..1
	HoverID       uint32  // hovered element, 0 = none
	SectionID     uint32  // current page section
	Focus         bool    // window focus
	TabFocused    bool    // tab visibility
	ReducedMotion bool    // accessibility preference
}

// HasPointer reports whether the frame carries a real pointer position.
// Negative coordinates are the no-pointer sentinel.
func (f InteractionFrame) HasPointer() bool {
	return f.PointerX >= 0 && f.PointerY >= 0
}

// InteractionKind tags discrete interaction events.
type InteractionKind int

const (
	InteractionClick InteractionKind = iota
	InteractionNav
	InteractionHoverStart
	InteractionHoverEnd
)

func (k InteractionKind) String() string {
	names := [...]string{"click", "nav", "hover_start", "hover_end"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// InteractionEvent is a discrete interaction, delivered out of band from the
// frame stream. Only the fields for the given Kind are meaningful.
type InteractionEvent struct {
	Kind      InteractionKind
	X, Y      float64  // Click position, normalized 0..1
	TargetID  uint32   // Click target
	SectionID uint32   // Nav destination
	HoverID   uint32   // HoverStart / HoverEnd element
	Weight    *float64 // optional influence 0..1, nil means 1.0
}

// MusicEventKind tags discrete musical output events.
type MusicEventKind int

const (
	EventPluck MusicEventKind = iota
	EventPadChord
	EventCadence
	EventAccent
	EventMute
)

func (k MusicEventKind) String() string {
	names := [...]string{"pluck", "pad_chord", "cadence", "accent", "mute"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// MusicEvent is a discrete musical trigger for the host synth layer. Only
// the fields for the given Kind are meaningful. Salience 0..1 lets hosts
// thin out low-importance events under load.
type MusicEvent struct {
	Kind     MusicEventKind
	Note     int     // Pluck: MIDI note number
	Notes    []int   // PadChord: MIDI note numbers
	Velocity float64 // Pluck, PadChord
	ToRoot   int     // Cadence: new root pitch class
	ToMode   Mode    // Cadence: mode after the change
	Strength float64 // Accent
	On       bool    // Mute
	Salience float64
}

// MusicParams is the continuous control surface: eight smoothed parameters,
// each in [0,1], emitted every frame.
type MusicParams struct {
	Master     float64
	Warmth     float64
	Brightness float64
	Width      float64
	Motion     float64
	Reverb     float64
	Density    float64
	Tension    float64
}

// Mode is a scale shape. Interval tables are fixed; presets and SetScale
// choose between them but never redefine them.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
	ModeDorian
	ModeMixolydian
	ModeLydian
	ModePhrygian
	ModePentatonicMajor
	ModePentatonicMinor
)

var modeIntervals = [...][]int{
	ModeMajor:           {0, 2, 4, 5, 7, 9, 11},
	ModeMinor:           {0, 2, 3, 5, 7, 8, 10},
	ModeDorian:          {0, 2, 3, 5, 7, 9, 10},
	ModeMixolydian:      {0, 2, 4, 5, 7, 9, 10},
	ModeLydian:          {0, 2, 4, 6, 7, 9, 11},
	ModePhrygian:        {0, 1, 3, 5, 7, 8, 10},
	ModePentatonicMajor: {0, 2, 4, 7, 9},
	ModePentatonicMinor: {0, 3, 5, 7, 10},
}

var modeNames = [...]string{
	"major", "minor", "dorian", "mixolydian",
	"lydian", "phrygian", "pentatonic_major", "pentatonic_minor",
}

// Intervals returns the pitch-class offsets of the mode from the root.
// The returned slice is shared; callers must not modify it.
func (m Mode) Intervals() []int {
	if int(m) < 0 || int(m) >= len(modeIntervals) {
		return modeIntervals[ModeMajor]
	}
	return modeIntervals[m]
}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ChordDegree is a diatonic scale degree, I through VII.
type ChordDegree int

const (
	DegreeI ChordDegree = iota
	DegreeII
	DegreeIII
	DegreeIV
	DegreeV
	DegreeVI
	DegreeVII
)

var degreeNames = [...]string{"I", "II", "III", "IV", "V", "VI", "VII"}

func (d ChordDegree) String() string {
	if int(d) >= 0 && int(d) < len(degreeNames) {
		return degreeNames[d]
	}
	return "unknown"
}

// HarmonyState is the current key context shared by every note-producing
// component.
type HarmonyState struct {
	Root    int // pitch class 0..11
	Mode    Mode
	Tension float64 // 0..1
}

// HoldState is the sustained note produced while the pointer is held down.
// It is recomputed every frame, never persisted.
type HoldState struct {
	Note     int
	Velocity float64
}

// DiagnosticOutput exposes internal state for debug overlays. Attached to
// OutputFrame only when diagnostics are enabled.
type DiagnosticOutput struct {
	Key              int
	Mode             Mode
	Chord            ChordDegree
	RawActivity      float64
	SmoothingAttack  float64
	SmoothingRelease float64
	TimeSinceEventMs uint64
}

// OutputFrame is everything the engine produces for one Update call.
type OutputFrame struct {
	Params      MusicParams
	Harmony     HarmonyState
	Events      []MusicEvent
	Hold        *HoldState
	Diagnostics *DiagnosticOutput
}
