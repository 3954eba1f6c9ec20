package session

import (
	"sync"
	"time"

	"github.com/Sepzie/SonicUX/internal/engine"
)

// Session binds one engine instance to one client. The engine itself is
// single-threaded, so every call goes through the session mutex; frame
// updates and control changes from different connections serialize here.
type Session struct {
	ID        string
	CreatedAt time.Time
	Seed      uint64

	mu         sync.Mutex
	engine     *engine.Engine
	lastActive time.Time
	frames     uint64
	events     uint64
}

// Stats is a point-in-time snapshot of a session's counters.
type Stats struct {
	Frames     uint64
	Events     uint64
	CreatedAt  time.Time
	LastActive time.Time
}

func newSession(id string, seed uint64, preset engine.Preset, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		Seed:       seed,
		engine:     engine.NewEngine(seed, preset),
		lastActive: now,
	}
}

// Update feeds one interaction frame to the engine and returns its output.
func (s *Session) Update(frame engine.InteractionFrame) engine.OutputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.frames++
	return s.engine.Update(frame)
}

// Event feeds one discrete interaction to the engine.
func (s *Session) Event(event engine.InteractionEvent) []engine.MusicEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.events++
	return s.engine.Event(event)
}

// SetSection reports a navigation, equivalent to a nav interaction event.
func (s *Session) SetSection(sectionID uint32) []engine.MusicEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.events++
	return s.engine.SetSection(sectionID)
}

// SetPreset switches the engine's behavior profile.
func (s *Session) SetPreset(preset engine.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetPreset(preset)
}

// SetScale sets the key root and mode directly.
func (s *Session) SetScale(root int, mode engine.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetScale(root, mode)
}

// SetChordPool replaces the chord degrees used for section navigation.
func (s *Session) SetChordPool(degrees []engine.ChordDegree) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetChordPool(degrees)
}

// SetModulationRate overrides the preset's modulation rate.
func (s *Session) SetModulationRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetModulationRate(rate)
}

// SetEnabled turns the engine on or off.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetEnabled(enabled)
}

// SetDiagnostics toggles diagnostic output on frames.
func (s *Session) SetDiagnostics(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.engine.SetDiagnostics(enabled)
}

// Enabled reports whether the engine is active.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Enabled()
}

// Preset returns the engine's active preset.
func (s *Session) Preset() engine.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Preset()
}

// HarmonyState returns the engine's current key context.
func (s *Session) HarmonyState() engine.HarmonyState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.HarmonyState()
}

// Stats returns the session counters without refreshing activity, so
// monitoring reads never keep an abandoned session alive.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Frames:     s.frames,
		Events:     s.events,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
	}
}

// LastActive returns the time of the most recent frame, event, or control
// change.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}
