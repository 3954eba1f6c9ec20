// Package session tracks live engine instances keyed by session ID.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sepzie/SonicUX/internal/engine"
	"github.com/Sepzie/SonicUX/internal/logger"
)

// ErrLimitReached is returned by Create when the manager already holds the
// configured maximum number of sessions.
var ErrLimitReached = errors.New("session limit reached")

// Manager owns all live sessions. Sessions are held in memory only; an
// expired or deleted session is gone, and clients recreate one with the same
// seed to reproduce its output.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxSessions int
	ttl         time.Duration
}

// Totals aggregates counters across all live sessions.
type Totals struct {
	Sessions int
	Frames   uint64
	Events   uint64
}

// NewManager creates a session manager. maxSessions <= 0 means unlimited;
// ttl <= 0 disables idle expiry.
func NewManager(maxSessions int, ttl time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		ttl:         ttl,
	}
}

// Create registers a new session around a freshly seeded engine and returns
// it. Fails with ErrLimitReached when the manager is full.
func (m *Manager) Create(seed uint64, preset engine.Preset) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrLimitReached
	}

	s := newSession(uuid.New().String(), seed, preset, time.Now())
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session. Returns false if no such session exists.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Totals sums the frame and event counters across all live sessions.
func (m *Manager) Totals() Totals {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	totals := Totals{Sessions: len(sessions)}
	for _, s := range sessions {
		stats := s.Stats()
		totals.Frames += stats.Frames
		totals.Events += stats.Events
	}
	return totals
}

// Sweep removes sessions idle longer than the TTL and returns how many were
// evicted. A non-positive TTL disables expiry.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	// Collect candidates under the read lock; LastActive takes each
	// session's own lock, which must not nest inside the write lock held
	// against Create/Delete.
	m.mu.RLock()
	expired := make([]string, 0)
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.ttl {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	m.mu.Lock()
	removed := 0
	for _, id := range expired {
		s, ok := m.sessions[id]
		if !ok {
			continue
		}
		// Re-check: the session may have woken up since the scan.
		if now.Sub(s.LastActive()) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	m.mu.Unlock()

	return removed
}

// StartSweeper runs Sweep on the given interval until the context is
// cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.ttl <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := m.Sweep(now); removed > 0 {
					logger.Info("Expired idle sessions", logger.Fields{
						"removed":   removed,
						"remaining": m.Count(),
					})
				}
			}
		}
	}()
}
