package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sepzie/SonicUX/internal/engine"
)

func TestManagerCreateGetDelete(t *testing.T) {
	m := NewManager(10, time.Minute)

	s, err := m.Create(42, engine.PresetAmbient)
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())
}

func TestManagerUniqueIDs(t *testing.T) {
	m := NewManager(0, time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := m.Create(uint64(i), engine.PresetMinimal)
		require.NoError(t, err)
		require.False(t, seen[s.ID], "duplicate session id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestManagerEnforcesLimit(t *testing.T) {
	m := NewManager(2, time.Minute)

	first, err := m.Create(1, engine.PresetAmbient)
	require.NoError(t, err)
	_, err = m.Create(2, engine.PresetAmbient)
	require.NoError(t, err)

	_, err = m.Create(3, engine.PresetAmbient)
	require.ErrorIs(t, err, ErrLimitReached)

	// Freeing a slot unblocks creation.
	m.Delete(first.ID)
	_, err = m.Create(3, engine.PresetAmbient)
	assert.NoError(t, err)
}

func TestManagerZeroLimitIsUnlimited(t *testing.T) {
	m := NewManager(0, time.Minute)

	for i := 0; i < 20; i++ {
		_, err := m.Create(uint64(i), engine.PresetAmbient)
		require.NoError(t, err)
	}
	assert.Equal(t, 20, m.Count())
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(0, time.Minute)

	idle, err := m.Create(1, engine.PresetAmbient)
	require.NoError(t, err)

	// Not yet expired.
	assert.Equal(t, 0, m.Sweep(time.Now().Add(30*time.Second)))
	assert.Equal(t, 1, m.Count())

	// Well past the TTL.
	assert.Equal(t, 1, m.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, m.Count())
	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
}

func TestManagerSweepKeepsActiveSessions(t *testing.T) {
	m := NewManager(0, 200*time.Millisecond)

	stale, err := m.Create(1, engine.PresetAmbient)
	require.NoError(t, err)

	time.Sleep(250 * time.Millisecond)

	fresh, err := m.Create(2, engine.PresetAmbient)
	require.NoError(t, err)
	fresh.Update(engine.InteractionFrame{TMs: 16})

	assert.Equal(t, 1, m.Sweep(time.Now()))

	_, ok := m.Get(stale.ID)
	assert.False(t, ok, "idle session should be evicted")
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok, "recently touched session should survive")
}

func TestManagerSweepDisabledWithoutTTL(t *testing.T) {
	m := NewManager(0, 0)

	_, err := m.Create(1, engine.PresetAmbient)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, m.Count())
}

func TestManagerTotals(t *testing.T) {
	m := NewManager(0, time.Minute)

	a, err := m.Create(1, engine.PresetAmbient)
	require.NoError(t, err)
	b, err := m.Create(2, engine.PresetAmbient)
	require.NoError(t, err)

	for i := uint64(1); i <= 5; i++ {
		a.Update(engine.InteractionFrame{TMs: i * 16, Focus: true, TabFocused: true})
	}
	b.Update(engine.InteractionFrame{TMs: 16, Focus: true, TabFocused: true})
	b.Event(engine.InteractionEvent{Kind: engine.InteractionClick, X: 0.5, Y: 0.5})
	b.SetSection(1)

	totals := m.Totals()
	assert.Equal(t, 2, totals.Sessions)
	assert.Equal(t, uint64(6), totals.Frames)
	assert.Equal(t, uint64(2), totals.Events)
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(0, time.Minute)

	s, err := m.Create(7, engine.PresetPlayful)
	require.NoError(t, err)

	const workers = 8
	const updates = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < updates; i++ {
				s.Update(engine.InteractionFrame{
					TMs:        uint64(w*updates + i + 1),
					Focus:      true,
					TabFocused: true,
				})
				if i%10 == 0 {
					m.Totals()
					m.Get(s.ID)
					m.Sweep(time.Now())
				}
			}
		}(w)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, uint64(workers*updates), stats.Frames)
	assert.Equal(t, 1, m.Count())
}
