package engine

import (
	"math"
	"testing"
)

func TestSmoothedParamConvergesWithoutOvershoot(t *testing.T) {
	p := NewSmoothedParam(0)
	p.SetTarget(1)

	prev := p.Value()
	for i := 0; i < 200; i++ {
		p.Update()
		v := p.Value()
		if v < prev {
			t.Fatalf("Value regressed at step %d: %f -> %f", i, prev, v)
		}
		if v > 1 {
			t.Fatalf("Value overshot target at step %d: %f", i, v)
		}
		prev = v
	}

	if !p.IsSettled() {
		t.Errorf("Expected settled after 200 steps, value %f", p.Value())
	}
}

func TestSmoothedParamAttackFasterThanRelease(t *testing.T) {
	rising := NewSmoothedParam(0)
	rising.SetTarget(1)
	falling := NewSmoothedParam(1)
	falling.SetTarget(0)

	for i := 0; i < 10; i++ {
		rising.Update()
		falling.Update()
	}

	risen := rising.Value()
	fallen := 1 - falling.Value()
	if risen <= fallen {
		t.Errorf("Attack should outpace release: rose %f, fell %f", risen, fallen)
	}
}

func TestSmoothedParamCoefficientClamping(t *testing.T) {
	// Attack above 1 clamps to 1: a single step lands on the target.
	p := NewSmoothedParamCoeffs(0, 5.0, -3.0)
	p.SetTarget(0.8)
	p.Update()
	if p.Value() != 0.8 {
		t.Errorf("Attack clamped to 1 should reach target in one step, got %f", p.Value())
	}

	// Release below the floor clamps to 0.001.
	p.SetTarget(0)
	p.Update()
	expected := 0.8 - 0.8*0.001
	if math.Abs(p.Value()-expected) > 1e-12 {
		t.Errorf("Release clamped to 0.001: expected %f, got %f", expected, p.Value())
	}
}

func TestSmoothedParamSettledAtTarget(t *testing.T) {
	p := NewSmoothedParam(0.4)
	if !p.IsSettled() {
		t.Error("Fresh param should be settled at its initial value")
	}

	p.SetTarget(0.402)
	if p.IsSettled() {
		t.Error("Param 0.002 away from target should not be settled")
	}
}

func TestParamSmootherInitialValues(t *testing.T) {
	s := NewParamSmoother()
	params := s.Params()

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"master", params.Master, 0.55},
		{"warmth", params.Warmth, 0.3},
		{"brightness", params.Brightness, 0.5},
		{"width", params.Width, 0.0},
		{"motion", params.Motion, 0.0},
		{"reverb", params.Reverb, 0.2},
		{"density", params.Density, 0.0},
		{"tension", params.Tension, 0.0},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("Initial %s: expected %f, got %f", tt.name, tt.expected, tt.got)
		}
	}
}

func TestParamSmootherProfiles(t *testing.T) {
	s := NewParamSmoother()
	if s.Attack() != 0.05 || s.Release() != 0.02 {
		t.Fatalf("Default profile: expected 0.05/0.02, got %f/%f", s.Attack(), s.Release())
	}

	s.ApplyReducedMotion()
	if s.Attack() != 0.02 || s.Release() != 0.01 {
		t.Errorf("Reduced profile: expected 0.02/0.01, got %f/%f", s.Attack(), s.Release())
	}

	s.ApplyNormalMotion()
	if s.Attack() != 0.05 || s.Release() != 0.02 {
		t.Errorf("Restored profile: expected 0.05/0.02, got %f/%f", s.Attack(), s.Release())
	}
}

func TestParamSmootherTracksTargets(t *testing.T) {
	s := NewParamSmoother()
	s.SetTargets(MusicParams{
		Master: 1, Warmth: 1, Brightness: 1, Width: 1,
		Motion: 1, Reverb: 1, Density: 1, Tension: 1,
	})

	for i := 0; i < 400; i++ {
		s.Update()
	}

	params := s.Params()
	for name, v := range map[string]float64{
		"master": params.Master, "warmth": params.Warmth,
		"brightness": params.Brightness, "width": params.Width,
		"motion": params.Motion, "reverb": params.Reverb,
		"density": params.Density, "tension": params.Tension,
	} {
		if math.Abs(v-1) > 0.001 {
			t.Errorf("Param %s did not converge: %f", name, v)
		}
	}
}

func TestDecayingValueSentinelDecay(t *testing.T) {
	d := NewDecayingValue(0.5, 0.02)

	prev := d.Value()
	for i := 0; i < 10; i++ {
		d.Update(-1)
		if d.Value() >= prev {
			t.Fatalf("Sentinel step %d should decay: %f -> %f", i, prev, d.Value())
		}
		prev = d.Value()
	}

	expected := 0.5 * math.Pow(0.98, 10)
	if math.Abs(d.Value()-expected) > 1e-12 {
		t.Errorf("After 10 sentinel steps: expected %f, got %f", expected, d.Value())
	}
	if d.LastValid() != 0.5 {
		t.Errorf("LastValid should survive decay, got %f", d.LastValid())
	}
}

func TestDecayingValueSnapsToRealInput(t *testing.T) {
	d := NewDecayingValue(0.5, 0.02)
	d.Update(-1)
	d.Update(0.8)

	if d.Value() != 0.8 {
		t.Errorf("Real input should snap immediately, got %f", d.Value())
	}
	if d.LastValid() != 0.8 {
		t.Errorf("LastValid should track real input, got %f", d.LastValid())
	}

	d.Update(-123.0)
	if math.Abs(d.Value()-0.8*0.98) > 1e-12 {
		t.Errorf("Decay resumes from the new value, got %f", d.Value())
	}
}
