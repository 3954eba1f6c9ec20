package engine

import "math"

// Smoothing coefficients per step. Attack applies when the value rises,
// release when it falls, so parameters react quickly and fade slowly.
const (
	defaultAttack  = 0.05
	defaultRelease = 0.02
	reducedAttack  = 0.02
	reducedRelease = 0.01

	settleThreshold = 0.001
	minCoefficient  = 0.001
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampCoefficient(c float64) float64 {
	return clamp(c, minCoefficient, 1.0)
}

// SmoothedParam moves a value toward its target with a single-pole filter,
// one step per Update call. It converges monotonically and never overshoots.
type SmoothedParam struct {
	current float64
	target  float64
	attack  float64
	release float64
}

// NewSmoothedParam creates a settled parameter with the default coefficients.
func NewSmoothedParam(initial float64) SmoothedParam {
	return NewSmoothedParamCoeffs(initial, defaultAttack, defaultRelease)
}

// NewSmoothedParamCoeffs creates a settled parameter with explicit attack and
// release coefficients, each clamped to [0.001, 1.0].
func NewSmoothedParamCoeffs(initial, attack, release float64) SmoothedParam {
	return SmoothedParam{
		current: initial,
		target:  initial,
		attack:  clampCoefficient(attack),
		release: clampCoefficient(release),
	}
}

// SetTarget sets the value the parameter converges toward.
func (p *SmoothedParam) SetTarget(v float64) { p.target = v }

// Value returns the current smoothed value.
func (p *SmoothedParam) Value() float64 { return p.current }

// Target returns the convergence target.
func (p *SmoothedParam) Target() float64 { return p.target }

// SetAttack sets the rising coefficient, clamped to [0.001, 1.0].
func (p *SmoothedParam) SetAttack(a float64) { p.attack = clampCoefficient(a) }

// SetRelease sets the falling coefficient, clamped to [0.001, 1.0].
func (p *SmoothedParam) SetRelease(r float64) { p.release = clampCoefficient(r) }

// Update advances the value one step toward the target.
func (p *SmoothedParam) Update() {
	coeff := p.release
	if p.target > p.current {
		coeff = p.attack
	}
	p.current += (p.target - p.current) * coeff
}

// IsSettled reports whether the value is within 0.001 of its target.
func (p *SmoothedParam) IsSettled() bool {
	return math.Abs(p.target-p.current) < settleThreshold
}

// ParamSmoother bundles the eight musical control parameters. Initial values
// are each parameter's at-rest level so the first frames start from silence
// rather than sweeping up from zero.
type ParamSmoother struct {
	master     SmoothedParam
	warmth     SmoothedParam
	brightness SmoothedParam
	width      SmoothedParam
	motion     SmoothedParam
	reverb     SmoothedParam
	density    SmoothedParam
	tension    SmoothedParam
}

// NewParamSmoother creates a smoother with every parameter settled at its
// at-rest level and the normal-motion coefficient profile.
func NewParamSmoother() *ParamSmoother {
	return &ParamSmoother{
		master:     NewSmoothedParam(0.55),
		warmth:     NewSmoothedParam(0.3),
		brightness: NewSmoothedParam(0.5),
		width:      NewSmoothedParam(0.0),
		motion:     NewSmoothedParam(0.0),
		reverb:     NewSmoothedParam(0.2),
		density:    NewSmoothedParam(0.0),
		tension:    NewSmoothedParam(0.0),
	}
}

// SetTargets sets all eight convergence targets at once.
func (s *ParamSmoother) SetTargets(p MusicParams) {
	s.master.SetTarget(p.Master)
	s.warmth.SetTarget(p.Warmth)
	s.brightness.SetTarget(p.Brightness)
	s.width.SetTarget(p.Width)
	s.motion.SetTarget(p.Motion)
	s.reverb.SetTarget(p.Reverb)
	s.density.SetTarget(p.Density)
	s.tension.SetTarget(p.Tension)
}

// Update advances every parameter one smoothing step.
func (s *ParamSmoother) Update() {
	s.master.Update()
	s.warmth.Update()
	s.brightness.Update()
	s.width.Update()
	s.motion.Update()
	s.reverb.Update()
	s.density.Update()
	s.tension.Update()
}

// Params returns a snapshot of the current smoothed values.
func (s *ParamSmoother) Params() MusicParams {
	return MusicParams{
		Master:     s.master.Value(),
		Warmth:     s.warmth.Value(),
		Brightness: s.brightness.Value(),
		Width:      s.width.Value(),
		Motion:     s.motion.Value(),
		Reverb:     s.reverb.Value(),
		Density:    s.density.Value(),
		Tension:    s.tension.Value(),
	}
}

// ApplyReducedMotion switches all parameters to the slow coefficient profile.
func (s *ParamSmoother) ApplyReducedMotion() {
	s.setCoefficients(reducedAttack, reducedRelease)
}

// ApplyNormalMotion restores the default coefficient profile.
func (s *ParamSmoother) ApplyNormalMotion() {
	s.setCoefficients(defaultAttack, defaultRelease)
}

func (s *ParamSmoother) setCoefficients(attack, release float64) {
	for _, p := range []*SmoothedParam{
		&s.master, &s.warmth, &s.brightness, &s.width,
		&s.motion, &s.reverb, &s.density, &s.tension,
	} {
		p.SetAttack(attack)
		p.SetRelease(release)
	}
}

// Attack reports the shared attack coefficient. All eight parameters carry
// the same profile.
func (s *ParamSmoother) Attack() float64 { return s.master.attack }

// Release reports the shared release coefficient.
func (s *ParamSmoother) Release() float64 { return s.master.release }

// DecayingValue holds the last real input and decays toward zero while the
// input reads the negative no-data sentinel. Used for pointer coordinates so
// music drifts rather than jumps when the pointer leaves the viewport.
type DecayingValue struct {
	current   float64
	decayRate float64
	lastValid float64
}

// NewDecayingValue creates a decaying value.
func NewDecayingValue(initial, decayRate float64) DecayingValue {
	return DecayingValue{
		current:   initial,
		decayRate: decayRate,
		lastValid: initial,
	}
}

// Update feeds one sample. Negative input is the no-data sentinel and decays
// the current value by one step; real input snaps immediately.
func (d *DecayingValue) Update(v float64) {
	if v < 0 {
		d.current *= 1 - d.decayRate
		return
	}
	d.current = v
	d.lastValid = v
}

// Value returns the current, possibly decayed, value.
func (d *DecayingValue) Value() float64 { return d.current }

// LastValid returns the most recent real input, unaffected by decay.
func (d *DecayingValue) LastValid() float64 { return d.lastValid }
