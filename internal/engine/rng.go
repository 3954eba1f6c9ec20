package engine

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Produces deterministic sequences for reproducible output; the engine gives
// each stochastic component its own stream.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator. Seeds wider
// than 32 bits are folded so the full input range stays significant.
func NewSeededRNG(seed uint64) *SeededRNG {
	s := foldSeed(seed)
	return &SeededRNG{
		state:       s,
		initialSeed: s,
	}
}

// SetSeed sets a new seed and resets the generator state.
func (r *SeededRNG) SetSeed(seed uint64) {
	s := foldSeed(seed)
	r.state = s
	r.initialSeed = s
}

// Reset resets the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Random generates the next random number using the Mulberry32 algorithm.
// Returns a float64 between 0 (inclusive) and 1 (exclusive).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomInt generates a random integer in the specified range [min, max).
func (r *SeededRNG) RandomInt(min, max int) int {
	return int(r.Random()*float64(max-min)) + min
}

// RandomFloat generates a random float in the specified range [min, max).
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

func foldSeed(seed uint64) uint32 {
	return uint32(seed ^ (seed >> 32))
}

// streamSeed derives a per-component seed from the engine seed so the
// harmony and event streams stay decorrelated while remaining reproducible.
func streamSeed(seed uint64, stream uint32) uint64 {
	s := foldSeed(seed) ^ (stream * 2654435761)
	s = (s ^ (s >> 16)) * 0x85ebca6b
	s = (s ^ (s >> 13)) * 0xc2b2ae35
	return uint64(s ^ (s >> 16))
}
