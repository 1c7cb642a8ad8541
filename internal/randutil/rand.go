// Package randutil centralises seeded random sources so that every
// component that needs reproducible sequences derives them the same way.
package randutil

import rand "math/rand/v2"

const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = 1<<48 - 1
	lcgSeedLow    = 0x330E

	goldenRatio64 = 0x9e3779b97f4a7c15
)

// LCG is a 48-bit linear congruential generator producing the classic
// drand48 sequence. The deck shuffle depends on this exact stream: a given
// seed must yield the same permutation on every platform and every run.
type LCG struct {
	state uint64
}

// NewLCG returns an LCG seeded the way srand48 seeds drand48: the seed
// occupies the high 32 bits and the low 16 bits are fixed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: (uint64(seed)<<16 | lcgSeedLow) & lcgMask}
}

// Float64 advances the generator and returns a value in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = (lcgMultiplier*l.state + lcgIncrement) & lcgMask
	return float64(l.state) / (1 << 48)
}

// IntN returns a value in [0, n) using the same truncation the original
// shuffle used, so index streams match exactly.
func (l *LCG) IntN(n int) int {
	return int(l.Float64() * float64(n))
}

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The AI tiers use this so tests can inject a known decision
// stream; the deck shuffle does not (it needs the LCG above).
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
