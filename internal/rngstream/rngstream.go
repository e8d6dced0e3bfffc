// Package rngstream provides the deterministic, splittable PRNG handle
// spec §9 requires be injected into every stochastic component instead
// of a process-wide random source. It is grounded directly on the
// teacher's own seeding pattern in predictor/temperature.go
// (rand.New(rand.NewPCG(seed, 0))) — the teacher already reaches for
// math/rand/v2's PCG source rather than a third-party RNG package, so
// this is the idiomatic choice for the pack, not a stdlib fallback.
package rngstream

import (
	"hash/fnv"
	"math/rand/v2"
)

// Stream wraps a PCG source seeded deterministically from a root seed
// plus a string label, so every caller that knows the root seed and a
// stable label (e.g. "weather.region.3") gets the same sequence run to
// run — required for reproducibility (spec §8 S4).
type Stream struct {
	*rand.Rand
}

// Root creates the top-level stream for a given simulation seed.
func Root(seed uint64) Stream {
	return Stream{rand.New(rand.NewPCG(seed, 0))}
}

// Split derives an independent child stream from a label. The child's
// seed combines the label's hash with two draws from the parent, so the
// same root seed and the same sequence of Split calls always yield the
// same children; changing the order of Split calls on a parent changes
// the children it returns.
func (s Stream) Split(label string) Stream {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	seed2 := h.Sum64()
	seed1 := uint64(s.Uint32()) | uint64(s.Uint32())<<32
	return Stream{rand.New(rand.NewPCG(seed1, seed2))}
}

// Normal returns a standard-normal (mean 0, stddev 1) sample.
func (s Stream) Normal() float64 {
	return s.NormFloat64()
}

// NormalF returns a N(mean, stddev) sample.
func (s Stream) NormalF(mean, stddev float64) float64 {
	return mean + stddev*s.NormFloat64()
}
