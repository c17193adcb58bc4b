// Package sample draws randomized, always-valid input blocks for kernels
// under test.
package sample

import (
	"math/rand/v2"
)

// pcgStream separates the PCG increment from the seed so that seeds 1 and 2
// do not produce overlapping streams.
const pcgStream = 0x9e3779b97f4a7c15

// Source is the random stream shared by every generator of a run. It is not
// safe for concurrent use.
type Source struct {
	rng  *rand.Rand
	seed uint64
}

// NewSource returns a source seeded with seed. A zero seed picks a random
// one; Seed reports it so a run can be replayed.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}

	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^pcgStream)),
		seed: seed,
	}
}

// Seed returns the seed the stream was started from.
func (s *Source) Seed() uint64 { return s.seed }

// Next returns a uniform draw from [-mx/2, mx/2).
func (s *Source) Next(mx float64) float64 {
	return s.rng.Float64()*mx - mx/2
}
