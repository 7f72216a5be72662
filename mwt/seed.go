package mwt

import "math/rand/v2"

// Seed drives a policy's pseudo-random choices for one decision.
// Two decisions with the same Seed and context MUST make the same choice.
type Seed uint64

// ComposeSeed combines a unit hash and an application hash.
// Addition wraps modulo 2^64; overflow is part of the definition.
func ComposeSeed(unitHash, appHash uint64) Seed {
	return Seed(unitHash + appHash)
}

// Rand returns a fresh generator seeded from all 64 bits of s. Policies
// must take all of their randomness from here so that decisions replay
// exactly.
func (s Seed) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(s), 0))
}
