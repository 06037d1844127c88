package model

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin wrapper around math/rand/v2 so seeding can be made
// deterministic in tests.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates an RNG from seed. A zero seed draws one from the clock.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform value in [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }
