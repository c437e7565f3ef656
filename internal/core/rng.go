package core

import (
	"math/rand/v2"

	"chunk-ca/pkg/grid"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Between returns a random int in [lo, hi]. The width is computed in
// unsigned arithmetic so the full int range does not overflow.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := uint64(hi) - uint64(lo) + 1
	if n == 0 {
		return int(r.r.Uint64())
	}
	return lo + int(r.r.Uint64N(n))
}

// SeedSoup writes state at count random points in [-radius, radius] on both
// axes. The origin is always written with 0 first so the grid has at least
// one chunk even when count is zero.
func SeedSoup(g *grid.Grid[uint8], w World, state uint8) {
	g.Set(grid.Pt(0, 0), 0)
	rng := NewRNG(w.Seed)
	for i := 0; i < w.SoupCount; i++ {
		x := rng.Between(-w.SoupRadius, w.SoupRadius)
		z := rng.Between(-w.SoupRadius, w.SoupRadius)
		g.Set(grid.Pt(x, z), state)
	}
}
