package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Estimates returns n random estimates in [0, maxVal), rounded to whole
// numbers so that ties are frequent.
func (r *RNG) Estimates(n int, maxVal int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(r.rand.Intn(maxVal))
	}
	return out
}

// Grid returns a width x height grid where each cell is a wall with the
// given probability and otherwise has a terrain cost in [1, 4]. The corner
// cells (0,0) and (width-1,height-1) are always passable.
func (r *RNG) Grid(width, height int, wallDensity float64) *Grid {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r.rand.Float64() < wallDensity {
				g.SetCost(x, y, Wall)
				continue
			}
			g.SetCost(x, y, uint8(1+r.rand.Intn(4))) //nolint:gosec // 1..4
		}
	}
	g.SetCost(0, 0, 1)
	g.SetCost(width-1, height-1, 1)
	return g
}
