package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// It is not safe for concurrent use; every board owns its own instance.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// ShuffleBytes permutes buf uniformly at random in place.
func (r *RNG) ShuffleBytes(buf []uint8) {
	r.r.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
}
