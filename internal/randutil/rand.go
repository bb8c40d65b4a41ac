// Package randutil provides the sampling primitives used by the question
// and case generators. All randomness flows through an injected Rand so
// tests can pin seeds while production draws remain unpredictable.
package randutil

import (
	"fmt"
	"math/rand/v2"
)

// Rand is a seedable pseudo-random source.
type Rand struct {
	src *rand.Rand
}

// New creates a Rand seeded with the given pair (deterministic).
func New(seed1, seed2 uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewRandom creates a Rand seeded from the process-wide generator.
func NewRandom() *Rand {
	return New(rand.Uint64(), rand.Uint64())
}

// IntBetween returns a uniform integer in [min, max], inclusive on both ends.
func (r *Rand) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.src.IntN(max-min+1)
}

// Float64 returns a uniform float in [0, 1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// FloatBetween returns a uniform float in [min, max).
func (r *Rand) FloatBetween(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.src.Float64()*(max-min)
}

// Shuffle returns a uniformly random permutation of items as a new slice.
// The input is never modified.
func Shuffle[T any](r *Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.src.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// PickOne returns a uniformly random element. Callers must guarantee the
// slice is non-empty; an empty slice is reported as an error.
func PickOne[T any](r *Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("pick from empty slice")
	}
	return items[r.src.IntN(len(items))], nil
}

// PickManyUnique returns count elements drawn without replacement, by
// position. Duplicate values in the input are treated as distinct; callers
// that need value-level uniqueness must deduplicate upstream. If count is
// at least len(items), a full shuffled copy is returned.
func PickManyUnique[T any](r *Rand, items []T, count int) []T {
	shuffled := Shuffle(r, items)
	if count >= len(shuffled) {
		return shuffled
	}
	if count < 0 {
		count = 0
	}
	return shuffled[:count]
}
