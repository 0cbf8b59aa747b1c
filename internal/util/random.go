package util

import (
	"math/rand"
	"time"
)

// NewRandom returns a random source for the given seed. A zero seed picks
// one from the clock; callers that need reproducible play pass their own.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GetRandomInt returns a random integer in range [min, max].
func GetRandomInt(r *rand.Rand, min int, max int) int {
	return r.Intn(max-min+1) + min
}

// GetRandomFloat64 returns a random float64 in range [min, max).
func GetRandomFloat64(r *rand.Rand, min float64, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Shuffle shuffles the items in place.
func Shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
