package core

import "math/rand"

// Creates a random source for the Random pairing method.
// The same seed always produces the same pairings.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Shuffles the slice into a uniformly random permutation.
// Uses the process-wide source when rng is nil.
func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	swap := func(i, j int) { slice[i], slice[j] = slice[j], slice[i] }
	if rng == nil {
		rand.Shuffle(len(slice), swap)
		return
	}
	rng.Shuffle(len(slice), swap)
}
