package utils

import "math/rand/v2"

// Rand is the random source used by the itinerary formatter for gap
// sampling. Tests provide a fixed sequence to make placement deterministic.
type Rand interface {
	// IntN returns a uniformly distributed int in [0, n).
	IntN(n int) int
}

type SystemRand struct{}

func (s SystemRand) IntN(n int) int {
	return rand.IntN(n)
}

// SequenceRand replays a fixed sequence of values, cycling when exhausted.
// Values are taken modulo n so they always fall in the requested range.
type SequenceRand struct {
	Values []int
	next   int
}

func (r *SequenceRand) IntN(n int) int {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.next%len(r.Values)]
	r.next++
	return v % n
}
