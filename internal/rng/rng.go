package rng

import (
	"math"
	"math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// NewSeed returns a positive seed from the crypto source
func NewSeed() int64 {
	return int64(Crypto{}.Intn(math.MaxInt32)) + 1
}

// Seeded returns a reproducible generator
// A game replays identically from the same seed
func Seeded(seed int64) Generator {
	return rand.New(rand.NewSource(seed)) // nolint:gosec
}

// NextSeed draws a positive seed from the generator, suitable for deck.Shuffle
func NextSeed(g Generator) int64 {
	return int64(g.Intn(math.MaxInt32)) + 1
}
