package mcts

import "math/rand"

// fixedRNG returns a deterministic random source shared by tests that don't
// care about a particular seed, only reproducibility within one test run.
func fixedRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
