package world

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue derives a stable numeric seed from the root seed
// and a subsystem label, so independent subsystems draw from independent
// streams that replay identically for the same configuration.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG constructs the default RNG for a subsystem label.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}
