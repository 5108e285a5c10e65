package game

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// NewRand returns a deterministic generator for seed. An empty seed picks a
// fresh one; the seed actually used is returned so a run can be replayed.
func NewRand(seed string) (*rand.Rand, string) {
	if seed == "" {
		seed = uuid.NewString()
	}
	hi := xxhash.Sum64String(seed)
	lo := xxhash.Sum64String(seed + "/stream")
	return rand.New(rand.NewPCG(hi, lo)), seed
}
