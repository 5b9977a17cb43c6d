package engine

import (
	"math/rand"

	"github.com/nathoo/ashaether/engine/baseline"
	"github.com/nathoo/ashaether/types"
)

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, enabling save/restore. Every draw
// consumes exactly one value of the underlying source.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	r.pos++
	return float64(r.src.Int63()>>10) / (1 << 53)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// State returns the persisted form of the RNG.
func (r *RNG) State() types.RNGState {
	return types.RNGState{Seed: r.seed, Position: r.pos}
}

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load. Positions are clamped
// to [0, baseline.MaxRNGPosition].
func RestoreRNG(seed int64, position int64) *RNG {
	position = min(max(position, 0), baseline.MaxRNGPosition)
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
