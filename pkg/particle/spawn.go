// pkg/particle/spawn.go
package particle

import (
	"math/rand/v2"

	"github.com/opd-ai/go-particles/pkg/physics"
)

// Source is the entropy provider used when particles are created.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SpawnConfig bounds the random properties of new particles
type SpawnConfig struct {
	MinRadius float64
	MaxRadius float64
	MaxSpeed  float64
}

// DefaultSpawnConfig matches the reference demo: radius 8..12, speed within ±2 per axis
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		MinRadius: 8,
		MaxRadius: 12,
		MaxSpeed:  2,
	}
}

// CreateParticles populates a new collection with IDs 0..count-1.
// Positions are uniform within bounds, each velocity component is drawn from
// [-MaxSpeed, MaxSpeed) in hundredths and radii are MinRadius plus a whole
// number, never above MaxRadius. Integer bounds give every whole radius in
// [MinRadius, MaxRadius].
func CreateParticles(count int, bounds physics.Rect, src Source, spawn SpawnConfig) Particles {
	ps := make(Particles, 0, count)
	for i := 0; i < count; i++ {
		ps = append(ps, spawnParticle(ID(i), bounds, src, spawn))
	}
	return ps
}

// spawnParticle draws a single particle from the source
func spawnParticle(id ID, bounds physics.Rect, src Source, spawn SpawnConfig) Particle {
	position := physics.Vector2D{
		X: bounds.X + src.Float64()*bounds.Width,
		Y: bounds.Y + src.Float64()*bounds.Height,
	}
	velocity := physics.Vector2D{
		X: randomSpeed(src, spawn.MaxSpeed),
		Y: randomSpeed(src, spawn.MaxSpeed),
	}

	radius := spawn.MinRadius
	if span := int(spawn.MaxRadius - spawn.MinRadius); span > 0 {
		radius += float64(src.IntN(span + 1))
	}

	return New(id, position, velocity, radius)
}

// randomSpeed returns a value in [-limit, limit) quantized to hundredths
func randomSpeed(src Source, limit float64) float64 {
	cents := int(limit * 100)
	if cents <= 0 {
		return 0
	}
	return float64(src.IntN(2*cents)-cents) / 100
}
