// Package particle holds the kinematic state of the simulated particles and
// the rules for creating and resizing a population of them.
package particle

import (
	"github.com/opd-ai/go-particles/pkg/physics"
)

// ID is a unique identifier for a particle. IDs are assigned in creation
// order and never reused within a population.
type ID uint64

// Particle is a circular body moving in the simulation domain
type Particle struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// New creates a particle
func New(id ID, position, velocity physics.Vector2D, radius float64) Particle {
	return Particle{
		ID:       id,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}

// Circle returns the particle's collision shape
func (p *Particle) Circle() physics.Circle {
	return physics.Circle{
		Center: p.Position,
		Radius: p.Radius,
	}
}

// Advance moves the particle one unit step and reflects it off the domain
// walls. Each axis is handled independently: a particle whose edge crosses
// a wall is clamped back inside and that velocity component is negated.
func (p *Particle) Advance(bounds physics.Rect) {
	p.Position = p.Position.Add(p.Velocity)

	p.Position.X, p.Velocity.X = bounceAxis(p.Position.X, p.Velocity.X, p.Radius, bounds.X, bounds.MaxX())
	p.Position.Y, p.Velocity.Y = bounceAxis(p.Position.Y, p.Velocity.Y, p.Radius, bounds.Y, bounds.MaxY())
}

// bounceAxis clamps a single coordinate between lo+radius and hi-radius,
// mirroring the velocity when a clamp happens.
func bounceAxis(pos, vel, radius, lo, hi float64) (float64, float64) {
	switch {
	case pos-radius < lo:
		return lo + radius, -vel
	case pos+radius > hi:
		return hi - radius, -vel
	default:
		return pos, vel
	}
}

// Particles is the contiguous collection owned by the simulation driver.
// Other components refer to particles by index into it.
type Particles []Particle

// Len returns the number of particles
func (ps Particles) Len() int {
	return len(ps)
}

// Circle returns the collision shape of the particle at index i
func (ps Particles) Circle(i int) physics.Circle {
	return ps[i].Circle()
}

// Advance applies one kinematics step to every particle in order
func (ps Particles) Advance(bounds physics.Rect) {
	for i := range ps {
		ps[i].Advance(bounds)
	}
}

// Clone returns an independent copy of the collection
func (ps Particles) Clone() Particles {
	out := make(Particles, len(ps))
	copy(out, ps)
	return out
}
