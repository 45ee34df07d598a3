// pkg/particle/population.go
package particle

import (
	"github.com/opd-ai/go-particles/pkg/physics"
)

// Population owns the particle collection together with the state needed
// to grow it: the entropy source and the next identity to hand out.
type Population struct {
	Particles Particles
	Bounds    physics.Rect
	Spawn     SpawnConfig

	src    Source
	nextID ID
}

// NewPopulation creates a population of count particles with IDs 0..count-1
func NewPopulation(count int, bounds physics.Rect, src Source, spawn SpawnConfig) *Population {
	pop := &Population{
		Bounds: bounds,
		Spawn:  spawn,
		src:    src,
	}
	pop.Reset(count)
	return pop
}

// Len returns the current particle count
func (p *Population) Len() int {
	return len(p.Particles)
}

// NextID returns the identity the next spawned particle will get
func (p *Population) NextID() ID {
	return p.nextID
}

// Reset discards every particle and creates count new ones numbered from 0
func (p *Population) Reset(count int) {
	p.Particles = CreateParticles(count, p.Bounds, p.src, p.Spawn)
	p.nextID = ID(count)
}

// Resize changes the particle count. Shrinking truncates the collection,
// dropping the highest identities. Growing appends new particles with fresh
// identities; identities of dropped particles are never handed out again.
func (p *Population) Resize(count int) {
	if count < 0 {
		count = 0
	}

	if count <= len(p.Particles) {
		p.Particles = p.Particles[:count:count]
		return
	}

	for len(p.Particles) < count {
		p.Particles = append(p.Particles, spawnParticle(p.nextID, p.Bounds, p.src, p.Spawn))
		p.nextID++
	}
}
