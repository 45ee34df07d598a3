// Package collision detects and resolves overlaps between particles.
//
// Both strategies share the narrow phase (physics.CheckCollision) and the
// resolution rule in Resolve; they differ only in how candidate pairs are
// enumerated. Resolutions are applied one after another in a fixed order,
// and later tests observe the positions left by earlier resolutions.
package collision

import (
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// SeparationSlop is added to each particle's push so that a resolved pair
// ends at least ra+rb apart despite rounding. Without it the pair can end a
// few ulps short and collide again on the next test.
const SeparationSlop = 1e-9

// Resolve applies the collision response to a and b if they overlap and
// reports whether it did. The particles are pushed apart by half the
// penetration each, plus SeparationSlop, along the line between their
// centers and exchange velocities. Coincident particles are left untouched.
func Resolve(a, b *particle.Particle) bool {
	result := physics.CheckCollision(a.Circle(), b.Circle())
	if !result.Collided {
		return false
	}

	correction := result.Normal.Scale(result.Penetration/2 + SeparationSlop)
	a.Position = a.Position.Add(correction)
	b.Position = b.Position.Sub(correction)

	a.Velocity, b.Velocity = b.Velocity, a.Velocity
	return true
}

// DetectExhaustive tests every unordered pair (i, j), i < j, and returns the
// number of collisions resolved.
func DetectExhaustive(ps particle.Particles) int {
	collisions := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if Resolve(&ps[i], &ps[j]) {
				collisions++
			}
		}
	}
	return collisions
}

// DetectIndexed builds a fresh quadtree over bounds, then tests each particle
// against its retrieved candidates. A pair is only tested from the side with
// the lower identity, so every unordered pair is tested at most once.
// The tree is returned for inspection; it reflects positions before
// resolution and must not be reused for another pass.
func DetectIndexed(ps particle.Particles, bounds physics.Rect, config spatial.Config) (int, *spatial.QuadTree) {
	tree := spatial.Build(bounds, ps, config)

	collisions := 0
	var candidates []int
	for i := range ps {
		candidates = tree.RetrieveInto(candidates[:0], i)
		for _, j := range candidates {
			if ps[j].ID <= ps[i].ID {
				continue
			}
			if Resolve(&ps[i], &ps[j]) {
				collisions++
			}
		}
	}
	return collisions, tree
}

// Detect runs one detection pass with the chosen strategy. The quadtree is
// nil for the exhaustive strategy.
func Detect(strategy Strategy, ps particle.Particles, bounds physics.Rect, config spatial.Config) (int, *spatial.QuadTree) {
	if strategy == Indexed {
		return DetectIndexed(ps, bounds, config)
	}
	return DetectExhaustive(ps), nil
}
