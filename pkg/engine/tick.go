// pkg/engine/tick.go
package engine

import (
	"github.com/opd-ai/go-particles/pkg/collision"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// Tick advances every particle by one step, reflecting off the walls of
// bounds, then runs one detection pass with the chosen strategy. It returns
// the number of collisions resolved. The quadtree uses the default policy.
func Tick(ps particle.Particles, bounds physics.Rect, strategy collision.Strategy) int {
	collisions, _ := TickWith(ps, bounds, strategy, spatial.DefaultConfig())
	return collisions
}

// TickWith is Tick with an explicit quadtree policy. It also returns the tree
// built by the indexed strategy, or nil.
func TickWith(ps particle.Particles, bounds physics.Rect, strategy collision.Strategy, tree spatial.Config) (int, *spatial.QuadTree) {
	ps.Advance(bounds)
	return collision.Detect(strategy, ps, bounds, tree)
}
