// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/render"
)

const (
	regionZ   = 0
	particleZ = 1
)

// Drawer is the part of common.RenderSystem the renderer needs
type Drawer interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one entity owned by the renderer. The render system keeps
// pointers to its components, so they are updated in place.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// WindowRenderer implements render.Renderer on an engo render system. Each
// particle keeps one entity for its whole life; partition outlines come from
// a pool that is reused every frame.
type WindowRenderer struct {
	drawer Drawer
	world  physics.Rect
	scale  float32

	particles map[particle.ID]*sprite
	seen      map[particle.ID]bool
	regions   []*sprite
	used      int

	status engine.Status
	title  string

	// SetTitle receives the status line after every frame
	SetTitle func(string)
}

// NewWindowRenderer creates a renderer drawing world at the given pixels per
// world unit
func NewWindowRenderer(drawer Drawer, world physics.Rect, scale float32) *WindowRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &WindowRenderer{
		drawer:    drawer,
		world:     world,
		scale:     scale,
		particles: make(map[particle.ID]*sprite),
		seen:      make(map[particle.ID]bool),
	}
}

// Clear implements render.Renderer
func (r *WindowRenderer) Clear() {
	clear(r.seen)
	r.used = 0
}

// RenderRegion implements render.Renderer
func (r *WindowRenderer) RenderRegion(bounds physics.Rect) {
	if r.used == len(r.regions) {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: common.Rectangle{BorderWidth: 1, BorderColor: render.PartitionColor},
			Color:    color.Transparent,
		}
		s.SetZIndex(regionZ)
		r.drawer.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		r.regions = append(r.regions, s)
	}

	s := r.regions[r.used]
	r.used++
	s.Hidden = false
	s.Position = r.worldToScreen(physics.Vector2D{X: bounds.X, Y: bounds.Y})
	s.Width = float32(bounds.Width) * r.scale
	s.Height = float32(bounds.Height) * r.scale
}

// RenderParticle implements render.Renderer
func (r *WindowRenderer) RenderParticle(p *particle.Particle) {
	if p == nil {
		return
	}

	s, ok := r.particles[p.ID]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: common.Circle{},
			Color:    render.ColorFor(p.ID),
		}
		s.SetZIndex(particleZ)
		r.drawer.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		r.particles[p.ID] = s
	}
	r.seen[p.ID] = true

	s.Position = r.worldToScreen(physics.Vector2D{X: p.Position.X - p.Radius, Y: p.Position.Y - p.Radius})
	s.Width = float32(2*p.Radius) * r.scale
	s.Height = s.Width
}

// RenderStatus implements render.Renderer
func (r *WindowRenderer) RenderStatus(status engine.Status) {
	r.status = status
}

// Present implements render.Renderer. Particles that were not drawn since
// Clear are removed, and unused outlines are hidden.
func (r *WindowRenderer) Present() {
	for id, s := range r.particles {
		if !r.seen[id] {
			r.drawer.Remove(s.BasicEntity)
			delete(r.particles, id)
		}
	}
	for _, s := range r.regions[r.used:] {
		s.Hidden = true
	}

	title := r.status.String()
	if title != r.title && r.SetTitle != nil {
		r.SetTitle(title)
	}
	r.title = title
}

// Entities returns the number of particle entities currently drawn
func (r *WindowRenderer) Entities() int {
	return len(r.particles)
}

// VisibleRegions returns the number of outlines shown in the last frame
func (r *WindowRenderer) VisibleRegions() int {
	return r.used
}

func (r *WindowRenderer) worldToScreen(pos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(pos.X-r.world.X) * r.scale,
		Y: float32(pos.Y-r.world.Y) * r.scale,
	}
}
