// pkg/render/engo/renderer_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/render"
)

type fakeDrawer struct {
	added   map[uint64]*common.SpaceComponent
	renders map[uint64]*common.RenderComponent
	removed []uint64
}

func newFakeDrawer() *fakeDrawer {
	return &fakeDrawer{
		added:   make(map[uint64]*common.SpaceComponent),
		renders: make(map[uint64]*common.RenderComponent),
	}
}

func (d *fakeDrawer) Add(basic *ecs.BasicEntity, rc *common.RenderComponent, sc *common.SpaceComponent) {
	d.added[basic.ID()] = sc
	d.renders[basic.ID()] = rc
}

func (d *fakeDrawer) Remove(basic ecs.BasicEntity) {
	d.removed = append(d.removed, basic.ID())
	delete(d.added, basic.ID())
	delete(d.renders, basic.ID())
}

var testWorld = physics.NewRect(0, 0, 1200, 800)

func drawParticles(r *WindowRenderer, ps ...particle.Particle) {
	r.Clear()
	for i := range ps {
		r.RenderParticle(&ps[i])
	}
	r.Present()
}

func TestWindowRenderer_ParticleGeometry(t *testing.T) {
	d := newFakeDrawer()
	r := NewWindowRenderer(d, testWorld, 0.5)
	p := particle.New(4, physics.Vector2D{X: 100, Y: 60}, physics.Vector2D{}, 10)

	drawParticles(r, p)

	if r.Entities() != 1 || len(d.added) != 1 {
		t.Fatalf("expected 1 entity, got %d (drawer %d)", r.Entities(), len(d.added))
	}
	s := r.particles[4]
	if s.Position.X != 45 || s.Position.Y != 25 {
		t.Errorf("expected position (45, 25), got (%v, %v)", s.Position.X, s.Position.Y)
	}
	if s.Width != 10 || s.Height != 10 {
		t.Errorf("expected size 10x10, got %vx%v", s.Width, s.Height)
	}
	if s.Color != render.ColorFor(4) {
		t.Errorf("expected palette color %v, got %v", render.ColorFor(4), s.Color)
	}
	if _, ok := s.Drawable.(common.Circle); !ok {
		t.Errorf("expected a circle drawable, got %T", s.Drawable)
	}
}

func TestWindowRenderer_ReusesEntitiesAcrossFrames(t *testing.T) {
	d := newFakeDrawer()
	r := NewWindowRenderer(d, testWorld, 1)
	p := particle.New(1, physics.Vector2D{X: 100, Y: 100}, physics.Vector2D{}, 8)

	drawParticles(r, p)
	first := r.particles[1]
	p.Position = physics.Vector2D{X: 200, Y: 150}
	drawParticles(r, p)

	if r.particles[1] != first {
		t.Error("expected the same entity to be reused")
	}
	if len(d.added) != 1 {
		t.Errorf("expected a single Add, got %d entities", len(d.added))
	}
	if first.Position.X != 192 || first.Position.Y != 142 {
		t.Errorf("expected moved position (192, 142), got (%v, %v)", first.Position.X, first.Position.Y)
	}
}

func TestWindowRenderer_RemovesVanishedParticles(t *testing.T) {
	d := newFakeDrawer()
	r := NewWindowRenderer(d, testWorld, 1)
	a := particle.New(0, physics.Vector2D{X: 100, Y: 100}, physics.Vector2D{}, 8)
	b := particle.New(1, physics.Vector2D{X: 300, Y: 100}, physics.Vector2D{}, 8)

	drawParticles(r, a, b)
	removedID := r.particles[1].ID()
	drawParticles(r, a)

	if r.Entities() != 1 {
		t.Fatalf("expected 1 entity left, got %d", r.Entities())
	}
	if len(d.removed) != 1 || d.removed[0] != removedID {
		t.Errorf("expected entity %d to be removed, got %v", removedID, d.removed)
	}
}

func TestWindowRenderer_RegionPool(t *testing.T) {
	d := newFakeDrawer()
	r := NewWindowRenderer(d, testWorld, 1)
	quads := testWorld.Quadrants()

	r.Clear()
	for _, q := range quads {
		r.RenderRegion(q)
	}
	r.Present()
	if r.VisibleRegions() != 4 || len(d.added) != 4 {
		t.Fatalf("expected 4 outlines, got %d (drawer %d)", r.VisibleRegions(), len(d.added))
	}

	r.Clear()
	r.RenderRegion(testWorld)
	r.Present()

	if len(d.added) != 4 {
		t.Errorf("expected outlines to be reused, drawer holds %d", len(d.added))
	}
	if r.regions[0].Hidden || r.regions[0].Width != 1200 || r.regions[0].Height != 800 {
		t.Errorf("expected the first outline to cover the world, got %+v", r.regions[0].SpaceComponent)
	}
	for i, s := range r.regions[1:] {
		if !s.Hidden {
			t.Errorf("outline %d should be hidden", i+1)
		}
	}
}

func TestWindowRenderer_TitleFollowsStatus(t *testing.T) {
	r := NewWindowRenderer(newFakeDrawer(), testWorld, 1)
	var titles []string
	r.SetTitle = func(title string) { titles = append(titles, title) }
	status := engine.Status{Tick: 1, Particles: 2}

	for range 2 {
		r.Clear()
		r.RenderStatus(status)
		r.Present()
	}
	status.Tick = 2
	r.Clear()
	r.RenderStatus(status)
	r.Present()

	if len(titles) != 2 {
		t.Fatalf("expected 2 title updates, got %v", titles)
	}
	if titles[1] != status.String() {
		t.Errorf("expected %q, got %q", status.String(), titles[1])
	}
}

func TestWindowRenderer_DrawFrame(t *testing.T) {
	d := newFakeDrawer()
	r := NewWindowRenderer(d, testWorld, 1)
	ps := particle.CreateParticles(20, testWorld, particle.NewSource(5), particle.DefaultSpawnConfig())

	render.DrawFrame(r, render.Frame{Particles: ps}, engine.Settings{})

	if r.Entities() != 20 {
		t.Errorf("expected 20 entities, got %d", r.Entities())
	}
	if r.VisibleRegions() != 0 {
		t.Errorf("expected no outlines, got %d", r.VisibleRegions())
	}
}
