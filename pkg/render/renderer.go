// Package render draws simulation frames. Renderers receive primitives in
// world coordinates and decide how to map them to their surface.
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/logging"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// Renderer draws one frame at a time: Clear, any number of regions and
// particles, the status line, then Present.
type Renderer interface {
	Clear()
	RenderRegion(bounds physics.Rect)
	RenderParticle(p *particle.Particle)
	RenderStatus(status engine.Status)
	Present()
}

// Palette holds the particle colors
var Palette = [10]color.RGBA{
	{100, 150, 255, 255},
	{150, 100, 255, 255},
	{255, 100, 150, 255},
	{100, 255, 150, 255},
	{150, 255, 200, 255},
	{200, 150, 255, 255},
	{255, 200, 100, 255},
	{100, 200, 150, 255},
	{255, 150, 100, 255},
	{150, 200, 255, 255},
}

// PartitionColor is the outline color of quadtree regions
var PartitionColor = color.RGBA{50, 50, 50, 255}

// ColorFor returns the palette color of a particle. The choice depends only
// on the identity, so a particle keeps its color for its whole life.
func ColorFor(id particle.ID) color.RGBA {
	return Palette[id%particle.ID(len(Palette))]
}

// Frame is what a renderer needs from one tick
type Frame struct {
	Particles particle.Particles
	Tree      *spatial.QuadTree
	Status    engine.Status
}

// FrameOf captures the current frame of a simulation
func FrameOf(sim *engine.Simulation) Frame {
	return Frame{
		Particles: sim.Particles(),
		Tree:      sim.LastTree,
		Status:    sim.Status(),
	}
}

// DrawFrame renders a frame. Partition regions are drawn first, and only
// when the overlay is on and the frame was produced by the indexed strategy.
func DrawFrame(r Renderer, frame Frame, settings engine.Settings) {
	r.Clear()

	if settings.ShowPartitions && frame.Tree != nil {
		for bounds := range frame.Tree.Bounds() {
			r.RenderRegion(bounds)
		}
	}

	for i := range frame.Particles {
		r.RenderParticle(&frame.Particles[i])
	}

	r.RenderStatus(frame.Status)
	r.Present()
}

// NullRenderer discards frames, logging each call at debug level. It backs
// headless runs.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context

	Frames    int
	Regions   int
	Particles int
	Last      engine.Status
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// RenderRegion implements Renderer.
func (d *NullRenderer) RenderRegion(bounds physics.Rect) {
	d.Regions++
	d.logger.Debug(d.ctx, "RenderRegion called",
		"x", bounds.X,
		"y", bounds.Y,
		"width", bounds.Width,
		"height", bounds.Height,
	)
}

// RenderParticle implements Renderer.
func (d *NullRenderer) RenderParticle(p *particle.Particle) {
	if p == nil {
		d.logger.Debug(d.ctx, "RenderParticle called with nil particle")
		return
	}
	d.Particles++
	d.logger.Debug(d.ctx, "RenderParticle called",
		"particle_id", uint64(p.ID),
		"x", p.Position.X,
		"y", p.Position.Y,
	)
}

// RenderStatus implements Renderer.
func (d *NullRenderer) RenderStatus(status engine.Status) {
	d.Last = status
	d.logger.Debug(d.ctx, "RenderStatus called", "status", status.String())
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.Frames++
	d.logger.Debug(d.ctx, "Present called", "frame", d.Frames)
}
