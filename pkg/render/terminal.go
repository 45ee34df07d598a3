package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
)

// HelpText lists the key bindings shown under the status line
const HelpText = "space: strategy  q: partitions  up/down: count  r: reset  esc: quit"

const (
	particleRune = '●'
	regionRune   = '·'
)

// TerminalRenderer draws frames onto a tcell screen. The world is stretched
// over every row but the last two, which hold the status and help lines.
type TerminalRenderer struct {
	screen tcell.Screen
	world  physics.Rect

	cols, rows     int
	scaleX, scaleY float64
}

// NewTerminalRenderer creates a renderer for an initialised screen
func NewTerminalRenderer(screen tcell.Screen, world physics.Rect) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		world:  world,
	}
	r.layout()
	return r
}

// layout recomputes the world to cell scale from the screen size
func (r *TerminalRenderer) layout() {
	w, h := r.screen.Size()
	r.cols = max(w, 1)
	r.rows = max(h-2, 1)
	r.scaleX = r.world.Width / float64(r.cols)
	r.scaleY = r.world.Height / float64(r.rows)
}

// worldToScreen converts world coordinates to a cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(math.Floor((pos.X - r.world.X) / r.scaleX))
	y := int(math.Floor((pos.Y - r.world.Y) / r.scaleY))
	return x, y
}

func (r *TerminalRenderer) inField(x, y int) bool {
	return x >= 0 && x < r.cols && y >= 0 && y < r.rows
}

// Clear implements Renderer. It also picks up terminal resizes.
func (r *TerminalRenderer) Clear() {
	r.layout()
	r.screen.Clear()
}

// RenderRegion implements Renderer by outlining the region
func (r *TerminalRenderer) RenderRegion(bounds physics.Rect) {
	style := tcell.StyleDefault.Foreground(tcellColor(PartitionColor))

	x0, y0 := r.worldToScreen(physics.Vector2D{X: bounds.X, Y: bounds.Y})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: bounds.MaxX(), Y: bounds.MaxY()})
	x1 = min(x1, r.cols-1)
	y1 = min(y1, r.rows-1)

	for x := x0; x <= x1; x++ {
		r.setCell(x, y0, regionRune, style)
		r.setCell(x, y1, regionRune, style)
	}
	for y := y0; y <= y1; y++ {
		r.setCell(x0, y, regionRune, style)
		r.setCell(x1, y, regionRune, style)
	}
}

// RenderParticle implements Renderer. Every cell whose center lies inside the
// particle is filled; the cell under the center always is.
func (r *TerminalRenderer) RenderParticle(p *particle.Particle) {
	if p == nil {
		return
	}
	style := tcell.StyleDefault.Foreground(tcellColor(ColorFor(p.ID)))

	cx, cy := r.worldToScreen(p.Position)
	r.setCell(cx, cy, particleRune, style)

	minX, minY := r.worldToScreen(physics.Vector2D{X: p.Position.X - p.Radius, Y: p.Position.Y - p.Radius})
	maxX, maxY := r.worldToScreen(physics.Vector2D{X: p.Position.X + p.Radius, Y: p.Position.Y + p.Radius})
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			center := physics.Vector2D{
				X: r.world.X + (float64(x)+0.5)*r.scaleX,
				Y: r.world.Y + (float64(y)+0.5)*r.scaleY,
			}
			if center.Distance(p.Position) < p.Radius {
				r.setCell(x, y, particleRune, style)
			}
		}
	}
}

// RenderStatus implements Renderer
func (r *TerminalRenderer) RenderStatus(status engine.Status) {
	r.drawText(0, r.rows, status.String(), tcell.StyleDefault.Bold(true))
	r.drawText(0, r.rows+1, HelpText, tcell.StyleDefault.Dim(true))
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	if r.inField(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= r.cols {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func tcellColor(c color.Color) tcell.Color {
	red, green, blue, _ := c.RGBA()
	return tcell.NewRGBColor(int32(red>>8), int32(green>>8), int32(blue>>8))
}
