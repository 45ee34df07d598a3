// pkg/physics/rect.go
package physics

// Quadrant order used by Rect.Quadrants and the spatial index.
const (
	NorthEast = iota
	NorthWest
	SouthWest
	SouthEast
)

// Rect is an axis-aligned rectangle anchored at its minimum corner.
// Y grows downwards, so "north" is the half with the smaller Y.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its origin and extents
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MaxX returns the exclusive right edge
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the exclusive bottom edge
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Vector2D {
	return Vector2D{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains reports whether the point lies inside the rectangle.
// The minimum edges are inclusive and the maximum edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.X &&
		point.X < r.X+r.Width &&
		point.Y >= r.Y &&
		point.Y < r.Y+r.Height
}

// Intersects reports whether two rectangles overlap.
// Rectangles that only share an edge or a corner count as intersecting.
func (r Rect) Intersects(other Rect) bool {
	return !(other.X > r.X+r.Width ||
		other.X+other.Width < r.X ||
		other.Y > r.Y+r.Height ||
		other.Y+other.Height < r.Y)
}

// Quadrants splits the rectangle into four equal parts ordered NE, NW, SW, SE.
func (r Rect) Quadrants() [4]Rect {
	w := r.Width / 2
	h := r.Height / 2

	return [4]Rect{
		NorthEast: {X: r.X + w, Y: r.Y, Width: w, Height: h},
		NorthWest: {X: r.X, Y: r.Y, Width: w, Height: h},
		SouthWest: {X: r.X, Y: r.Y + h, Width: w, Height: h},
		SouthEast: {X: r.X + w, Y: r.Y + h, Width: w, Height: h},
	}
}

// BoundingRect returns the square that encloses a circle
func (c Circle) BoundingRect() Rect {
	return Rect{
		X:      c.Center.X - c.Radius,
		Y:      c.Center.Y - c.Radius,
		Width:  c.Radius * 2,
		Height: c.Radius * 2,
	}
}
