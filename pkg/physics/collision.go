// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap.
// Circles that only touch, or whose centers coincide, do not collide.
func (c Circle) Collides(other Circle) bool {
	d := c.Center.Distance(other.Center)
	return d > 0 && d < c.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided    bool
	Normal      Vector2D // unit vector pointing from B towards A
	Penetration float64
	Distance    float64
}

// CheckCollision performs the narrow-phase test between two circles.
//
// A collision exists iff 0 < d < ra+rb where d is the center distance.
// Coincident centers have no usable normal and are reported as no collision.
func CheckCollision(a, b Circle) CollisionResult {
	delta := a.Center.Sub(b.Center)
	distance := delta.Length()
	minDist := a.Radius + b.Radius

	if distance <= 0 || distance >= minDist {
		return CollisionResult{Distance: distance}
	}

	return CollisionResult{
		Collided:    true,
		Normal:      delta.Scale(1 / distance),
		Penetration: minDist - distance,
		Distance:    distance,
	}
}
