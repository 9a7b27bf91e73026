// pkg/physics/collision.go
package physics

// Sphere represents a spherical collision shape
type Sphere struct {
	Center Vector3
	Radius float64
}

// Collides checks if two spheres are overlapping.
// Spheres that are exactly tangent do not collide.
func (s Sphere) Collides(other Sphere) bool {
	return s.Center.Distance(other.Center) < s.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Distance     float64
	Normal       Vector3
	Penetration  float64
	ContactPoint Vector3
}

// CheckCollision performs detailed collision detection between two spheres
func CheckCollision(a, b Sphere) CollisionResult {
	// Vector from A to B
	offset := b.Center.Sub(a.Center)
	distance := offset.Magnitude()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{Collided: false, Distance: distance}
	}

	result := CollisionResult{
		Collided:     true,
		Distance:     distance,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center,
	}

	// Concentric spheres have no meaningful normal; leave it zero.
	if normal, err := offset.Normalize(); err == nil {
		result.Normal = normal
		result.ContactPoint = a.Center.Add(normal.Scale(a.Radius))
	}

	return result
}
