// pkg/physics/vector.go
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidArgument reports a numeric input outside the accepted domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateDirection reports a direction vector with zero magnitude.
	ErrDegenerateDirection = errors.New("degenerate direction")
)

// Vector3 represents a 3D vector with x, y and z components.
// All operations return a new vector and never modify their operands.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Source is the random number source used for sampling vectors.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Magnitude returns the Euclidean norm of the vector. Components are scaled
// by the largest of them first, so the squares neither overflow nor
// underflow. A vector with an infinite component has infinite magnitude and
// one with a NaN component has NaN magnitude.
func (v Vector3) Magnitude() float64 {
	largest := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if largest == 0 || math.IsInf(largest, 0) || math.IsNaN(largest) {
		return largest
	}
	scaled := Vector3{X: v.X / largest, Y: v.Y / largest, Z: v.Z / largest}
	return largest * scaled.mgl().Len()
}

// Distance returns the Euclidean distance between two vectors.
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Magnitude()
}

// Normalize returns a unit vector in the same direction.
// A zero vector has no direction and yields ErrDegenerateDirection; a vector
// with a NaN or infinite component yields ErrInvalidArgument.
func (v Vector3) Normalize() (Vector3, error) {
	if !v.IsFinite() {
		return Vector3{}, fmt.Errorf("normalize %s: %w", v, ErrInvalidArgument)
	}
	length := v.Magnitude()
	if length == 0 {
		return Vector3{}, fmt.Errorf("normalize %s: %w", v, ErrDegenerateDirection)
	}
	return Vector3{
		X: v.X / length,
		Y: v.Y / length,
		Z: v.Z / length,
	}, nil
}

// Equals reports exact component-wise equality.
func (v Vector3) Equals(other Vector3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// IsZero reports whether every component is exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// String formats the vector as a coordinate, e.g. "(1, 2, 3)".
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func (v Vector3) mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// RandomInRange draws each component independently and uniformly from [lo, hi].
func RandomInRange(src Source, lo, hi float64) Vector3 {
	return Vector3{
		X: Uniform(src, lo, hi),
		Y: Uniform(src, lo, hi),
		Z: Uniform(src, lo, hi),
	}
}

// Uniform draws a value uniformly from [lo, hi].
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// VelocityFromSpeedAndDirection scales direction so that its magnitude equals speed.
// Speed may be zero, in which case the zero vector is returned for any valid direction.
// A zero direction yields ErrDegenerateDirection. A non-finite speed or
// direction, or a velocity too large to represent, yields ErrInvalidArgument.
func VelocityFromSpeedAndDirection(speed float64, direction Vector3) (Vector3, error) {
	if !finite(speed) {
		return Vector3{}, fmt.Errorf("velocity with speed %v: %w", speed, ErrInvalidArgument)
	}
	unit, err := direction.Normalize()
	if err != nil {
		return Vector3{}, fmt.Errorf("velocity from direction: %w", err)
	}
	velocity := unit.Scale(speed)
	if !velocity.IsFinite() {
		return Vector3{}, fmt.Errorf("velocity %s: %w", velocity, ErrInvalidArgument)
	}
	return velocity, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
