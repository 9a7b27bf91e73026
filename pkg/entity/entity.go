// pkg/entity/entity.go
package entity

import (
	"fmt"
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-voyage/pkg/physics"
)

// ID is a unique identifier for a body
type ID uint64

// Body is a sphere moving through space at constant velocity.
//
// Origin, velocity and radius are fixed at construction. The current
// position is a cache of the last PositionAt result and is never
// authoritative: it can always be recomputed from the elapsed time.
type Body struct {
	basic    ecs.BasicEntity
	label    string
	radius   float64
	origin   physics.Vector3
	velocity physics.Vector3
	position physics.Vector3
}

// Option configures optional Body attributes.
type Option func(*Body)

// WithLabel tags the body with a human readable class, e.g. "ship" or "large".
func WithLabel(label string) Option {
	return func(b *Body) {
		b.label = label
	}
}

// NewBody creates a body at origin with the given radius and velocity.
// The radius must be finite and non-negative.
func NewBody(radius float64, origin, velocity physics.Vector3, opts ...Option) (*Body, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return nil, fmt.Errorf("body radius %v: %w", radius, physics.ErrInvalidArgument)
	}

	b := &Body{
		basic:    ecs.NewBasic(),
		radius:   radius,
		origin:   origin,
		velocity: velocity,
		position: origin,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// GetID returns the body's unique identifier
func (b *Body) GetID() ID {
	return ID(b.basic.ID())
}

// Label returns the class label, empty if none was set
func (b *Body) Label() string {
	return b.label
}

// Radius returns the collision radius
func (b *Body) Radius() float64 {
	return b.radius
}

// Origin returns the position at time zero
func (b *Body) Origin() physics.Vector3 {
	return b.origin
}

// Velocity returns the constant velocity
func (b *Body) Velocity() physics.Vector3 {
	return b.velocity
}

// Position returns the last computed position
func (b *Body) Position() physics.Vector3 {
	return b.position
}

// PositionAt returns origin + velocity*t. It does not touch the cached position.
func (b *Body) PositionAt(t float64) physics.Vector3 {
	return b.origin.Add(b.velocity.Scale(t))
}

// UpdatePosition recomputes the cached position for elapsed time t and returns it.
func (b *Body) UpdatePosition(t float64) physics.Vector3 {
	b.position = b.PositionAt(t)
	return b.position
}

// GetCollider returns the body's collision shape at its cached position
func (b *Body) GetCollider() physics.Sphere {
	return physics.Sphere{
		Center: b.position,
		Radius: b.radius,
	}
}

// CollidesWith reports whether the two bodies overlap at their cached positions.
func (b *Body) CollidesWith(other *Body) bool {
	return b.GetCollider().Collides(other.GetCollider())
}

// OverlapsAtOrigin reports whether the two bodies overlap at time zero,
// regardless of where either has since moved.
func (b *Body) OverlapsAtOrigin(other *Body) bool {
	return physics.Sphere{Center: b.origin, Radius: b.radius}.Collides(
		physics.Sphere{Center: other.origin, Radius: other.radius})
}

// String describes the body for logs.
func (b *Body) String() string {
	label := b.label
	if label == "" {
		label = "body"
	}
	return fmt.Sprintf("%s#%d radius=%g position=%s velocity=%s",
		label, b.GetID(), b.radius, b.position, b.velocity)
}
