// pkg/engine/voyage.go
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/opd-ai/go-voyage/pkg/entity"
	"github.com/opd-ai/go-voyage/pkg/event"
	"github.com/opd-ai/go-voyage/pkg/physics"
)

// Status is the state of a voyage
type Status int

const (
	StatusRunning Status = iota
	StatusCollided
	StatusCompleted
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCollided:
		return "collided"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further steps will run.
func (s Status) Terminal() bool {
	return s == StatusCollided || s == StatusCompleted
}

// Result is the outcome of a voyage, or its progress so far while running.
type Result struct {
	Status           Status
	Tick             uint64
	ShipPosition     physics.Vector3
	DistanceTraveled float64
	Collider         *entity.Body // the body hit, nil unless Status is StatusCollided
	Collision        physics.CollisionResult
	Elapsed          time.Duration // wall clock time spent in Run
}

// Voyage flies a ship in a straight line through a population of bodies,
// one tick at a time, until it hits something or covers its travel goal.
//
// A Voyage is single-threaded: Step, Run and RunContext must not be
// called concurrently.
type Voyage struct {
	RunID      string
	ShipName   string
	Ship       *entity.Body
	Bodies     []*entity.Body
	TravelGoal float64
	Origin     physics.Vector3 // distance traveled is measured from here
	EventBus   *event.Bus

	CurrentTick      uint64
	Status           Status
	DistanceTraveled float64

	started   bool
	collider  *entity.Body
	collision physics.CollisionResult
	elapsed   time.Duration
}

// Option configures a Voyage.
type Option func(*Voyage)

// WithEventBus publishes voyage events on bus instead of a private bus.
func WithEventBus(bus *event.Bus) Option {
	return func(v *Voyage) {
		v.EventBus = bus
	}
}

// WithOrigin measures distance traveled from origin instead of (0, 0, 0).
func WithOrigin(origin physics.Vector3) Option {
	return func(v *Voyage) {
		v.Origin = origin
	}
}

// WithShipName sets the name used in reports.
func WithShipName(name string) Option {
	return func(v *Voyage) {
		v.ShipName = name
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(v *Voyage) {
		v.RunID = id
	}
}

// NewVoyage creates a voyage for ship through bodies. The ship should have a
// non-zero velocity; a stationary ship only ends its voyage if something
// runs into it.
func NewVoyage(ship *entity.Body, bodies []*entity.Body, travelGoal float64, opts ...Option) (*Voyage, error) {
	if ship == nil {
		return nil, fmt.Errorf("voyage needs a ship: %w", physics.ErrInvalidArgument)
	}
	if math.IsNaN(travelGoal) || math.IsInf(travelGoal, 0) || travelGoal <= 0 {
		return nil, fmt.Errorf("travel goal %v: %w", travelGoal, physics.ErrInvalidArgument)
	}

	v := &Voyage{
		RunID:      uuid.NewString(),
		Ship:       ship,
		Bodies:     bodies,
		TravelGoal: travelGoal,
		Status:     StatusRunning,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.EventBus == nil {
		v.EventBus = event.NewEventBus()
	}
	return v, nil
}

// Start publishes the launch event. Step calls it on first use.
func (v *Voyage) Start() {
	if v.started {
		return
	}
	v.started = true
	v.EventBus.Publish(event.NewVoyageEvent(
		v,
		v.RunID,
		v.ShipName,
		v.Ship.Velocity(),
		len(v.Bodies),
		v.TravelGoal,
	))
}

// Step advances the voyage by one tick and returns the new status.
// Once the voyage has collided or completed, Step does nothing.
func (v *Voyage) Step() Status {
	if v.Status.Terminal() {
		return v.Status
	}
	v.Start()

	v.CurrentTick++
	t := float64(v.CurrentTick)

	shipPosition := v.Ship.UpdatePosition(t)
	v.DistanceTraveled = v.Origin.Distance(shipPosition)
	v.EventBus.Publish(event.NewStepEvent(v, v.CurrentTick, shipPosition, v.DistanceTraveled))

	if body := v.detectCollision(t); body != nil {
		v.endWithCollision(body)
		return v.Status
	}

	if v.DistanceTraveled >= v.TravelGoal {
		v.Status = StatusCompleted
		v.EventBus.Publish(event.NewGoalEvent(v, v.CurrentTick, v.DistanceTraveled))
	}
	return v.Status
}

// detectCollision moves every body to time t and returns the first one the
// ship overlaps. Bodies after the first hit are not moved this tick.
func (v *Voyage) detectCollision(t float64) *entity.Body {
	for _, body := range v.Bodies {
		if body == v.Ship {
			continue
		}
		body.UpdatePosition(t)
		if v.Ship.CollidesWith(body) {
			return body
		}
	}
	return nil
}

// endWithCollision records the collision and publishes it.
func (v *Voyage) endWithCollision(body *entity.Body) {
	v.Status = StatusCollided
	v.collider = body
	v.collision = physics.CheckCollision(v.Ship.GetCollider(), body.GetCollider())

	v.EventBus.Publish(event.NewCollisionEvent(
		v,
		v.CurrentTick,
		v.Ship.Position(),
		uint64(body.GetID()),
		body.Label(),
		body.Radius(),
		body.Position(),
		v.collision.Penetration,
	))
}

// Run steps the voyage until it collides or completes. There is no step
// limit: a voyage that can never reach either state runs forever, see
// RunContext for a bounded variant.
func (v *Voyage) Run() Result {
	start := time.Now()
	status := v.Status
	for !status.Terminal() {
		status = v.Step()
	}
	v.elapsed += time.Since(start)
	return v.Result()
}

// RunContext is Run with cancellation checked between ticks. On
// cancellation it returns the progress so far together with ctx.Err().
func (v *Voyage) RunContext(ctx context.Context) (Result, error) {
	start := time.Now()
	var err error
	for !v.Status.Terminal() {
		if err = ctx.Err(); err != nil {
			break
		}
		v.Step()
	}
	v.elapsed += time.Since(start)
	return v.Result(), err
}

// Result returns the outcome so far.
func (v *Voyage) Result() Result {
	return Result{
		Status:           v.Status,
		Tick:             v.CurrentTick,
		ShipPosition:     v.Ship.Position(),
		DistanceTraveled: v.DistanceTraveled,
		Collider:         v.collider,
		Collision:        v.collision,
		Elapsed:          v.elapsed,
	}
}
