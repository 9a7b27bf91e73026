// pkg/event/event.go
package event

import (
	"github.com/opd-ai/go-voyage/pkg/physics"
)

// Type represents the type of event
type Type string

// Voyage event types
const (
	VoyageStarted     Type = "voyage_started"
	StepCompleted     Type = "step_completed"
	CollisionDetected Type = "collision_detected"
	GoalReached       Type = "goal_reached"
	BodyRejected      Type = "body_rejected"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine, and a Bus must
// not be shared between goroutines.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers in subscription order
func (b *Bus) Publish(event Event) {
	for _, r := range b.handlers[event.GetType()] {
		r.handler(event)
	}
}

// Specific event implementations

// VoyageEvent is published once when a voyage starts
type VoyageEvent struct {
	BaseEvent
	RunID        string
	ShipName     string
	ShipVelocity physics.Vector3
	BodyCount    int
	TravelGoal   float64
}

// NewVoyageEvent creates a new voyage started event
func NewVoyageEvent(source interface{}, runID, shipName string, velocity physics.Vector3, bodyCount int, goal float64) *VoyageEvent {
	return &VoyageEvent{
		BaseEvent: BaseEvent{
			EventType: VoyageStarted,
			Source:    source,
		},
		RunID:        runID,
		ShipName:     shipName,
		ShipVelocity: velocity,
		BodyCount:    bodyCount,
		TravelGoal:   goal,
	}
}

// StepEvent reports the ship after one tick
type StepEvent struct {
	BaseEvent
	Tick             uint64
	ShipPosition     physics.Vector3
	DistanceTraveled float64
}

// NewStepEvent creates a new step completed event
func NewStepEvent(source interface{}, tick uint64, position physics.Vector3, distance float64) *StepEvent {
	return &StepEvent{
		BaseEvent: BaseEvent{
			EventType: StepCompleted,
			Source:    source,
		},
		Tick:             tick,
		ShipPosition:     position,
		DistanceTraveled: distance,
	}
}

// CollisionEvent contains information about the collision that ended a voyage
type CollisionEvent struct {
	BaseEvent
	Tick         uint64
	ShipPosition physics.Vector3
	BodyID       uint64
	BodyLabel    string
	BodyRadius   float64
	BodyPosition physics.Vector3
	Penetration  float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, tick uint64, shipPosition physics.Vector3, bodyID uint64, bodyLabel string, bodyRadius float64, bodyPosition physics.Vector3, penetration float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: CollisionDetected,
			Source:    source,
		},
		Tick:         tick,
		ShipPosition: shipPosition,
		BodyID:       bodyID,
		BodyLabel:    bodyLabel,
		BodyRadius:   bodyRadius,
		BodyPosition: bodyPosition,
		Penetration:  penetration,
	}
}

// GoalEvent reports that the ship covered its travel distance
type GoalEvent struct {
	BaseEvent
	Tick             uint64
	DistanceTraveled float64
}

// NewGoalEvent creates a new goal reached event
func NewGoalEvent(source interface{}, tick uint64, distance float64) *GoalEvent {
	return &GoalEvent{
		BaseEvent: BaseEvent{
			EventType: GoalReached,
			Source:    source,
		},
		Tick:             tick,
		DistanceTraveled: distance,
	}
}

// RejectionEvent reports a discarded generation candidate
type RejectionEvent struct {
	BaseEvent
	Class   string
	Index   int
	Attempt int
	Reason  error
}

// NewRejectionEvent creates a new body rejected event
func NewRejectionEvent(source interface{}, class string, index, attempt int, reason error) *RejectionEvent {
	return &RejectionEvent{
		BaseEvent: BaseEvent{
			EventType: BodyRejected,
			Source:    source,
		},
		Class:   class,
		Index:   index,
		Attempt: attempt,
		Reason:  reason,
	}
}
