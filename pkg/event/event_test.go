// pkg/event/event_test.go
package event

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-voyage/pkg/physics"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"VoyageStarted event", VoyageStarted, "test_source"},
		{"StepCompleted event", StepCompleted, 123},
		{"Empty source", GoalReached, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(StepCompleted, func(Event) {})
	sub2 := bus.Subscribe(StepCompleted, func(Event) {})
	_ = bus.Subscribe(GoalReached, func(Event) {})

	if sub1.ID == 0 || sub1.ID == sub2.ID {
		t.Errorf("expected unique non-zero IDs, got %d and %d", sub1.ID, sub2.ID)
	}

	if len(bus.handlers[StepCompleted]) != 2 {
		t.Errorf("expected 2 handlers for StepCompleted, got %d", len(bus.handlers[StepCompleted]))
	}

	if len(bus.handlers[GoalReached]) != 1 {
		t.Errorf("expected 1 handler for GoalReached, got %d", len(bus.handlers[GoalReached]))
	}
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(StepCompleted, func(Event) { order = append(order, 1) })
	bus.Subscribe(StepCompleted, func(Event) { order = append(order, 2) })
	bus.Subscribe(GoalReached, func(Event) { order = append(order, 3) })

	bus.Publish(NewStepEvent("test", 1, physics.Vector3{X: 1}, 1))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers [1 2], got %v", order)
	}
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: VoyageStarted, Source: "test"})
}

func TestSubscriptionCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	first := bus.Subscribe(GoalReached, func(Event) { calls = append(calls, "first") })
	bus.Subscribe(GoalReached, func(Event) { calls = append(calls, "second") })

	first.Cancel()
	bus.Publish(NewGoalEvent("test", 5, 5))

	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("expected only second handler, got %v", calls)
	}

	// Cancelling twice is harmless.
	first.Cancel()
	if len(bus.handlers[GoalReached]) != 1 {
		t.Errorf("expected 1 remaining handler, got %d", len(bus.handlers[GoalReached]))
	}
}

func TestEventConstructors_SetTypes(t *testing.T) {
	reason := errors.New("overlap")

	tests := []struct {
		name     string
		event    Event
		expected Type
	}{
		{"voyage", NewVoyageEvent(nil, "run", "ship", physics.Vector3{X: 1}, 3, 10), VoyageStarted},
		{"step", NewStepEvent(nil, 1, physics.Vector3{}, 0), StepCompleted},
		{"collision", NewCollisionEvent(nil, 9, physics.Vector3{X: 9}, 2, "rock", 1, physics.Vector3{X: 10}, 1), CollisionDetected},
		{"goal", NewGoalEvent(nil, 5, 5), GoalReached},
		{"rejection", NewRejectionEvent(nil, "small", 0, 1, reason), BodyRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.GetType() != tt.expected {
				t.Errorf("GetType() = %v, want %v", tt.event.GetType(), tt.expected)
			}
		})
	}
}
