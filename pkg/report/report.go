// Package report turns voyage events into log entries and summaries.
package report

import (
	"context"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/opd-ai/go-voyage/pkg/engine"
	"github.com/opd-ai/go-voyage/pkg/event"
	"github.com/opd-ai/go-voyage/pkg/logging"
)

// Reporter logs the events of a voyage as they are published.
type Reporter struct {
	ctx          context.Context
	logger       *logging.Logger
	stepInterval uint64
	subs         []*event.Subscription
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithStepInterval logs only every n-th step. Steps are logged at DEBUG,
// so nothing is written for them unless the logger is at that level.
func WithStepInterval(n uint64) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.stepInterval = n
		}
	}
}

// NewReporter creates a reporter writing to logger. Entries carry the
// correlation ID found in ctx.
func NewReporter(ctx context.Context, logger *logging.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		ctx:          ctx,
		logger:       logger,
		stepInterval: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach subscribes the reporter to every voyage event on bus.
func (r *Reporter) Attach(bus *event.Bus) {
	r.subs = append(r.subs,
		bus.Subscribe(event.VoyageStarted, r.handleVoyageStarted),
		bus.Subscribe(event.StepCompleted, r.handleStep),
		bus.Subscribe(event.CollisionDetected, r.handleCollision),
		bus.Subscribe(event.GoalReached, r.handleGoal),
		bus.Subscribe(event.BodyRejected, r.handleRejection),
	)
}

// Detach removes every subscription made by Attach.
func (r *Reporter) Detach() {
	for _, sub := range r.subs {
		sub.Cancel()
	}
	r.subs = nil
}

func (r *Reporter) handleVoyageStarted(e event.Event) {
	ev := e.(*event.VoyageEvent)
	r.logger.Info(r.ctx, "Course laid in, engaging",
		"run_id", ev.RunID,
		"ship", ev.ShipName,
		"velocity", ev.ShipVelocity.String(),
		"speed", ev.ShipVelocity.Magnitude(),
		"bodies", ev.BodyCount,
		"travel_goal", ev.TravelGoal,
	)
}

func (r *Reporter) handleStep(e event.Event) {
	ev := e.(*event.StepEvent)
	if ev.Tick%r.stepInterval != 0 || !r.logger.Enabled(zapcore.DebugLevel) {
		return
	}
	r.logger.Debug(r.ctx, "Step completed",
		"tick", ev.Tick,
		"position", ev.ShipPosition.String(),
		"distance", ev.DistanceTraveled,
	)
}

func (r *Reporter) handleCollision(e event.Event) {
	ev := e.(*event.CollisionEvent)
	r.logger.Info(r.ctx, "Collision detected",
		"tick", ev.Tick,
		"position", ev.ShipPosition.String(),
		"body_id", ev.BodyID,
		"body_class", ev.BodyLabel,
		"body_radius", ev.BodyRadius,
		"body_position", ev.BodyPosition.String(),
		"penetration", ev.Penetration,
	)
}

func (r *Reporter) handleGoal(e event.Event) {
	ev := e.(*event.GoalEvent)
	r.logger.Info(r.ctx, "Travel goal reached",
		"tick", ev.Tick,
		"distance", ev.DistanceTraveled,
	)
}

func (r *Reporter) handleRejection(e event.Event) {
	ev := e.(*event.RejectionEvent)
	r.logger.Debug(r.ctx, "Invalid starting position, re-generating",
		"class", ev.Class,
		"index", ev.Index,
		"attempt", ev.Attempt,
		"reason", ev.Reason.Error(),
	)
}

// Summary describes a voyage result in one line.
func Summary(result engine.Result) string {
	switch result.Status {
	case engine.StatusCollided:
		body := result.Collider
		return fmt.Sprintf("collided with %s #%d (radius %g) at tick %d, %g from origin, after %s",
			classOf(body.Label()), body.GetID(), body.Radius(), result.Tick, result.DistanceTraveled, result.Elapsed)
	case engine.StatusCompleted:
		return fmt.Sprintf("completed at tick %d, %g from origin, after %s",
			result.Tick, result.DistanceTraveled, result.Elapsed)
	default:
		return fmt.Sprintf("%s at tick %d, %g from origin, after %s",
			result.Status, result.Tick, result.DistanceTraveled, result.Elapsed)
	}
}

func classOf(label string) string {
	if label == "" {
		return "body"
	}
	return label + " body"
}
