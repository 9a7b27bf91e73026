// Package sector generates populations of bodies inside a cubic region of space.
package sector

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-voyage/pkg/entity"
	"github.com/opd-ai/go-voyage/pkg/physics"
)

// DefaultMaxAttempts bounds the candidates drawn for a single body before giving up.
const DefaultMaxAttempts = 10000

var (
	// ErrGenerationExhausted reports that rejection sampling ran out of attempts.
	ErrGenerationExhausted = errors.New("generation exhausted")
	// ErrAvoidOverlap marks a candidate rejected for overlapping the avoided body.
	ErrAvoidOverlap = errors.New("candidate overlaps avoided body")
)

// BodyClass describes the random ranges for one kind of body.
type BodyClass struct {
	Label     string
	MinRadius float64
	MaxRadius float64
	MaxSpeed  float64
}

// Validate checks the class ranges.
func (c BodyClass) Validate() error {
	if !finite(c.MinRadius) || c.MinRadius < 0 {
		return fmt.Errorf("class %q min radius %v: %w", c.Label, c.MinRadius, physics.ErrInvalidArgument)
	}
	if !finite(c.MaxRadius) || c.MaxRadius < c.MinRadius {
		return fmt.Errorf("class %q max radius %v below min radius %v: %w",
			c.Label, c.MaxRadius, c.MinRadius, physics.ErrInvalidArgument)
	}
	if !finite(c.MaxSpeed) || c.MaxSpeed < 0 {
		return fmt.Errorf("class %q max speed %v: %w", c.Label, c.MaxSpeed, physics.ErrInvalidArgument)
	}
	return nil
}

// Rejection describes a discarded candidate.
type Rejection struct {
	Class   string
	Index   int // position of the body being generated within the call
	Attempt int // 1-based attempt number for that body
	Reason  error
}

type generateOptions struct {
	avoid       *entity.Body
	maxAttempts int
	onReject    func(Rejection)
}

// GenerateOption configures Generate.
type GenerateOption func(*generateOptions)

// WithAvoid makes every generated body clear of avoid at time zero.
func WithAvoid(avoid *entity.Body) GenerateOption {
	return func(o *generateOptions) {
		o.avoid = avoid
	}
}

// WithMaxAttempts sets the per-body candidate budget.
func WithMaxAttempts(n int) GenerateOption {
	return func(o *generateOptions) {
		o.maxAttempts = n
	}
}

// WithRejectionHandler is called for every discarded candidate.
func WithRejectionHandler(fn func(Rejection)) GenerateOption {
	return func(o *generateOptions) {
		o.onReject = fn
	}
}

// Generate creates count bodies with radius, position, speed and heading drawn
// uniformly from class and [0, extent]. Generated bodies may overlap each other.
func Generate(src physics.Source, count int, class BodyClass, extent float64, opts ...GenerateOption) ([]*entity.Body, error) {
	o := generateOptions{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateRequest(count, class, extent, o.maxAttempts); err != nil {
		return nil, err
	}

	bodies := make([]*entity.Body, 0, count)
	for i := 0; i < count; i++ {
		body, err := generateOne(src, i, class, extent, &o)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

func validateRequest(count int, class BodyClass, extent float64, maxAttempts int) error {
	if count < 0 {
		return fmt.Errorf("body count %d: %w", count, physics.ErrInvalidArgument)
	}
	if !finite(extent) || extent <= 0 {
		return fmt.Errorf("sector extent %v: %w", extent, physics.ErrInvalidArgument)
	}
	if maxAttempts < 1 {
		return fmt.Errorf("max attempts %d: %w", maxAttempts, physics.ErrInvalidArgument)
	}
	return class.Validate()
}

// generateOne draws candidates until one is valid or the budget runs out.
func generateOne(src physics.Source, index int, class BodyClass, extent float64, o *generateOptions) (*entity.Body, error) {
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		body, err := drawCandidate(src, class, extent)
		if err == nil && o.avoid != nil && body.OverlapsAtOrigin(o.avoid) {
			err = ErrAvoidOverlap
		}
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, physics.ErrDegenerateDirection) && !errors.Is(err, ErrAvoidOverlap) {
			return nil, err
		}
		if o.onReject != nil {
			o.onReject(Rejection{Class: class.Label, Index: index, Attempt: attempt, Reason: err})
		}
	}
	return nil, fmt.Errorf("%q body %d: no valid candidate after %d attempts: %w",
		class.Label, index, o.maxAttempts, ErrGenerationExhausted)
}

func drawCandidate(src physics.Source, class BodyClass, extent float64) (*entity.Body, error) {
	radius := physics.Uniform(src, class.MinRadius, class.MaxRadius)
	position := physics.RandomInRange(src, 0, extent)
	speed := physics.Uniform(src, 0, class.MaxSpeed)
	direction := physics.RandomInRange(src, 0, extent)

	velocity, err := physics.VelocityFromSpeedAndDirection(speed, direction)
	if err != nil {
		return nil, err
	}
	return entity.NewBody(radius, position, velocity, entity.WithLabel(class.Label))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
