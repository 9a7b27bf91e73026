package engine

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-voyage/pkg/config"
	"github.com/opd-ai/go-voyage/pkg/entity"
	"github.com/opd-ai/go-voyage/pkg/event"
	"github.com/opd-ai/go-voyage/pkg/physics"
	"github.com/opd-ai/go-voyage/pkg/sector"
)

// ShipLabel is the label given to the traveling ship.
const ShipLabel = "ship"

// Launch builds the ship and its sector from cfg and returns a voyage ready
// to run. Every random draw comes from src, so the same seed yields the same
// voyage. Rejected generation candidates are published on bus, which may be
// nil.
func Launch(cfg *config.VoyageConfig, units config.Units, src physics.Source, bus *event.Bus) (*Voyage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid voyage config: %w", err)
	}
	if bus == nil {
		bus = event.NewEventBus()
	}

	extent := cfg.SectorExtent(units)
	ship, err := buildShip(cfg, units, src, extent)
	if err != nil {
		return nil, err
	}

	space, err := sector.New(extent)
	if err != nil {
		return nil, err
	}

	for _, class := range cfg.Sector.Classes {
		err := space.Populate(src, class.Count, class.BodyClass(),
			sector.WithAvoid(ship),
			sector.WithMaxAttempts(cfg.Attempts()),
			sector.WithRejectionHandler(func(r sector.Rejection) {
				bus.Publish(event.NewRejectionEvent(space, r.Class, r.Index, r.Attempt, r.Reason))
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}
	}

	return NewVoyage(ship, space.Bodies(), cfg.TravelGoal(units),
		WithEventBus(bus),
		WithOrigin(units.Origin),
		WithShipName(cfg.Ship.Name),
	)
}

// buildShip places the ship at the universe origin heading along the
// configured direction, or a random one drawn like a body heading.
func buildShip(cfg *config.VoyageConfig, units config.Units, src physics.Source, extent float64) (*entity.Body, error) {
	speed := cfg.ShipSpeed(units)

	var velocity physics.Vector3
	if cfg.Ship.Direction != nil {
		v, err := physics.VelocityFromSpeedAndDirection(speed, *cfg.Ship.Direction)
		if err != nil {
			return nil, fmt.Errorf("ship heading: %w", err)
		}
		velocity = v
	} else {
		v, err := randomVelocity(src, speed, extent, cfg.Attempts())
		if err != nil {
			return nil, err
		}
		velocity = v
	}

	if !velocity.IsFinite() || velocity.IsZero() {
		return nil, fmt.Errorf("ship velocity %s: %w", velocity, physics.ErrInvalidArgument)
	}

	return entity.NewBody(cfg.Ship.Radius, units.Origin, velocity, entity.WithLabel(ShipLabel))
}

func randomVelocity(src physics.Source, speed, extent float64, attempts int) (physics.Vector3, error) {
	for i := 0; i < attempts; i++ {
		v, err := physics.VelocityFromSpeedAndDirection(speed, physics.RandomInRange(src, 0, extent))
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, physics.ErrDegenerateDirection) {
			return physics.Vector3{}, err
		}
	}
	return physics.Vector3{}, fmt.Errorf("ship heading: no usable direction after %d attempts: %w",
		attempts, sector.ErrGenerationExhausted)
}
