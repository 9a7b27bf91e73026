package engine

import (
	"github.com/opd-ai/go-voyage/pkg/entity"
	"github.com/opd-ai/go-voyage/pkg/physics"
)

// VoyageState represents a snapshot of the voyage
type VoyageState struct {
	RunID            string          `json:"runId"`
	ShipName         string          `json:"shipName,omitempty"`
	Tick             uint64          `json:"tick"`
	Status           string          `json:"status"`
	ShipPosition     physics.Vector3 `json:"shipPosition"`
	ShipVelocity     physics.Vector3 `json:"shipVelocity"`
	DistanceTraveled float64         `json:"distanceTraveled"`
	TravelGoal       float64         `json:"travelGoal"`
	BodyCount        int             `json:"bodyCount"`
	Collision        *CollisionState `json:"collision,omitempty"`
	ElapsedSeconds   float64         `json:"elapsedSeconds"`
}

// CollisionState represents a snapshot of the body that ended the voyage
type CollisionState struct {
	BodyID      entity.ID       `json:"bodyId"`
	Label       string          `json:"label,omitempty"`
	Radius      float64         `json:"radius"`
	Position    physics.Vector3 `json:"position"`
	Distance    float64         `json:"distance"`
	Penetration float64         `json:"penetration"`
}

// GetState returns a snapshot of the voyage
func (v *Voyage) GetState() *VoyageState {
	state := &VoyageState{
		RunID:            v.RunID,
		ShipName:         v.ShipName,
		Tick:             v.CurrentTick,
		Status:           v.Status.String(),
		ShipPosition:     v.Ship.Position(),
		ShipVelocity:     v.Ship.Velocity(),
		DistanceTraveled: v.DistanceTraveled,
		TravelGoal:       v.TravelGoal,
		BodyCount:        len(v.Bodies),
		ElapsedSeconds:   v.elapsed.Seconds(),
	}

	if v.collider != nil {
		state.Collision = &CollisionState{
			BodyID:      v.collider.GetID(),
			Label:       v.collider.Label(),
			Radius:      v.collider.Radius(),
			Position:    v.collider.Position(),
			Distance:    v.collision.Distance,
			Penetration: v.collision.Penetration,
		}
	}
	return state
}
