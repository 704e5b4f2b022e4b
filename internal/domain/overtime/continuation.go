// Package overtime holds the persisted state of abilities that span several
// ticks.
package overtime

import (
	"time"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// State is where a continuation is in its lifecycle
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Target records what an over-time ability was aimed at. Characters are
// found again by id first and then by temp id, which survives a character
// leaving the world and coming back.
type Target struct {
	CharacterID string                `json:"character_id,omitempty"`
	TempID      int                   `json:"temp_id,omitempty"`
	ObjectID    string                `json:"object_id,omitempty"`
	VehicleID   string                `json:"vehicle_id,omitempty"`
	RoomVnum    int                   `json:"room_vnum,omitempty"`
	HasRoom     bool                  `json:"has_room,omitempty"`
	Direction   ability.Direction     `json:"direction,omitempty"`
	HasDir      bool                  `json:"has_dir,omitempty"`
	Multi       ability.MultiCategory `json:"multi,omitempty"`
}

// Continuation is one actor's in-progress over-time ability. An actor has
// at most one.
type Continuation struct {
	ID       string     `json:"id"`
	ActorID  string     `json:"actor_id"`
	Ability  ability.ID `json:"ability"`
	Level    int        `json:"level"`
	Target   Target     `json:"target"`
	Argument string     `json:"argument,omitempty"`

	// PaidCost was taken from CostPool when the continuation started.
	// Cancelling returns exactly this much.
	PaidCost   int          `json:"paid_cost"`
	CostPool   ability.Pool `json:"cost_pool"`
	CooldownID int          `json:"cooldown_id,omitempty"`

	// Resources are the consumables extracted at start
	Resources []ability.ResourceCost `json:"resources,omitempty"`

	Ticks     int       `json:"ticks"`
	State     State     `json:"state"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRunning reports whether the continuation still needs ticks
func (c *Continuation) IsRunning() bool {
	return c != nil && c.State == StateRunning
}
