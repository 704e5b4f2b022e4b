package engine

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/KirkDiggler/ability-engine/internal/engine Combat,Messenger,Catalog

// Combat applies hits and damage. The context carries the hook chain of
// the invocation so events the combat system emits can fire further hooks.
type Combat interface {
	// Damage deals amount to target. A negative result means the target
	// died, zero means a miss and a positive result is the damage done.
	Damage(ctx context.Context, actor, target *world.Character, amount, attackType int, damageType ability.DamageType) int

	// Hit makes a weapon attack with the same result convention as Damage
	Hit(ctx context.Context, actor, target *world.Character, attackType int, ranged bool) int

	// Engage starts a fight between actor and target
	Engage(ctx context.Context, actor, target *world.Character)
}

// Messenger renders and delivers ability messages to the right audience
type Messenger interface {
	Send(msg Message)
}

// Catalog looks up ability definitions
type Catalog interface {
	Get(id ability.ID) (*ability.Definition, bool)
}

// Resources moves consumables in and out of a character's inventory.
// Every call applies fully or not at all. *world.World satisfies it.
type Resources interface {
	HasResources(ch *world.Character, costs []ability.ResourceCost) bool
	ExtractResources(ch *world.Character, costs []ability.ResourceCost) bool
	GiveResources(ch *world.Character, costs []ability.ResourceCost) error
}

// Message is one line the engine wants shown. When Reason is set it is a
// notice to Actor and Slot is ignored; otherwise Slot picks the template and
// the audience (actor, victim or the room).
type Message struct {
	Actor   *world.Character
	Ability *ability.Definition

	Slot     ability.MessageSlot
	Position int

	Reason Reason
	Detail string

	Char    *world.Character
	Obj     *world.Object
	Vehicle *world.Vehicle
	Room    *world.Room

	// Tokens are small substitutions such as a healed amount
	Tokens map[string]string
}
