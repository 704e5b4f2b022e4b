package engine

// Reason says why an ability could not be used or stopped. The messaging
// collaborator turns it into text.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotOwned
	ReasonPassive
	ReasonCooldown
	ReasonCost
	ReasonNoResources
	ReasonNoTool
	ReasonPosition
	ReasonAnimal
	ReasonInvulnerable
	ReasonRole
	ReasonDark
	ReasonPeaceful
	ReasonFighting
	ReasonNotFighting
	ReasonSunlight
	ReasonSilenced
	ReasonBusy
	ReasonNoTarget
	ReasonNotFound
	ReasonAmbiguous
	ReasonSelfOnly
	ReasonNotSelf
	ReasonNotAlly
	ReasonNotEnemy
	ReasonTargetDead
	ReasonTargetAlive
	ReasonOutOfRange
	ReasonTargetInvulnerable
	ReasonLimitation
	ReasonNoValidTargets
	ReasonImmune
	ReasonFailed
	ReasonNoEffect
	ReasonInventoryFull
	ReasonNoTeleport
	ReasonNoExit
	ReasonToggledOff
	ReasonVetoed
	ReasonStopped
	ReasonDied
	ReasonLostPreconditions
	ReasonLostTarget
)

var reasonNames = []string{
	"none",
	"not-owned",
	"passive",
	"cooldown",
	"cost",
	"no-resources",
	"no-tool",
	"position",
	"animal",
	"invulnerable",
	"role",
	"dark",
	"peaceful",
	"fighting",
	"not-fighting",
	"sunlight",
	"silenced",
	"busy",
	"no-target",
	"not-found",
	"ambiguous",
	"self-only",
	"not-self",
	"not-ally",
	"not-enemy",
	"target-dead",
	"target-alive",
	"out-of-range",
	"target-invulnerable",
	"limitation",
	"no-valid-targets",
	"immune",
	"failed",
	"no-effect",
	"inventory-full",
	"no-teleport",
	"no-exit",
	"toggled-off",
	"vetoed",
	"stopped",
	"died",
	"lost-preconditions",
	"lost-target",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}
