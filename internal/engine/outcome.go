package engine

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// Outcome is how an invocation ended. Failures are outcomes, not errors;
// the failing step has already messaged the actor when it should.
type Outcome int

const (
	// OutcomeSuccess means at least one type changed something
	OutcomeSuccess Outcome = iota
	// OutcomeStarted means an over-time ability began and will finish on a later tick
	OutcomeStarted
	// OutcomeUsageError means the actor cannot use the ability right now. No cost.
	OutcomeUsageError
	// OutcomeValidationFailure means the target or situation is not legal. No cost.
	OutcomeValidationFailure
	// OutcomeFatalValidationFailure is a validation failure that stopped a whole batch
	OutcomeFatalValidationFailure
	// OutcomeImmune means the target shrugged it off. No cost and no cooldown.
	OutcomeImmune
	// OutcomeSkillCheckFailure means the difficulty roll failed. Cost is still paid.
	OutcomeSkillCheckFailure
	// OutcomeNoEffect means every type ran and none changed anything
	OutcomeNoEffect
	// OutcomeCancelled means a prepare step, a listener or the actor stopped it
	OutcomeCancelled
)

var outcomeNames = []string{
	"success",
	"started",
	"usage-error",
	"validation-failure",
	"fatal-validation-failure",
	"immune",
	"skill-check-failure",
	"no-effect",
	"cancelled",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Succeeded reports whether the invocation had an effect or began one
func (o Outcome) Succeeded() bool {
	return o == OutcomeSuccess || o == OutcomeStarted
}

// Result reports what an invocation did
type Result struct {
	Outcome Outcome
	// Ability is the definition that actually ran after supersede resolution
	Ability *ability.Definition
	Reason  Reason
	// Cost is what was taken from the cost pool
	Cost    int
	Targets int
	Amount  int
}
