package engine

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// TargetSet is what one invocation is aimed at. At most one of Char, Obj,
// Vehicle and Room is set, or Multi names a class of characters.
type TargetSet struct {
	Char    *world.Character
	Obj     *world.Object
	Vehicle *world.Vehicle
	Room    *world.Room
	Multi   ability.MultiCategory

	// Dir is set when the argument was a direction word
	Dir    ability.Direction
	HasDir bool
}

// Empty reports whether nothing is targeted
func (t TargetSet) Empty() bool {
	return t.Char == nil && t.Obj == nil && t.Vehicle == nil && t.Room == nil && t.Multi == ability.MultiNone
}

// ExecutionContext is the bookkeeping for one invocation. Hooked
// invocations and every over-time tick get a fresh one. It is passed
// explicitly to every stage and never stored on the actor.
type ExecutionContext struct {
	Ability *ability.Definition
	Actor   *world.Character
	Level   int
	Hooked  bool

	// Target is the single target the pipeline is currently running on
	Target TargetSet

	TotalAmount  int
	TotalTargets int
	MaxScale     float64
	Cost         int

	ScalePoints map[ability.Type]float64

	Stop             bool
	Success          bool
	ShouldChargeCost bool
	NoMsg            bool
	SentFailMsg      bool
	SentAnyMsg       bool
	EngageAnyway     bool

	// Set by prepare stages and read by the matching execute stage
	MoveDir       ability.Direction
	MoveRoom      *world.Room
	SummonVnum    int
	RestorePool   ability.Pool
	RestoreAmount int

	skipped       map[ability.Type]bool
	tokens        map[string]string
	cancelled     Reason
	skillFailures int
	immunities    int
}

func newExecutionContext(def *ability.Definition, actor *world.Character, level int, hooked bool) *ExecutionContext {
	return &ExecutionContext{
		Ability:          def,
		Actor:            actor,
		Level:            level,
		Hooked:           hooked,
		ScalePoints:      make(map[ability.Type]float64),
		ShouldChargeCost: true,
		SummonVnum:       -1,
	}
}

// Points is the scale points the current type earned for this invocation
func (ec *ExecutionContext) Points(t ability.Type) float64 {
	return ec.ScalePoints[t]
}

// Cancel stops the invocation before anything is charged
func (ec *ExecutionContext) Cancel(reason Reason) {
	ec.Stop = true
	ec.ShouldChargeCost = false
	ec.cancelled = reason
}

// keepCharge turns a cancel raised after earlier targets already ran into
// a skip of the current target. The invocation is still charged.
func (ec *ExecutionContext) keepCharge() {
	ec.cancelled = ReasonNone
	ec.ShouldChargeCost = true
}

// beginTarget resets the per-target state before the pipeline runs again
func (ec *ExecutionContext) beginTarget(target TargetSet) {
	ec.Target = target
	ec.Stop = false
	ec.skipped = make(map[ability.Type]bool)
	ec.tokens = make(map[string]string)
}

// token records a substitution for the success messages of this target
func (ec *ExecutionContext) token(key, value string) {
	if ec.tokens == nil {
		ec.tokens = make(map[string]string)
	}
	ec.tokens[key] = value
}

// victim is the character the current target resolves to, if any
func (ec *ExecutionContext) victim() *world.Character {
	return ec.Target.Char
}

// subject is who a beneficial effect lands on: the target character or
// the actor when nothing else was chosen
func (ec *ExecutionContext) subject() *world.Character {
	if ec.Target.Char != nil {
		return ec.Target.Char
	}
	return ec.Actor
}

// place is the room the current target is in
func (ec *ExecutionContext) place() *world.Room {
	switch {
	case ec.Target.Room != nil:
		return ec.Target.Room
	case ec.Target.Char != nil && ec.Target.Char.Room != nil:
		return ec.Target.Char.Room
	case ec.Target.Vehicle != nil && ec.Target.Vehicle.Room != nil:
		return ec.Target.Vehicle.Room
	}
	return ec.Actor.Room
}

type chainKey struct{}

// hookChain is the set of abilities that already ran in one causal chain
type hookChain struct {
	fired map[ability.ID]bool
}

// withChain returns ctx carrying a hook chain, reusing the one already
// there. The boolean reports whether a new chain was started.
func withChain(ctx context.Context) (context.Context, *hookChain, bool) {
	if chain, ok := ctx.Value(chainKey{}).(*hookChain); ok {
		return ctx, chain, false
	}
	chain := &hookChain{fired: make(map[ability.ID]bool)}
	return context.WithValue(ctx, chainKey{}, chain), chain, true
}

// claim records an ability as fired and reports whether it had not yet
func (c *hookChain) claim(id ability.ID) bool {
	if c.fired[id] {
		return false
	}
	c.fired[id] = true
	return true
}

// FiredInChain reports whether an ability already ran in the causal chain
// carried by ctx
func FiredInChain(ctx context.Context, id ability.ID) bool {
	chain, ok := ctx.Value(chainKey{}).(*hookChain)
	return ok && chain.fired[id]
}
