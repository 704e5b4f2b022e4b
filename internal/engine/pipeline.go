package engine

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// PrepareResult tells the pipeline whether a type runs for this target
type PrepareResult int

const (
	PrepareContinue PrepareResult = iota
	PrepareSkip
)

// TypeHandler is the behavior behind one ability type. Prepare runs for
// every active type before any Execute. A Prepare that wants to abort the
// whole invocation calls ExecutionContext.Cancel.
type TypeHandler interface {
	Type() ability.Type
	// Scales reports whether the type earns scale points
	Scales() bool
	// ChecksImmunity reports whether target immunities can block the type
	ChecksImmunity() bool
	Prepare(ctx context.Context, ec *ExecutionContext) PrepareResult
	// Execute must set ec.Success on any observable change
	Execute(ctx context.Context, ec *ExecutionContext)
	// Fail runs when the skill check is lost
	Fail(ctx context.Context, ec *ExecutionContext)
}

// baseHandler supplies the defaults most handlers keep
type baseHandler struct {
	e *Engine
}

func (baseHandler) Scales() bool { return true }

func (baseHandler) ChecksImmunity() bool { return true }

func (baseHandler) Prepare(context.Context, *ExecutionContext) PrepareResult { return PrepareContinue }

func (baseHandler) Execute(context.Context, *ExecutionContext) {}

func (baseHandler) Fail(context.Context, *ExecutionContext) {}

// classification marks types that only describe an ability
type classification struct {
	baseHandler
	typ ability.Type
}

func (c classification) Type() ability.Type { return c.typ }

func (classification) Scales() bool { return false }

// pipeline holds one handler per type in execution order
type pipeline struct {
	handlers []TypeHandler
	byType   map[ability.Type]TypeHandler
}

func newPipeline(e *Engine) *pipeline {
	base := baseHandler{e: e}
	p := &pipeline{byType: make(map[ability.Type]TypeHandler)}

	p.register(
		classification{typ: ability.TypeCraft},
		classification{typ: ability.TypePlayerTech},
		classification{typ: ability.TypePassiveBuff},
		classification{typ: ability.TypeCustom},
		teleportHandler{base},
		attackHandler{base},
		damageHandler{base},
		restoreHandler{base},
		conjureObjectHandler{base},
		conjureVehicleHandler{base},
		roomAffectHandler{base},
		buffHandler{base},
		dotHandler{base},
		buildingDamageHandler{base},
		resurrectHandler{base},
		readyWeaponsHandler{base},
		summonAnyHandler{base},
		summonRandomHandler{base},
		moveHandler{base},
		actionHandler{base},
	)
	return p
}

func (p *pipeline) register(handlers ...TypeHandler) {
	for _, h := range handlers {
		p.handlers = append(p.handlers, h)
		p.byType[h.Type()] = h
	}
}

// active returns the handlers for def's types in pipeline order
func (p *pipeline) active(def *ability.Definition) []TypeHandler {
	var out []TypeHandler
	for _, h := range p.handlers {
		if def.HasType(h.Type()) {
			out = append(out, h)
		}
	}
	return out
}

// isClassificationOnly reports whether def has nothing to execute
func (p *pipeline) isClassificationOnly(def *ability.Definition) bool {
	for _, h := range p.active(def) {
		if _, ok := h.(classification); !ok {
			return false
		}
	}
	return true
}

// runBatch runs the pipeline once per target until something stops it.
// Only a cancel raised before any target ran stops the batch.
func (e *Engine) runBatch(ctx context.Context, ec *ExecutionContext, targets []TargetSet) {
	for _, t := range targets {
		e.runPipeline(ctx, ec, t)
		if ec.cancelled != ReasonNone {
			return
		}
	}
}

func (e *Engine) runPipeline(ctx context.Context, ec *ExecutionContext, target TargetSet) {
	def := ec.Ability
	ec.beginTarget(target)
	handlers := e.pipeline.active(def)

	for _, h := range handlers {
		if !h.Scales() {
			continue
		}
		points := e.ScalePoints(ec.Actor, def, ec.Level, h.Type())
		ec.ScalePoints[h.Type()] = points
		if points > ec.MaxScale {
			ec.MaxScale = points
		}
	}

	for _, h := range handlers {
		if h.Prepare(ctx, ec) == PrepareSkip {
			ec.skipped[h.Type()] = true
		}
		if ec.Stop {
			if ec.cancelled != ReasonNone && ec.TotalTargets > 0 {
				ec.keepCharge()
			}
			return
		}
	}

	perType := false
	for _, h := range handlers {
		if !ec.skipped[h.Type()] && !h.ChecksImmunity() {
			perType = true
		}
	}
	if !perType && e.isImmune(ec) {
		e.immune(ec)
		return
	}

	ec.TotalTargets++

	if !dice.PercentChance(e.roller, def.Difficulty.SuccessChance(ec.Level)) {
		ec.skillFailures++
		ec.EngageAnyway = true
		for _, h := range handlers {
			if !ec.skipped[h.Type()] {
				h.Fail(ctx, ec)
			}
		}
		if !ec.SentFailMsg {
			e.say(ec, ability.MsgFailToChar)
			if v := ec.victim(); v != nil && v != ec.Actor {
				e.say(ec, ability.MsgFailToVict)
			}
			e.say(ec, ability.MsgFailToRoom)
			ec.SentFailMsg = true
		}
		return
	}

	prior := ec.Success
	ec.Success = false
	ran, blocked := 0, 0
	for _, h := range handlers {
		if ec.Stop {
			break
		}
		if ec.skipped[h.Type()] {
			continue
		}
		if perType && h.ChecksImmunity() && e.isImmune(ec) {
			blocked++
			continue
		}
		ran++
		h.Execute(ctx, ec)
	}
	landed := ec.Success
	ec.Success = prior || landed

	if !landed && ran == 0 && blocked > 0 {
		ec.TotalTargets--
		e.immune(ec)
		return
	}

	if landed && !ec.NoMsg {
		e.say(ec, ability.MsgToChar)
		if v := ec.victim(); v != nil && v != ec.Actor {
			e.say(ec, ability.MsgToVict)
		}
		e.say(ec, ability.MsgToRoom)
	}
}

// isImmune reports whether the current target ignores this ability
func (e *Engine) isImmune(ec *ExecutionContext) bool {
	v := ec.victim()
	if v == nil || v == ec.Actor || ec.Ability.Immunities == 0 {
		return false
	}
	return v.Immunities.Any(ec.Ability.Immunities)
}

func (e *Engine) immune(ec *ExecutionContext) {
	ec.immunities++
	e.say(ec, ability.MsgImmuneToChar)
	ec.SentFailMsg = true
}
