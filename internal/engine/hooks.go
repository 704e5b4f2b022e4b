package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// FireHooks runs every ability the actor owns that hooks trigger with
// value. Each ability fires at most once per causal chain; the chain
// travels in ctx. It returns how many hooked abilities succeeded.
func (e *Engine) FireHooks(ctx context.Context, actor *world.Character, trigger ability.HookTrigger, value int, incoming TargetSet) int {
	if actor == nil {
		return 0
	}
	ctx, chain, _ := withChain(ctx)

	fired := 0
	for _, id := range ownedAbilities(actor) {
		if chain.fired[id] {
			continue
		}
		def, ok := e.catalog.Get(id)
		if !ok {
			continue
		}
		hook, ok := matchingHook(def, trigger, value)
		if !ok {
			continue
		}
		if !dice.PercentChance(e.roller, hook.Percent) {
			continue
		}
		if e.preCheck(actor, def, true) != ReasonNone {
			continue
		}
		target, ok := e.remapTarget(actor, def, incoming)
		if !ok {
			continue
		}
		chain.claim(id)

		hctx, span := e.tracer.Start(ctx, "ability.hook", trace.WithAttributes(
			attribute.Int("ability.id", int(id)),
			attribute.String("hook.trigger", trigger.String()),
			attribute.String("actor.id", actor.ID),
		))
		res, err := e.invoke(hctx, invocation{actor: actor, def: def, level: actor.Level, targets: &target, hooked: true})
		span.SetAttributes(attribute.String("ability.outcome", res.Outcome.String()))
		span.End()

		if err != nil {
			e.logger.Error("hooked ability failed",
				zap.Int("ability", int(id)),
				zap.String("actor", actor.ID),
				zap.Error(err))
			continue
		}
		if res.Outcome.Succeeded() {
			fired++
		}
	}
	return fired
}

func matchingHook(def *ability.Definition, trigger ability.HookTrigger, value int) (ability.Hook, bool) {
	for _, h := range def.Hooks {
		if h.Matches(trigger, value) {
			return h, true
		}
	}
	return ability.Hook{}, false
}

// remapTarget aims a hooked ability: self-only abilities hit the actor,
// then the event's character if the ability can take it, then the fight
// opponent, the current room or a multi class.
func (e *Engine) remapTarget(actor *world.Character, def *ability.Definition, incoming TargetSet) (TargetSet, bool) {
	mask := def.Targets
	if mask == 0 {
		return TargetSet{}, true
	}
	if mask.SelfOnly() {
		return TargetSet{Char: actor}, true
	}
	if ch := incoming.Char; ch != nil && accepts(actor, def, ch) {
		return TargetSet{Char: ch}, true
	}
	if opp := actor.Fighting; opp != nil && mask.Any(ability.TargetFightVictim|ability.TargetCharRoom) && accepts(actor, def, opp) {
		return TargetSet{Char: opp}, true
	}
	if mask.Any(ability.TargetAnyRoom) && actor.Room != nil {
		return TargetSet{Room: actor.Room}, true
	}
	for _, m := range ability.MultiCategories() {
		if mask.Any(m.Flag()) {
			return TargetSet{Multi: m}, true
		}
	}
	if mask.Any(ability.TargetSelf) && !def.IsViolent() {
		return TargetSet{Char: actor}, true
	}
	return TargetSet{}, false
}

// accepts reports whether def's target mask covers ch from where actor is
func accepts(actor *world.Character, def *ability.Definition, ch *world.Character) bool {
	mask := def.Targets
	if ch.IsDead() && !mask.Any(ability.TargetDeadOK) && !def.HasType(ability.TypeResurrect) {
		return false
	}
	switch {
	case ch == actor:
		return mask.Any(ability.TargetSelf | ability.TargetFightSelf)
	case ch.Room == actor.Room:
		return mask.Any(ability.TargetCharRoom | ability.TargetCharClosest | ability.TargetCharWorld | ability.TargetFightVictim)
	}
	return mask.Any(ability.TargetCharClosest | ability.TargetCharWorld)
}
