package engine

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

type buffHandler struct{ baseHandler }

func (buffHandler) Type() ability.Type { return ability.TypeBuff }

func (h buffHandler) Execute(_ context.Context, ec *ExecutionContext) {
	def := ec.Ability
	subject := ec.subject()
	if subject.IsDead() {
		return
	}
	points := ec.Points(ability.TypeBuff)

	b := effects.NewBuilder(def.Name).
		WithSource(effects.SourceAbility, def.ID, ec.Actor.ID).
		WithTicks(h.e.effectTicks(def, subject, points)).
		WithAffects(def.Affects).
		Hostile(def.IsViolent())
	for _, m := range applyModifiers(def, points) {
		b.AddModifier(m.Location, m.Value)
	}
	if def.Flags.Has(ability.FlagCumulativeDuration) {
		b.WithStackingRule(effects.StackingExtend)
	}

	if _, _, err := subject.Effects.AddEffect(b.Build()); err != nil {
		h.e.logger.Warn("buff not applied",
			zap.Int("ability", int(def.ID)),
			zap.String("target", subject.ID),
			zap.Error(err))
		return
	}
	ec.Success = true
}

type dotHandler struct{ baseHandler }

func (dotHandler) Type() ability.Type { return ability.TypeDOT }

func (h dotHandler) Execute(_ context.Context, ec *ExecutionContext) {
	def := ec.Ability
	victim := ec.victim()
	if victim == nil || victim == ec.Actor || victim.IsDead() {
		return
	}
	points := ec.Points(ability.TypeDOT)
	ticks := h.e.effectTicks(def, victim, points)
	perTick := int(math.Round(points * h.e.tunables.DamagePerPoint / float64(ticks)))
	if perTick < 1 {
		perTick = 1
	}
	maxStacks := def.MaxStacks
	if maxStacks < 1 {
		maxStacks = 1
	}

	dot := effects.NewBuilder(def.Name).
		WithSource(effects.SourceAbility, def.ID, ec.Actor.ID).
		WithTicks(ticks).
		WithAffects(def.Affects).
		AsDOT(perTick, def.DamageType, maxStacks).
		Build()
	if _, _, err := victim.Effects.AddEffect(dot); err != nil {
		h.e.logger.Warn("dot not applied",
			zap.Int("ability", int(def.ID)),
			zap.String("target", victim.ID),
			zap.Error(err))
		return
	}
	ec.Success = true
}

type roomAffectHandler struct{ baseHandler }

func (roomAffectHandler) Type() ability.Type { return ability.TypeRoomAffect }

func (roomAffectHandler) ChecksImmunity() bool { return false }

func (h roomAffectHandler) Execute(_ context.Context, ec *ExecutionContext) {
	def := ec.Ability
	room := ec.place()
	if room == nil {
		return
	}
	ticks := h.e.effectTicks(def, nil, ec.Points(ability.TypeRoomAffect))

	b := effects.NewBuilder(def.Name).
		WithSource(effects.SourceAbility, def.ID, ec.Actor.ID).
		WithTicks(ticks).
		WithAffects(def.Affects).
		AsRoomEffect().
		Hostile(def.IsViolent())
	if def.Flags.Has(ability.FlagCumulativeDuration) {
		b.WithStackingRule(effects.StackingExtend)
	}
	if _, _, err := room.Effects.AddEffect(b.Build()); err != nil {
		h.e.logger.Warn("room effect not applied",
			zap.Int("ability", int(def.ID)),
			zap.Int("room", room.Vnum),
			zap.Error(err))
		return
	}
	ec.Success = true
}

// effectTicks picks the authored short or long duration, or derives one
// from scale points when neither is set. Violent abilities and targets in
// combat use the short duration.
func (e *Engine) effectTicks(def *ability.Definition, target *world.Character, points float64) int {
	short := def.IsViolent() || (target != nil && target.InCombat())
	ticks := def.LongDuration
	if short {
		ticks = def.ShortDuration
	}
	if ticks <= 0 {
		ticks = max(def.ShortDuration, def.LongDuration)
	}
	if ticks <= 0 {
		ticks = int(math.Ceil(points * e.tunables.BuffTicksPerPoint))
	}
	return max(ticks, 1)
}

// applyModifiers spreads points across def's applies by weight. A nonzero
// weight always yields at least one point.
func applyModifiers(def *ability.Definition, points float64) []effects.Modifier {
	total := 0.0
	for _, a := range def.Applies {
		total += math.Abs(a.Weight)
	}
	if total == 0 {
		return nil
	}

	out := make([]effects.Modifier, 0, len(def.Applies))
	for _, a := range def.Applies {
		if a.Weight == 0 || a.Location == ability.ApplyNone {
			continue
		}
		value := int(math.Round(points * a.Weight / total))
		if value == 0 {
			value = 1
			if a.Weight < 0 {
				value = -1
			}
		}
		out = append(out, effects.Modifier{Location: a.Location, Value: value})
	}
	return out
}
