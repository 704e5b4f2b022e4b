package engine

import (
	"context"
	"strconv"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

type attackHandler struct{ baseHandler }

func (attackHandler) Type() ability.Type { return ability.TypeAttack }

func (h attackHandler) Execute(ctx context.Context, ec *ExecutionContext) {
	victim := ec.victim()
	if victim == nil || victim == ec.Actor {
		return
	}
	ranged := ec.Ability.Flags.Has(ability.FlagRanged)
	strike(ec, h.e.combat.Hit(ctx, ec.Actor, victim, ec.Ability.AttackType, ranged))
}

// Fail swings for nothing so the target notices the attempt
func (h attackHandler) Fail(ctx context.Context, ec *ExecutionContext) {
	victim := ec.victim()
	if victim == nil || victim == ec.Actor {
		return
	}
	h.e.combat.Damage(ctx, ec.Actor, victim, 0, ec.Ability.AttackType, ec.Ability.DamageType)
	ec.SentFailMsg = true
}

type damageHandler struct{ baseHandler }

func (damageHandler) Type() ability.Type { return ability.TypeDamage }

func (h damageHandler) Execute(ctx context.Context, ec *ExecutionContext) {
	victim := ec.victim()
	if victim == nil || victim == ec.Actor {
		return
	}
	amount := amountFor(ec.Points(ability.TypeDamage), h.e.tunables.DamagePerPoint)
	amount += ec.Actor.Effects.ModifierTotal(damageBonus(ec.Ability.DamageType))
	strike(ec, h.e.combat.Damage(ctx, ec.Actor, victim, amount, ec.Ability.AttackType, ec.Ability.DamageType))
}

func (h damageHandler) Fail(ctx context.Context, ec *ExecutionContext) {
	victim := ec.victim()
	if victim == nil || victim == ec.Actor || ec.Ability.HasType(ability.TypeAttack) {
		return
	}
	h.e.combat.Damage(ctx, ec.Actor, victim, 0, ec.Ability.AttackType, ec.Ability.DamageType)
	ec.SentFailMsg = true
}

// strike records a combat result: negative means the target died and zero
// is a miss
func strike(ec *ExecutionContext, result int) {
	switch {
	case result < 0:
		ec.Success = true
		ec.Stop = true
	case result == 0:
		ec.EngageAnyway = true
		if ec.Ability.Flags.Has(ability.FlagStopOnMiss) {
			ec.Stop = true
		}
	default:
		ec.Success = true
		ec.TotalAmount += result
		ec.token("amount", strconv.Itoa(result))
	}
}

func damageBonus(dt ability.DamageType) ability.ApplyLocation {
	switch dt {
	case ability.DamagePhysical:
		return ability.ApplyBonusPhysical
	case ability.DamageDirect:
		return ability.ApplyNone
	}
	return ability.ApplyBonusMagical
}

type restoreHandler struct{ baseHandler }

func (restoreHandler) Type() ability.Type { return ability.TypeRestore }

func (restoreHandler) ChecksImmunity() bool { return false }

func (h restoreHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	ec.RestorePool = ability.PoolHealth
	if d, ok := ec.Ability.FirstData(ability.DataRestorePool); ok {
		if d.Vnum < 0 || d.Vnum >= int(ability.NumPools) {
			return PrepareSkip
		}
		ec.RestorePool = ability.Pool(d.Vnum)
	}
	ec.RestoreAmount = amountFor(ec.Points(ability.TypeRestore), h.e.tunables.RestorePerPoint)
	if ec.RestorePool == ability.PoolHealth {
		ec.RestoreAmount += ec.Actor.Effects.ModifierTotal(ability.ApplyBonusHealing)
	}
	return PrepareContinue
}

func (h restoreHandler) Execute(_ context.Context, ec *ExecutionContext) {
	subject := ec.subject()
	if subject.IsDead() {
		return
	}
	gained := subject.Pool(ec.RestorePool).Heal(ec.RestoreAmount)
	if gained <= 0 {
		return
	}
	ec.Success = true
	ec.TotalAmount += gained
	ec.token("amount", strconv.Itoa(gained))
}

type resurrectHandler struct{ baseHandler }

func (resurrectHandler) Type() ability.Type { return ability.TypeResurrect }

func (resurrectHandler) ChecksImmunity() bool { return false }

func (h resurrectHandler) Execute(ctx context.Context, ec *ExecutionContext) {
	victim := ec.victim()
	if victim == nil || !victim.IsDead() {
		return
	}

	victim.Position = ability.PositionStanding
	victim.Fighting = nil
	health := victim.Pool(ability.PoolHealth)
	health.Current = 0
	if health.Heal(amountFor(ec.Points(ability.TypeResurrect), h.e.tunables.RestorePerPoint)) == 0 {
		health.Current = 1
	}
	ec.Success = true

	h.e.emit(&events.RespawnEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeRespawn, Actor: victim, Target: ec.Actor, Ctx: ctx},
	})
}

// engage starts fights with the characters a violent ability touched
func (e *Engine) engage(ctx context.Context, ec *ExecutionContext, targets []TargetSet) {
	def := ec.Ability
	if !def.IsViolent() || def.Flags.Has(ability.FlagNoEngage) || ec.cancelled != ReasonNone {
		return
	}
	if !ec.Success && !ec.EngageAnyway {
		return
	}

	actor := ec.Actor
	for _, t := range targets {
		victim := t.Char
		if victim == nil || victim == actor || victim.IsDead() || actor.IsDead() || victim.Room != actor.Room {
			continue
		}
		if def.Immunities != 0 && victim.Immunities.Any(def.Immunities) {
			continue
		}
		if actor.Fighting == victim && victim.Fighting == actor {
			continue
		}
		e.combat.Engage(ctx, actor, victim)
	}
}
