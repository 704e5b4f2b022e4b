package engine

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// Verdict is the result of validating one target. A fatal failure also
// suppresses the per-target message: callers send it once for the batch.
type Verdict struct {
	OK               bool
	Fatal            bool
	SuppressMessages bool
	Reason           Reason
	Detail           string
}

func pass() Verdict { return Verdict{OK: true} }

func reject(reason Reason, fatal bool, detail string) Verdict {
	return Verdict{Reason: reason, Fatal: fatal, SuppressMessages: fatal, Detail: detail}
}

// PreCheck runs the actor-level checks that do not depend on a target
func (e *Engine) PreCheck(actor *world.Character, def *ability.Definition) Reason {
	return e.preCheck(actor, def, true)
}

// preCheck skips cost, cooldown and consumables when economy is false,
// which is how running over-time abilities are revalidated each tick
func (e *Engine) preCheck(actor *world.Character, def *ability.Definition, economy bool) Reason {
	if !actor.Owns(def.ID) {
		return ReasonNotOwned
	}
	if e.pipeline.isClassificationOnly(def) {
		return ReasonPassive
	}

	if economy {
		if actor.CooldownRemaining(def.CooldownID, e.clock.Now()) > 0 {
			return ReasonCooldown
		}
		if !e.canAfford(actor, def, e.EstimateCost(actor, def, actor.Level)) {
			return ReasonCost
		}
		if len(def.ResourceCost) > 0 && !e.resources.HasResources(actor, def.ResourceCost) {
			return ReasonNoResources
		}
	}

	if def.RequiresTool != 0 && actor.Carrying(def.RequiresTool) == nil {
		return ReasonNoTool
	}
	if actor.Position < def.MinPosition {
		return ReasonPosition
	}
	if def.Flags.Has(ability.FlagNoAnimal) && actor.Has(world.CharAnimal) {
		return ReasonAnimal
	}
	if def.Flags.Has(ability.FlagNoInvulnerable) && actor.Has(world.CharInvulnerable) {
		return ReasonInvulnerable
	}
	if def.Flags.Has(ability.FlagSolo) && actor.Role != ability.RoleSolo {
		return ReasonRole
	}

	room := actor.Room
	if room != nil {
		if def.Flags.Has(ability.FlagNeedsLight) && !room.IsLit(e.world.Daylight) {
			return ReasonDark
		}
		if def.IsViolent() && room.Has(world.RoomPeaceful) {
			return ReasonPeaceful
		}
		if def.Flags.Has(ability.FlagSunSensitive) && actor.Has(world.CharVampire) && room.Sunlit(e.world.Daylight) {
			return ReasonSunlight
		}
	}
	if def.Flags.Has(ability.FlagNotInCombat) && actor.InCombat() {
		return ReasonFighting
	}
	if def.Flags.Has(ability.FlagOnlyInCombat) && !actor.InCombat() {
		return ReasonNotFighting
	}
	if def.Flags.Has(ability.FlagSpoken) && actor.Affected(ability.AffectSilence) {
		return ReasonSilenced
	}
	if actor.Affected(ability.AffectStun) {
		return ReasonPosition
	}
	return ReasonNone
}

// ValidateTarget checks one target against every legality rule
func (e *Engine) ValidateTarget(actor *world.Character, def *ability.Definition, target TargetSet) Verdict {
	ec := newExecutionContext(def, actor, actor.Level, false)
	return e.validateTarget(ec, target, false)
}

func (e *Engine) validateTarget(ec *ExecutionContext, t TargetSet, messaged bool) Verdict {
	v := e.judge(ec, t)
	if !v.OK && messaged && !v.SuppressMessages {
		e.notifyTarget(ec.Actor, ec.Ability, v.Reason, v.Detail, t)
		ec.SentFailMsg = true
	}
	return v
}

func (e *Engine) judge(ec *ExecutionContext, t TargetSet) Verdict {
	actor, def := ec.Actor, ec.Ability
	mask := def.Targets

	if ch := t.Char; ch != nil {
		if mask.SelfOnly() && ch != actor {
			return reject(ReasonSelfOnly, false, "")
		}
		if ch == actor && (mask.Any(ability.TargetNotSelf) || (def.IsViolent() && !mask.Any(ability.TargetSelf|ability.TargetFightSelf))) {
			return reject(ReasonNotSelf, false, "")
		}
		if ch != actor && mask.Any(ability.TargetNotAlly) && actor.IsAlly(ch) {
			return reject(ReasonNotAlly, false, "")
		}
		if mask.Any(ability.TargetNotEnemy) && actor.IsEnemy(ch) {
			return reject(ReasonNotEnemy, false, "")
		}
		if def.HasType(ability.TypeResurrect) {
			if !ch.IsDead() {
				return reject(ReasonTargetAlive, false, "")
			}
		} else if ch.IsDead() && !mask.Any(ability.TargetDeadOK) {
			return reject(ReasonTargetDead, false, "")
		}
		if def.IsViolent() && ch != actor && ch.Has(world.CharInvulnerable) {
			return reject(ReasonTargetInvulnerable, false, "")
		}
		if def.IsViolent() && ch.Room != nil && ch.Room.Has(world.RoomPeaceful) {
			return reject(ReasonPeaceful, false, "")
		}
		if !e.inRange(actor, def, ch.Room) {
			return reject(ReasonOutOfRange, false, "")
		}
	}

	if t.Room != nil && def.HasType(ability.TypeTeleport) && t.Room.Has(world.RoomNoTeleport) {
		return reject(ReasonNoTeleport, false, "")
	}
	if t.Vehicle != nil && !e.inRange(actor, def, t.Vehicle.Room) && !mask.Any(ability.TargetVehicleWorld) {
		return reject(ReasonOutOfRange, false, "")
	}

	return e.checkLimitations(actor, def, t)
}

// inRange reports whether something in room can be reached
func (e *Engine) inRange(actor *world.Character, def *ability.Definition, room *world.Room) bool {
	if room == nil || actor.Room == nil || room == actor.Room {
		return true
	}
	if def.Flags.Has(ability.FlagMelee) {
		return false
	}
	if r, ok := def.FirstData(ability.DataRange); ok {
		return roomDistance(actor.Room, room, r.Vnum) >= 0
	}
	if def.Targets.Any(ability.TargetCharWorld | ability.TargetObjWorld | ability.TargetVehicleWorld) {
		return true
	}
	if def.Targets.Any(ability.TargetCharClosest) {
		return roomDistance(actor.Room, room, defaultRange) >= 0
	}
	return !def.IsViolent() || def.Flags.Has(ability.FlagRanged)
}

// collectTargets validates the resolved target and expands a multi target
// into the characters it covers
func (e *Engine) collectTargets(ec *ExecutionContext, target TargetSet, messaged bool) ([]TargetSet, Verdict) {
	if target.Multi == ability.MultiNone {
		v := e.validateTarget(ec, target, messaged)
		if !v.OK {
			if v.Fatal && messaged {
				e.notifyTarget(ec.Actor, ec.Ability, v.Reason, v.Detail, target)
				ec.SentFailMsg = true
			}
			return nil, v
		}
		return []TargetSet{target}, v
	}

	room := ec.Actor.Room
	if room == nil {
		return nil, e.noValidTargets(ec, messaged)
	}

	people := append([]*world.Character(nil), room.People...)
	var out []TargetSet
	for _, ch := range people {
		if !inCategory(ec.Actor, ec.Ability, target.Multi, ch) {
			continue
		}
		t := TargetSet{Char: ch}
		v := e.validateTarget(ec, t, false)
		if v.OK {
			out = append(out, t)
			continue
		}
		if v.Fatal {
			if messaged {
				e.notifyTarget(ec.Actor, ec.Ability, v.Reason, v.Detail, t)
				ec.SentFailMsg = true
			}
			return nil, v
		}
	}
	if len(out) == 0 {
		return nil, e.noValidTargets(ec, messaged)
	}
	return out, pass()
}

func (e *Engine) noValidTargets(ec *ExecutionContext, messaged bool) Verdict {
	if messaged {
		e.notify(ec.Actor, ec.Ability, ReasonNoValidTargets, "")
		ec.SentFailMsg = true
	}
	return reject(ReasonNoValidTargets, false, "")
}

// inCategory reports whether ch belongs to a multi-target class
func inCategory(actor *world.Character, def *ability.Definition, m ability.MultiCategory, ch *world.Character) bool {
	if ch != actor && ch.IsHidden() && !actor.Affected(ability.AffectSenseHide) {
		return false
	}
	switch m {
	case ability.MultiGroup:
		return ch == actor || (actor.GroupID != "" && ch.GroupID == actor.GroupID)
	case ability.MultiAllies:
		return actor.IsAlly(ch)
	case ability.MultiEnemies:
		return actor.IsEnemy(ch)
	case ability.MultiAny:
		return ch != actor || !def.IsViolent()
	}
	return false
}

// canAfford reports whether the cost pool covers amount above its floor
func (e *Engine) canAfford(actor *world.Character, def *ability.Definition, amount int) bool {
	if amount <= 0 {
		return true
	}
	pool := actor.Pool(def.CostPool)
	return pool.Current-def.CostPool.ReservedMinimum() >= amount
}
