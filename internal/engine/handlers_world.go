package engine

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

type teleportHandler struct{ baseHandler }

func (teleportHandler) Type() ability.Type { return ability.TypeTeleport }

func (teleportHandler) ChecksImmunity() bool { return false }

// Prepare picks the destination: the target room, the target character's
// room, or home when nothing was named
func (h teleportHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	actor := ec.Actor
	var dest *world.Room
	switch {
	case ec.Target.Room != nil:
		dest = ec.Target.Room
	case ec.Target.Char != nil && ec.Target.Char != actor:
		dest = ec.Target.Char.Room
	default:
		dest = actor.Home
	}

	if dest == nil {
		h.e.notify(actor, ec.Ability, ReasonNoTarget, "")
		ec.SentFailMsg = true
		ec.Cancel(ReasonNoTarget)
		return PrepareContinue
	}
	if dest.Has(world.RoomNoTeleport) || (actor.Room != nil && actor.Room.Has(world.RoomNoTeleport)) {
		h.e.notify(actor, ec.Ability, ReasonNoTeleport, "")
		ec.SentFailMsg = true
		ec.Cancel(ReasonNoTeleport)
		return PrepareContinue
	}
	ec.MoveRoom = dest
	return PrepareContinue
}

func (h teleportHandler) Execute(_ context.Context, ec *ExecutionContext) {
	if ec.MoveRoom == nil || ec.MoveRoom == ec.Actor.Room {
		return
	}
	h.e.world.MoveCharacter(ec.Actor, ec.MoveRoom)
	ec.Success = true
}

type conjureObjectHandler struct{ baseHandler }

func (conjureObjectHandler) Type() ability.Type { return ability.TypeConjureObject }

func (conjureObjectHandler) ChecksImmunity() bool { return false }

func (h conjureObjectHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	total := 0
	for _, d := range ec.Ability.DataOfKind(ability.DataConjureObject) {
		total += max(d.Misc, 1)
	}
	if total == 0 {
		return PrepareSkip
	}
	if !ec.Actor.CanCarryMore(total) {
		if !ec.SentFailMsg {
			h.e.notify(ec.Actor, ec.Ability, ReasonInventoryFull, "")
			ec.SentFailMsg = true
		}
		ec.Cancel(ReasonInventoryFull)
	}
	return PrepareContinue
}

func (h conjureObjectHandler) Execute(_ context.Context, ec *ExecutionContext) {
	made := 0
	for _, d := range ec.Ability.DataOfKind(ability.DataConjureObject) {
		for i := 0; i < max(d.Misc, 1); i++ {
			obj, err := h.e.world.LoadObject(d.Vnum)
			if err != nil {
				h.e.logger.Warn("cannot conjure object",
					zap.Int("ability", int(ec.Ability.ID)),
					zap.Int("vnum", d.Vnum),
					zap.Error(err))
				break
			}
			h.e.world.GiveObject(ec.Actor, obj)
			made++
		}
	}
	if made > 0 {
		ec.Success = true
		ec.TotalAmount += made
		ec.token("amount", strconv.Itoa(made))
	}
}

type conjureVehicleHandler struct{ baseHandler }

func (conjureVehicleHandler) Type() ability.Type { return ability.TypeConjureVehicle }

func (conjureVehicleHandler) ChecksImmunity() bool { return false }

func (h conjureVehicleHandler) Execute(_ context.Context, ec *ExecutionContext) {
	room := ec.place()
	if room == nil {
		return
	}
	for _, d := range ec.Ability.DataOfKind(ability.DataConjureVehicle) {
		if _, err := h.e.world.LoadVehicle(d.Vnum, room); err != nil {
			h.e.logger.Warn("cannot conjure vehicle",
				zap.Int("ability", int(ec.Ability.ID)),
				zap.Int("vnum", d.Vnum),
				zap.Error(err))
			continue
		}
		ec.Success = true
	}
}

type buildingDamageHandler struct{ baseHandler }

func (buildingDamageHandler) Type() ability.Type { return ability.TypeBuildingDamage }

func (buildingDamageHandler) ChecksImmunity() bool { return false }

func (h buildingDamageHandler) Execute(_ context.Context, ec *ExecutionContext) {
	amount := amountFor(ec.Points(ability.TypeBuildingDamage), h.e.tunables.DamagePerPoint)

	var done int
	switch {
	case ec.Target.Vehicle != nil:
		done = ec.Target.Vehicle.Health.Damage(amount)
	case ec.place() != nil && ec.place().Building != nil:
		done = ec.place().Building.Damage(amount)
	}
	if done > 0 {
		ec.Success = true
		ec.TotalAmount += done
		ec.token("amount", strconv.Itoa(done))
	}
}

type readyWeaponsHandler struct{ baseHandler }

func (readyWeaponsHandler) Type() ability.Type { return ability.TypeReadyWeapons }

func (readyWeaponsHandler) ChecksImmunity() bool { return false }

// Prepare toggles off: using the ability while its weapons are out puts
// them away and costs nothing
func (h readyWeaponsHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	vnums := ec.Ability.DataOfKind(ability.DataReadyWeapon)
	if len(vnums) == 0 {
		return PrepareSkip
	}

	var readied []*world.Object
	for _, obj := range ec.Actor.Equipment {
		for _, d := range vnums {
			if obj.Vnum == d.Vnum {
				readied = append(readied, obj)
				break
			}
		}
	}
	if len(readied) == 0 {
		return PrepareContinue
	}

	for _, obj := range readied {
		h.e.world.ExtractObject(obj)
	}
	h.e.notify(ec.Actor, ec.Ability, ReasonToggledOff, "")
	ec.SentFailMsg = true
	ec.Cancel(ReasonToggledOff)
	return PrepareContinue
}

func (h readyWeaponsHandler) Execute(_ context.Context, ec *ExecutionContext) {
	for _, d := range ec.Ability.DataOfKind(ability.DataReadyWeapon) {
		obj, err := h.e.world.LoadObject(d.Vnum)
		if err != nil {
			h.e.logger.Warn("cannot ready weapon",
				zap.Int("ability", int(ec.Ability.ID)),
				zap.Int("vnum", d.Vnum),
				zap.Error(err))
			continue
		}
		h.e.world.Equip(ec.Actor, obj)
		ec.Success = true
	}
}

type summonAnyHandler struct{ baseHandler }

func (summonAnyHandler) Type() ability.Type { return ability.TypeSummonAny }

func (summonAnyHandler) ChecksImmunity() bool { return false }

func (h summonAnyHandler) Execute(_ context.Context, ec *ExecutionContext) {
	for _, d := range ec.Ability.DataOfKind(ability.DataSummonMob) {
		for i := 0; i < max(d.Misc, 1); i++ {
			if !h.e.summon(ec, d.Vnum) {
				break
			}
		}
	}
}

type summonRandomHandler struct{ baseHandler }

func (summonRandomHandler) Type() ability.Type { return ability.TypeSummonRandom }

func (summonRandomHandler) ChecksImmunity() bool { return false }

func (h summonRandomHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	candidates := ec.Ability.DataOfKind(ability.DataSummonMob)
	if len(candidates) == 0 {
		h.e.logger.Warn("random summon has no candidates", zap.Int("ability", int(ec.Ability.ID)))
		return PrepareSkip
	}
	idx, err := h.e.roller.Pick(len(candidates))
	if err != nil {
		h.e.logger.Warn("random summon pick failed", zap.Int("ability", int(ec.Ability.ID)), zap.Error(err))
		return PrepareSkip
	}
	ec.SummonVnum = candidates[idx].Vnum
	return PrepareContinue
}

func (h summonRandomHandler) Execute(_ context.Context, ec *ExecutionContext) {
	if ec.SummonVnum < 0 {
		return
	}
	h.e.summon(ec, ec.SummonVnum)
}

// summon loads one follower next to the actor
func (e *Engine) summon(ec *ExecutionContext, vnum int) bool {
	room := ec.Actor.Room
	if room == nil {
		return false
	}
	mob, err := e.world.LoadMob(vnum, room)
	if err != nil {
		e.logger.Warn("cannot summon mob",
			zap.Int("ability", int(ec.Ability.ID)),
			zap.Int("vnum", vnum),
			zap.Error(err))
		return false
	}
	mob.Master = ec.Actor
	mob.GroupID = ec.Actor.GroupID
	mob.Empire = ec.Actor.Empire
	ec.Success = true
	ec.TotalAmount++
	return true
}

type moveHandler struct{ baseHandler }

func (moveHandler) Type() ability.Type { return ability.TypeMove }

// Prepare picks the exit: the named direction, the authored one, or a
// random open exit
func (h moveHandler) Prepare(_ context.Context, ec *ExecutionContext) PrepareResult {
	mover := ec.subject()
	room := mover.Room
	if room == nil {
		return PrepareSkip
	}

	var exits []ability.Direction
	for dir := ability.Direction(0); dir < ability.NumDirections; dir++ {
		if room.Exit(dir) != nil {
			exits = append(exits, dir)
		}
	}

	dir, chosen := ec.Target.Dir, ec.Target.HasDir
	if !chosen {
		if d, ok := ec.Ability.FirstData(ability.DataMoveDirection); ok {
			dir, chosen = ability.Direction(d.Vnum), true
		}
	}
	if !chosen && len(exits) > 0 {
		idx, err := h.e.roller.Pick(len(exits))
		if err == nil {
			dir, chosen = exits[idx], true
		}
	}

	if !chosen || room.Exit(dir) == nil {
		h.e.notify(ec.Actor, ec.Ability, ReasonNoExit, "")
		ec.SentFailMsg = true
		ec.Cancel(ReasonNoExit)
		return PrepareContinue
	}
	ec.MoveDir = dir
	ec.MoveRoom = room.Exit(dir)
	return PrepareContinue
}

func (h moveHandler) Execute(_ context.Context, ec *ExecutionContext) {
	if ec.MoveRoom == nil {
		return
	}
	mover := ec.subject()
	if mover.Affected(ability.AffectEntangle) {
		return
	}
	if mover.Fighting != nil && mover != ec.Actor {
		mover.Fighting = nil
	}
	h.e.world.MoveCharacter(mover, ec.MoveRoom)
	ec.Success = true
	ec.token("direction", ec.MoveDir.String())
}

type actionHandler struct{ baseHandler }

func (actionHandler) Type() ability.Type { return ability.TypeAction }

func (actionHandler) ChecksImmunity() bool { return false }

func (h actionHandler) Execute(_ context.Context, ec *ExecutionContext) {
	for _, d := range ec.Ability.DataOfKind(ability.DataAction) {
		var changed bool
		switch ability.ActionID(d.Vnum) {
		case ability.ActionCleanse:
			changed = len(ec.subject().Effects.RemoveWhere(func(se *effects.StatusEffect) bool {
				return se.Kind == effects.KindDOT
			})) > 0
		case ability.ActionDispel:
			changed = len(ec.subject().Effects.RemoveWhere(func(se *effects.StatusEffect) bool {
				return se.Hostile && se.Source == effects.SourceAbility
			})) > 0
		case ability.ActionReveal:
			changed = reveal(ec.Actor, ec.place())
		case ability.ActionCalm:
			changed = calm(ec.victim())
		default:
			h.e.logger.Warn("unknown action",
				zap.Int("ability", int(ec.Ability.ID)),
				zap.Int("action", d.Vnum))
		}
		if changed {
			ec.Success = true
		}
	}
}

// reveal pulls everyone else in room out of hiding
func reveal(actor *world.Character, room *world.Room) bool {
	if room == nil {
		return false
	}
	found := false
	for _, ch := range room.People {
		if ch == actor || !ch.IsHidden() {
			continue
		}
		ch.Flags &^= world.CharHidden
		ch.Effects.RemoveWhere(func(se *effects.StatusEffect) bool {
			return se.Affects.Any(ability.AffectHide)
		})
		found = true
	}
	return found
}

// calm ends every fight the target is part of
func calm(target *world.Character) bool {
	if target == nil || target.Room == nil {
		return false
	}
	calmed := target.Fighting != nil
	target.Fighting = nil
	for _, ch := range target.Room.People {
		if ch.Fighting == target {
			ch.Fighting = nil
			calmed = true
		}
	}
	return calmed
}
