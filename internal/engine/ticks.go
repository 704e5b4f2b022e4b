package engine

import (
	"context"
	"sort"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

// TickEffects advances every character and room effect by one tick. DOTs
// deal their damage through the combat system and expired effects send
// their wear-off messages.
func (e *Engine) TickEffects(ctx context.Context) {
	for _, ch := range append([]*world.Character(nil), e.world.Characters...) {
		if ch.Effects == nil {
			continue
		}
		result := ch.Effects.Tick()
		for _, dot := range result.DOTs {
			if ch.IsDead() {
				break
			}
			e.dotDamage(ctx, ch, dot)
		}
		for _, eff := range result.Expired {
			e.woreOff(ctx, ch, ch.Room, eff)
		}
	}

	vnums := make([]int, 0, len(e.world.Rooms))
	for vnum := range e.world.Rooms {
		vnums = append(vnums, vnum)
	}
	sort.Ints(vnums)
	for _, vnum := range vnums {
		room := e.world.Rooms[vnum]
		if room.Effects == nil {
			continue
		}
		for _, eff := range room.Effects.Tick().Expired {
			e.woreOff(ctx, nil, room, eff)
		}
	}
}

// dotDamage applies one tick of a DOT. The caster is credited when still
// in the world.
func (e *Engine) dotDamage(ctx context.Context, victim *world.Character, dot *effects.StatusEffect) {
	attacker := e.world.FindCharacter(dot.CasterID)
	if attacker == nil {
		attacker = victim
	}
	attackType := 0
	if def, ok := e.catalog.Get(dot.SourceID); ok {
		attackType = def.AttackType
	}
	e.combat.Damage(ctx, attacker, victim, dot.TickDamage(), attackType, dot.DamageType)
}

func (e *Engine) woreOff(ctx context.Context, ch *world.Character, room *world.Room, eff *effects.StatusEffect) {
	if eff.Source == effects.SourceAbility {
		if def, ok := e.catalog.Get(eff.SourceID); ok {
			target := TargetSet{Char: ch, Room: room}
			actor := ch
			if actor == nil {
				actor = e.world.FindCharacter(eff.CasterID)
			}
			if actor != nil {
				e.sayAt(actor, def, ability.MsgWearOffToChar, 0, target, nil)
				e.sayAt(actor, def, ability.MsgWearOffToRoom, 0, target, nil)
			}
		}
	}

	e.emit(&events.EffectWoreOffEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeEffectWoreOff, Actor: ch, Ctx: ctx},
		Ability:   eff.SourceID,
		EffectID:  eff.ID,
	})
}
