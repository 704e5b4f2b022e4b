package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

// Availability is one row of an actor's ability list
type Availability struct {
	Ability  *ability.Definition
	Usable   bool
	Reason   Reason
	Cooldown time.Duration
}

// Available lists the actor's abilities in id order with whether each can
// be used right now
func (e *Engine) Available(actor *world.Character) []Availability {
	var out []Availability
	now := e.clock.Now()
	for _, id := range ownedAbilities(actor) {
		def, ok := e.catalog.Get(id)
		if !ok {
			continue
		}
		reason := e.preCheck(actor, def, true)
		out = append(out, Availability{
			Ability:  def,
			Usable:   reason == ReasonNone,
			Reason:   reason,
			Cooldown: actor.CooldownRemaining(def.CooldownID, now),
		})
	}
	return out
}

// HasTech reports whether any owned player-tech ability grants tech
func (e *Engine) HasTech(actor *world.Character, tech ability.Tech) bool {
	for _, id := range ownedAbilities(actor) {
		def, ok := e.catalog.Get(id)
		if !ok || !def.HasType(ability.TypePlayerTech) {
			continue
		}
		for _, t := range def.Techs() {
			if t == tech {
				return true
			}
		}
	}
	return false
}

// RefreshPassives rebuilds the permanent effects granted by owned passive
// buff abilities. Call it after abilities are granted or revoked, or when
// the actor's level changes. It returns how many passives are active.
func (e *Engine) RefreshPassives(actor *world.Character) int {
	actor.Effects.RemoveWhere(func(se *effects.StatusEffect) bool {
		return se.Source == effects.SourcePassive
	})

	active := 0
	for _, id := range ownedAbilities(actor) {
		def, ok := e.catalog.Get(id)
		if !ok || !def.HasType(ability.TypePassiveBuff) {
			continue
		}
		points := e.ScalePoints(actor, def, actor.Level, ability.TypePassiveBuff)
		b := effects.NewBuilder(def.Name).
			WithSource(effects.SourcePassive, def.ID, actor.ID).
			WithAffects(def.Affects)
		for _, m := range applyModifiers(def, points) {
			b.AddModifier(m.Location, m.Value)
		}
		if _, _, err := actor.Effects.AddEffect(b.Build()); err != nil {
			e.logger.Warn("passive not applied",
				zap.Int("ability", int(def.ID)),
				zap.String("actor", actor.ID),
				zap.Error(err))
			continue
		}
		active++
	}
	return active
}
