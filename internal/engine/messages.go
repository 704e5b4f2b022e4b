package engine

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// notify tells the actor why an ability did not run
func (e *Engine) notify(actor *world.Character, def *ability.Definition, reason Reason, detail string) {
	e.messenger.Send(Message{Actor: actor, Ability: def, Reason: reason, Detail: detail})
}

func (e *Engine) notifyTarget(actor *world.Character, def *ability.Definition, reason Reason, detail string, t TargetSet) {
	e.messenger.Send(Message{
		Actor:   actor,
		Ability: def,
		Reason:  reason,
		Detail:  detail,
		Char:    t.Char,
		Obj:     t.Obj,
		Vehicle: t.Vehicle,
		Room:    t.Room,
	})
}

// say sends a templated message about the current target
func (e *Engine) say(ec *ExecutionContext, slot ability.MessageSlot) {
	e.sayAt(ec.Actor, ec.Ability, slot, 0, ec.Target, ec.tokens)
	ec.SentAnyMsg = true
}

func (e *Engine) sayAt(actor *world.Character, def *ability.Definition, slot ability.MessageSlot, position int, t TargetSet, tokens map[string]string) {
	msg := Message{
		Actor:    actor,
		Ability:  def,
		Slot:     slot,
		Position: position,
		Char:     t.Char,
		Obj:      t.Obj,
		Vehicle:  t.Vehicle,
		Room:     t.Room,
	}
	if len(tokens) > 0 {
		msg.Tokens = make(map[string]string, len(tokens))
		for k, v := range tokens {
			msg.Tokens[k] = v
		}
	}
	e.messenger.Send(msg)
}
