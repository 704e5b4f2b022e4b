package engine

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

// HookListener turns combat events into hook triggers
type HookListener struct {
	engine *Engine
}

// NewHookListener creates a listener that fires hooks through e
func NewHookListener(e *Engine) *HookListener {
	return &HookListener{engine: e}
}

func (l *HookListener) ID() string { return "ability-hooks" }

func (l *HookListener) Priority() int { return events.PriorityHooks }

// HandleEvent fires the hooks of the event's actor, reusing the hook chain
// of whatever invocation caused the event
func (l *HookListener) HandleEvent(event events.Event) error {
	actor := event.GetActor()
	if actor == nil {
		return nil
	}
	ctx := event.Context()
	in := TargetSet{Char: event.GetTarget()}

	switch ev := event.(type) {
	case *events.AttackEvent:
		l.engine.FireHooks(ctx, actor, ability.HookAttack, ev.AttackType, in)
	case *events.HitEvent:
		trigger := ability.HookMeleeHit
		if ev.Ranged {
			trigger = ability.HookRangedHit
		}
		l.engine.FireHooks(ctx, actor, trigger, ev.AttackType, in)
	case *events.DamageEvent:
		l.engine.FireHooks(ctx, actor, ability.HookDamageType, int(ev.DamageType), in)
	case *events.KillEvent:
		value := 0
		if in.Char != nil {
			value = in.Char.Vnum
		}
		l.engine.FireHooks(ctx, actor, ability.HookKill, value, in)
	case *events.DyingEvent:
		l.engine.FireHooks(ctx, actor, ability.HookDying, 0, in)
	case *events.RespawnEvent:
		l.engine.FireHooks(ctx, actor, ability.HookRespawn, 0, in)
	}
	return nil
}

// Register subscribes the listener to every event that can fire a hook
func (l *HookListener) Register(bus *events.Bus) {
	for _, t := range []events.EventType{
		events.EventTypeAttack,
		events.EventTypeHit,
		events.EventTypeDamageDealt,
		events.EventTypeKill,
		events.EventTypeDying,
		events.EventTypeRespawn,
	} {
		bus.Subscribe(t, l)
	}
}
