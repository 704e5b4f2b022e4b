package combat

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

// Hit chance bounds for weapon attacks
const (
	baseHitChance = 60
	minHitChance  = 5
	maxHitChance  = 95
)

// Service is a small reference combat system: it applies damage to health
// pools, rolls weapon hits and tracks who is fighting whom. Every change is
// published on the bus with the caller's context.
type Service struct {
	bus    *events.Bus
	roller dice.Roller
	logger *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Bus    *events.Bus
	Roller dice.Roller
	Logger *zap.Logger
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) *Service {
	if cfg.Bus == nil {
		panic("event bus is required")
	}

	svc := &Service{
		bus:    cfg.Bus,
		roller: cfg.Roller,
		logger: cfg.Logger,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Damage deals amount to target after soak. It returns -1 when the target
// died, 0 for a miss or no damage and otherwise the damage dealt.
func (s *Service) Damage(ctx context.Context, actor, target *world.Character, amount, attackType int, damageType ability.DamageType) int {
	if target == nil || target.IsDead() {
		return 0
	}
	if damageType == ability.DamagePhysical {
		amount -= target.Effects.ModifierTotal(ability.ApplySoak)
	}
	if amount <= 0 {
		return 0
	}

	dealt := target.Pool(ability.PoolHealth).Damage(amount)
	s.emit(&events.DamageEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeDamageDealt, Actor: actor, Target: target, Ctx: ctx},
		DamageType: damageType,
		Amount:     dealt,
	})

	if target.Pool(ability.PoolHealth).Current > 0 {
		return dealt
	}
	s.kill(ctx, actor, target)
	return -1
}

// Hit rolls a weapon attack and deals its damage. The result follows the
// Damage convention.
func (s *Service) Hit(ctx context.Context, actor, target *world.Character, attackType int, ranged bool) int {
	if actor == nil || target == nil || target.IsDead() {
		return 0
	}
	s.emit(&events.AttackEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeAttack, Actor: actor, Target: target, Ctx: ctx},
		AttackType: attackType,
		Ranged:     ranged,
	})

	if !dice.PercentChance(s.roller, HitChance(actor, target)) {
		return 0
	}

	amount, err := s.weaponDamage(actor)
	if err != nil {
		s.logger.Warn("damage roll failed",
			zap.String("actor", actor.ID),
			zap.Error(err))
		return 0
	}
	s.emit(&events.HitEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeHit, Actor: actor, Target: target, Ctx: ctx},
		AttackType: attackType,
		Ranged:     ranged,
		Amount:     amount,
	})

	amount += actor.Effects.ModifierTotal(ability.ApplyBonusPhysical)
	return s.Damage(ctx, actor, target, amount, attackType, ability.DamagePhysical)
}

// Engage starts a fight. A target that is not already fighting turns on
// the attacker.
func (s *Service) Engage(_ context.Context, actor, target *world.Character) {
	if actor == nil || target == nil || actor == target || actor.IsDead() || target.IsDead() {
		return
	}
	if actor.Fighting == nil {
		actor.Fighting = target
		actor.Position = ability.PositionFighting
	}
	if target.Fighting == nil {
		target.Fighting = actor
		target.Position = ability.PositionFighting
	}
}

// HitChance is the percent chance actor has to land a weapon attack
func HitChance(actor, target *world.Character) int {
	chance := baseHitChance +
		actor.Effects.ModifierTotal(ability.ApplyToHit) -
		target.Effects.ModifierTotal(ability.ApplyDodge) +
		(actor.Level-target.Level)/2
	return min(max(chance, minHitChance), maxHitChance)
}

// weaponDamage rolls the wielded weapon, or fists, plus strength
func (s *Service) weaponDamage(actor *world.Character) (int, error) {
	sides := 4
	if weapon := actor.Wielded(); weapon != nil {
		sides = 8
	}
	result, err := s.roller.Roll(1+actor.Level/25, sides, actor.TraitValue(ability.TraitStrength))
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// kill marks target dead, ends every fight involving it and announces the
// death from both sides
func (s *Service) kill(ctx context.Context, killer, target *world.Character) {
	target.Position = ability.PositionDead
	target.Fighting = nil
	if room := target.Room; room != nil {
		for _, ch := range room.People {
			if ch.Fighting == target {
				ch.Fighting = nil
				if !ch.IsDead() {
					ch.Position = ability.PositionStanding
				}
			}
		}
	}

	s.logger.Debug("character died",
		zap.String("target", target.ID),
		zap.String("killer", characterID(killer)))

	if killer != nil && killer != target {
		s.emit(&events.KillEvent{
			BaseEvent: events.BaseEvent{Type: events.EventTypeKill, Actor: killer, Target: target, Ctx: ctx},
		})
	}
	s.emit(&events.DyingEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeDying, Actor: target, Target: killer, Ctx: ctx},
	})
}

// Revive brings a dead character back with health and announces it
func (s *Service) Revive(ctx context.Context, ch *world.Character, health int) {
	if ch == nil || !ch.IsDead() {
		return
	}
	ch.Position = ability.PositionStanding
	ch.Pool(ability.PoolHealth).Heal(max(health, 1))
	s.emit(&events.RespawnEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeRespawn, Actor: ch, Ctx: ctx},
	})
}

func (s *Service) emit(ev events.Event) {
	if err := s.bus.Emit(ev); err != nil {
		s.logger.Error("combat listener failed",
			zap.String("event", string(ev.GetType())),
			zap.Error(err))
	}
}

func characterID(ch *world.Character) string {
	if ch == nil {
		return ""
	}
	return ch.ID
}
