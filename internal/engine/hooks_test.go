package engine_test

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

func (s *EngineTestSuite) ward(id ability.ID, hooks ...ability.Hook) *ability.Definition {
	return s.define(&ability.Definition{
		ID:           id,
		Name:         "ward",
		Types:        []ability.WeightedType{{Type: ability.TypeBuff, Weight: 1}},
		Targets:      ability.TargetSelf,
		Affects:      ability.AffectHaste,
		LongDuration: 10,
		Hooks:        hooks,
	})
}

func (s *EngineTestSuite) TestAbilityHookFiresOncePerChain() {
	bolt := firebolt()
	bolt.Hooks = []ability.Hook{{Trigger: ability.HookAbility, Percent: 100, Value: 20}}
	s.define(bolt)
	ward := s.ward(20, ability.Hook{Trigger: ability.HookAbility, Percent: 100, Value: ability.AnyValue})
	goblin := s.mob("goblin", 20, 0)

	s.combat.EXPECT().Damage(gomock.Any(), s.actor, goblin, 50, 0, ability.DamageFire).Return(12).Times(1)
	s.combat.EXPECT().Engage(gomock.Any(), s.actor, goblin)

	res, err := s.engine.Perform(s.ctx, s.actor, bolt, "goblin")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)

	s.NotNil(s.actor.Effects.Find(ward.ID, s.actor.ID))
	s.Len(s.actor.Effects.GetActiveEffects(), 1)
}

func (s *EngineTestSuite) TestHookFromCombatEventDoesNotLoop() {
	bolt := s.define(firebolt())
	scorch := firebolt()
	scorch.ID = 21
	scorch.Name = "scorch"
	scorch.CooldownID = 0
	scorch.Hooks = []ability.Hook{{Trigger: ability.HookDamageType, Percent: 100, Value: int(ability.DamageFire)}}
	s.define(scorch)
	goblin := s.mob("goblin", 20, 0)

	calls := 0
	s.combat.EXPECT().Damage(gomock.Any(), s.actor, goblin, 50, 0, ability.DamageFire).DoAndReturn(
		func(ctx context.Context, actor, target *world.Character, amount, attackType int, dt ability.DamageType) int {
			calls++
			s.Require().NoError(s.engine.Bus().Emit(&events.DamageEvent{
				BaseEvent:  events.BaseEvent{Type: events.EventTypeDamageDealt, Actor: actor, Target: target, Ctx: ctx},
				DamageType: dt,
				Amount:     5,
			}))
			return 5
		}).Times(2)
	s.combat.EXPECT().Engage(gomock.Any(), s.actor, goblin).Times(2)

	res, err := s.engine.Perform(s.ctx, s.actor, bolt, "goblin")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.Equal(2, calls)
}

func (s *EngineTestSuite) TestHookedAbilityWithNoEffectIsSilent() {
	def := actionDef(22, "cleanse", ability.TargetSelf, ability.ActionCleanse)
	def.Hooks = []ability.Hook{{Trigger: ability.HookRespawn, Percent: 100, Value: ability.AnyValue}}
	s.define(def)

	s.engine.FireHooks(s.ctx, s.actor, ability.HookRespawn, 0, engine.TargetSet{})
	s.Zero(s.notices(engine.ReasonNoEffect))

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeNoEffect, res.Outcome)
	s.Equal(1, s.notices(engine.ReasonNoEffect), "a direct use still says nothing happened")
}

func (s *EngineTestSuite) TestHookChanceCanMiss() {
	ward := s.ward(20, ability.Hook{Trigger: ability.HookRespawn, Percent: 30, Value: ability.AnyValue})
	s.roller.SetNextRoll(31)

	s.Equal(0, s.engine.FireHooks(s.ctx, s.actor, ability.HookRespawn, 0, engine.TargetSet{}))
	s.Nil(s.actor.Effects.Find(ward.ID, s.actor.ID))

	s.roller.SetNextRoll(30)
	s.Equal(1, s.engine.FireHooks(s.ctx, s.actor, ability.HookRespawn, 0, engine.TargetSet{}))
	s.NotNil(s.actor.Effects.Find(ward.ID, s.actor.ID))
}

func (s *EngineTestSuite) TestHookSkipsUnusableAbility() {
	ward := s.ward(20, ability.Hook{Trigger: ability.HookDying, Percent: 100, Value: ability.AnyValue})
	ward.CooldownID = 4
	ward.CooldownSeconds = 60
	s.actor.SetCooldown(4, s.now.Add(time.Minute))

	s.Equal(0, s.engine.FireHooks(s.ctx, s.actor, ability.HookDying, 0, engine.TargetSet{}))
	s.Empty(s.sent, "hooked pre-checks are silent")
}

func (s *EngineTestSuite) TestHookValueMustMatch() {
	s.ward(20, ability.Hook{Trigger: ability.HookKill, Percent: 100, Value: 500})

	s.Equal(0, s.engine.FireHooks(s.ctx, s.actor, ability.HookKill, 501, engine.TargetSet{}))
	s.Equal(1, s.engine.FireHooks(s.ctx, s.actor, ability.HookKill, 500, engine.TargetSet{}))
}

func (s *EngineTestSuite) TestListenerFiresKillHooks() {
	ward := s.ward(20, ability.Hook{Trigger: ability.HookKill, Percent: 100, Value: 500})
	wolf := s.mob("wolf", 10, world.CharAnimal)
	wolf.Vnum = 500

	err := s.engine.Bus().Emit(&events.KillEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeKill, Actor: s.actor, Target: wolf, Ctx: s.ctx},
	})
	s.Require().NoError(err)
	s.NotNil(s.actor.Effects.Find(ward.ID, s.actor.ID))
}

func (s *EngineTestSuite) TestListenerMapsRangedHits() {
	ward := s.ward(20, ability.Hook{Trigger: ability.HookRangedHit, Percent: 100, Value: ability.AnyValue})
	goblin := s.mob("goblin", 20, 0)

	s.Require().NoError(s.engine.Bus().Emit(&events.HitEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeHit, Actor: s.actor, Target: goblin},
		AttackType: 2,
	}))
	s.Nil(s.actor.Effects.Find(ward.ID, s.actor.ID), "melee hits do not fire ranged hooks")

	s.Require().NoError(s.engine.Bus().Emit(&events.HitEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeHit, Actor: s.actor, Target: goblin},
		AttackType: 2,
		Ranged:     true,
	}))
	s.NotNil(s.actor.Effects.Find(ward.ID, s.actor.ID))
}

func (s *EngineTestSuite) TestHookedAbilityAimsAtEventTarget() {
	s.define(&ability.Definition{
		ID:      22,
		Name:    "riposte",
		Types:   []ability.WeightedType{{Type: ability.TypeDamage, Weight: 1}},
		Targets: ability.TargetCharRoom | ability.TargetFightVictim,
		Flags:   ability.FlagViolent | ability.FlagNoEngage,
		Hooks:   []ability.Hook{{Trigger: ability.HookDying, Percent: 100, Value: ability.AnyValue}},
	})
	killer := s.mob("assassin", 40, 0)

	s.combat.EXPECT().Damage(gomock.Any(), s.actor, killer, 50, 0, ability.DamagePhysical).Return(20)

	fired := s.engine.FireHooks(s.ctx, s.actor, ability.HookDying, 0, engine.TargetSet{Char: killer})
	s.Equal(1, fired)
}
