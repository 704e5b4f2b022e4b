package engine_test

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

func (s *EngineTestSuite) TestResolveTargets() {
	def := s.define(firebolt())
	first := s.mob("goblin", 10, 0)
	second := s.mob("goblin", 12, 0)

	tests := []struct {
		name     string
		arg      string
		expected engine.TargetSet
		reason   engine.Reason
	}{
		{name: "first match", arg: "goblin", expected: engine.TargetSet{Char: first}},
		{name: "ordinal", arg: "2.goblin", expected: engine.TargetSet{Char: second}},
		{name: "case and spacing", arg: "  GOBLIN ", expected: engine.TargetSet{Char: first}},
		{name: "ordinal past the end", arg: "3.goblin", reason: engine.ReasonNotFound},
		{name: "zero ordinal", arg: "0.goblin", reason: engine.ReasonAmbiguous},
		{name: "unknown name", arg: "dragon", reason: engine.ReasonNotFound},
		{name: "no default outside a fight", arg: "", reason: engine.ReasonNoTarget},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			target, reason := s.engine.ResolveTargets(s.actor, def, tt.arg)
			s.Equal(tt.reason, reason)
			s.Equal(tt.expected, target)
		})
	}
}

func (s *EngineTestSuite) TestResolveTargetsDefaults() {
	bolt := s.define(firebolt())
	shield := s.define(&ability.Definition{
		ID:      40,
		Name:    "shield",
		Types:   []ability.WeightedType{{Type: ability.TypeBuff, Weight: 1}},
		Targets: ability.TargetSelf | ability.TargetCharRoom,
	})
	goblin := s.mob("goblin", 10, 0)
	s.actor.Fighting = goblin

	target, reason := s.engine.ResolveTargets(s.actor, bolt, "")
	s.Equal(engine.ReasonNone, reason)
	s.Same(goblin, target.Char, "violent abilities default to the opponent")

	target, reason = s.engine.ResolveTargets(s.actor, shield, "")
	s.Equal(engine.ReasonNone, reason)
	s.Same(s.actor, target.Char, "friendly abilities default to the actor")

	target, reason = s.engine.ResolveTargets(s.actor, shield, "self")
	s.Equal(engine.ReasonNone, reason)
	s.Same(s.actor, target.Char)
}

func (s *EngineTestSuite) TestResolveTargetsMultiKeywords() {
	rally := s.define(&ability.Definition{
		ID:      41,
		Name:    "rally",
		Types:   []ability.WeightedType{{Type: ability.TypeBuff, Weight: 1}},
		Targets: ability.TargetMultiGroup,
	})

	target, reason := s.engine.ResolveTargets(s.actor, rally, "group")
	s.Equal(engine.ReasonNone, reason)
	s.Equal(ability.MultiGroup, target.Multi)

	_, reason = s.engine.ResolveTargets(s.actor, rally, "enemies")
	s.Equal(engine.ReasonNotFound, reason, "the mask does not allow enemies")
}

func (s *EngineTestSuite) TestResolveTargetsSelfOnly() {
	meditate := s.define(&ability.Definition{
		ID:      42,
		Name:    "meditate",
		Types:   []ability.WeightedType{{Type: ability.TypeRestore, Weight: 1}},
		Targets: ability.TargetSelf,
	})
	s.mob("goblin", 10, 0)

	target, reason := s.engine.ResolveTargets(s.actor, meditate, "aldric")
	s.Equal(engine.ReasonNone, reason)
	s.Same(s.actor, target.Char)

	_, reason = s.engine.ResolveTargets(s.actor, meditate, "goblin")
	s.Equal(engine.ReasonSelfOnly, reason)
}

func (s *EngineTestSuite) TestResolveSupersede() {
	bolt := s.define(firebolt())
	greater := firebolt()
	greater.ID = 2
	greater.Name = "greater firebolt"
	s.define(greater)
	bolt.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 2}}

	resolved, err := s.engine.ResolveSupersede(s.actor, bolt)
	s.Require().NoError(err)
	s.Same(greater, resolved)

	again, err := s.engine.ResolveSupersede(s.actor, resolved)
	s.Require().NoError(err)
	s.Same(greater, again, "resolving twice changes nothing")

	s.actor.Revoke(2)
	resolved, err = s.engine.ResolveSupersede(s.actor, bolt)
	s.Require().NoError(err)
	s.Same(bolt, resolved, "unowned successors are skipped")
}

func (s *EngineTestSuite) TestResolveSupersedeCycle() {
	bolt := s.define(firebolt())
	greater := firebolt()
	greater.ID = 2
	s.define(greater)
	bolt.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 2}}
	greater.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 1}}

	resolved, err := s.engine.ResolveSupersede(s.actor, bolt)
	s.Require().Error(err)
	s.True(abilerr.IsCycle(err))
	s.Same(bolt, resolved)
}

func (s *EngineTestSuite) TestPerformFallsBackWhenSupersedeLoops() {
	bolt := s.define(firebolt())
	greater := firebolt()
	greater.ID = 2
	s.define(greater)
	bolt.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 2}}
	greater.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 1}}
	goblin := s.mob("goblin", 10, 0)

	s.combat.EXPECT().Damage(gomock.Any(), s.actor, goblin, gomock.Any(), 0, ability.DamageFire).Return(10)
	s.combat.EXPECT().Engage(gomock.Any(), s.actor, goblin)

	res, err := s.engine.Perform(s.ctx, s.actor, bolt, "goblin")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.Same(bolt, res.Ability)
}

func (s *EngineTestSuite) TestPerformUsesSupersedingAbility() {
	bolt := s.define(firebolt())
	greater := firebolt()
	greater.ID = 2
	greater.Name = "greater firebolt"
	greater.ScaleMultiplier = 2
	s.define(greater)
	bolt.Data = []ability.Data{{Kind: ability.DataSupersededBy, Vnum: 2}}
	goblin := s.mob("goblin", 10, 0)

	s.combat.EXPECT().Damage(gomock.Any(), s.actor, goblin, 100, 0, ability.DamageFire).Return(80)
	s.combat.EXPECT().Engage(gomock.Any(), s.actor, goblin)

	res, err := s.engine.Perform(s.ctx, s.actor, bolt, "goblin")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.Same(greater, res.Ability)
}

func (s *EngineTestSuite) TestExpressionLimitation() {
	def := firebolt()
	def.Limitations = []ability.Limitation{{Type: ability.LimitExpression, Expr: "Target.Level < Actor.Level"}}
	s.define(def)
	giant := s.mob("giant", 150, 0)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "giant")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeValidationFailure, res.Outcome)
	s.Equal(engine.ReasonLimitation, res.Reason)
	s.Equal(500, s.actor.Pool(ability.PoolMana).Current)

	s.Require().Len(s.sent, 1)
	s.Equal("expression", s.sent[0].Detail)
	s.Same(giant, s.sent[0].Char)
}

func (s *EngineTestSuite) TestFatalLimitationAbortsBatch() {
	def := firebolt()
	def.Targets |= ability.TargetMultiEnemies
	def.Limitations = []ability.Limitation{{Type: ability.LimitIndoors}}
	s.define(def)
	s.mob("orc", 10, world.CharAggressive)
	s.mob("orc", 10, world.CharAggressive)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "enemies")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeFatalValidationFailure, res.Outcome)
	s.Equal(engine.ReasonLimitation, res.Reason)
	s.Equal(1, s.notices(engine.ReasonLimitation))
	s.Equal(500, s.actor.Pool(ability.PoolMana).Current)
}

func (s *EngineTestSuite) TestLimitationGroupNeedsOneMember() {
	def := firebolt()
	def.Limitations = []ability.Limitation{
		{Type: ability.LimitWieldingWeaponType, Value: 1},
		{Type: ability.LimitWieldingWeaponType, Value: 3},
	}
	s.define(def)
	goblin := s.mob("goblin", 10, 0)

	blade, err := s.world.LoadObject(103)
	s.Require().NoError(err)
	s.world.Equip(s.actor, blade)

	s.combat.EXPECT().Damage(gomock.Any(), s.actor, goblin, 50, 0, ability.DamageFire).Return(30)
	s.combat.EXPECT().Engage(gomock.Any(), s.actor, goblin)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "goblin")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)
}

func (s *EngineTestSuite) TestCompileLimitation() {
	s.NoError(engine.CompileLimitation("Actor.Level > 10 && Room.City != \"\""))
	s.Error(engine.CompileLimitation("Actor.Level >"))
	s.Error(engine.CompileLimitation("Actor.Level"), "limitations must be boolean")
}
