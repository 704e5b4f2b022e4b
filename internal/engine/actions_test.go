package engine_test

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
	"github.com/KirkDiggler/ability-engine/internal/engine"
)

func actionDef(id ability.ID, name string, targets ability.TargetFlags, action ability.ActionID) *ability.Definition {
	return &ability.Definition{
		ID:      id,
		Name:    name,
		Types:   []ability.WeightedType{{Type: ability.TypeAction, Weight: 1}},
		Targets: targets,
		Data:    []ability.Data{{Kind: ability.DataAction, Vnum: int(action)}},
	}
}

func (s *EngineTestSuite) TestCleanseRemovesOnlyDamageOverTime() {
	def := s.define(actionDef(20, "cleanse", ability.TargetSelf, ability.ActionCleanse))

	_, _, err := s.actor.Effects.AddEffect(effects.NewBuilder("venom").
		WithTicks(4).
		AsDOT(5, ability.DamagePoison, 3).
		Build())
	s.Require().NoError(err)
	_, _, err = s.actor.Effects.AddEffect(effects.NewBuilder("bless").
		WithTicks(4).
		AddModifier(ability.ApplyToHit, 2).
		Build())
	s.Require().NoError(err)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)

	s.False(s.actor.Effects.HasDOT(-1))
	s.Len(s.actor.Effects.GetActiveEffects(), 1)

	res, err = s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeNoEffect, res.Outcome, "nothing left to cleanse")
}

func (s *EngineTestSuite) TestRevealUnhidesTheRoom() {
	def := s.define(actionDef(21, "reveal", 0, ability.ActionReveal))
	thief := s.mob("thief", 20, world.CharHidden)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.False(thief.IsHidden())
}

func (s *EngineTestSuite) TestCalmEndsTheFight() {
	def := s.define(actionDef(22, "calm", ability.TargetCharRoom, ability.ActionCalm))
	goblin := s.mob("goblin", 20, 0)
	s.combat.EXPECT().Engage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.actor.Fighting = goblin
	goblin.Fighting = s.actor

	res, err := s.engine.Perform(s.ctx, s.actor, def, "goblin")
	s.Require().NoError(err)

	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.Nil(goblin.Fighting)
	s.Nil(s.actor.Fighting)
}
