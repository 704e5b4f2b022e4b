package engine_test

import (
	"time"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/engine"
)

func mining() *ability.Definition {
	def := &ability.Definition{
		ID:              30,
		Name:            "mining",
		Types:           []ability.WeightedType{{Type: ability.TypeConjureObject, Weight: 1}},
		Flags:           ability.FlagOverTime,
		BaseCost:        20,
		CostPool:        ability.PoolMove,
		CooldownID:      3,
		CooldownSeconds: 60,
		ResourceCost:    []ability.ResourceCost{{Vnum: 101, Amount: 1, TurnsInto: 102}},
		Data:            []ability.Data{{Kind: ability.DataConjureObject, Vnum: 100}},
	}
	for i := 0; i < 5; i++ {
		def.Messages = append(def.Messages, ability.CustomMessage{
			Slot:     ability.MsgTickToChar,
			Position: i,
			Text:     "You swing your pickaxe at the rock.",
		})
	}
	return def
}

func (s *EngineTestSuite) givePickaxe() {
	obj, err := s.world.LoadObject(101)
	s.Require().NoError(err)
	s.world.GiveObject(s.actor, obj)
}

func (s *EngineTestSuite) TestOverTimeStartsAndPaysUpFront() {
	def := s.define(mining())
	s.givePickaxe()

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	s.Equal(engine.OutcomeStarted, res.Outcome)
	s.Equal(20, res.Cost)
	s.Equal(80, s.actor.Pool(ability.PoolMove).Current)
	s.Nil(s.actor.Carrying(101), "consumables are taken at the start")
	s.Equal(time.Minute, s.actor.CooldownRemaining(3, s.now))

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.True(busy)
	s.Len(s.sentWith(ability.MsgBeginToChar), 1)
}

func (s *EngineTestSuite) TestOverTimeCancelRefundsEverything() {
	def := s.define(mining())
	s.givePickaxe()

	_, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		res, err := s.engine.TickOverTime(s.ctx, s.actor)
		s.Require().NoError(err)
		s.Equal(engine.OutcomeStarted, res.Outcome)
	}
	s.Len(s.sentWith(ability.MsgTickToChar), 2)

	cancelled, err := s.engine.Cancel(s.ctx, s.actor, engine.ReasonStopped)
	s.Require().NoError(err)
	s.True(cancelled)

	s.Equal(100, s.actor.Pool(ability.PoolMove).Current)
	s.Zero(s.actor.CooldownRemaining(3, s.now))
	s.NotNil(s.actor.Carrying(101))
	s.Nil(s.actor.Carrying(100), "nothing is produced on cancel")

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.False(busy)

	again, err := s.engine.Cancel(s.ctx, s.actor, engine.ReasonStopped)
	s.Require().NoError(err)
	s.False(again)
}

func (s *EngineTestSuite) TestOverTimeCompletesOnLastTick() {
	def := s.define(mining())
	s.givePickaxe()

	_, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	for i := 0; i < 4; i++ {
		res, err := s.engine.TickOverTime(s.ctx, s.actor)
		s.Require().NoError(err)
		s.Require().Equal(engine.OutcomeStarted, res.Outcome, "tick %d", i)
	}

	res, err := s.engine.TickOverTime(s.ctx, s.actor)
	s.Require().NoError(err)
	s.Equal(engine.OutcomeSuccess, res.Outcome)
	s.Equal(20, res.Cost)

	s.NotNil(s.actor.Carrying(100), "the conjured ore")
	s.NotNil(s.actor.Carrying(102), "the pickaxe turned into gravel")
	s.Nil(s.actor.Carrying(101))
	s.Equal(80, s.actor.Pool(ability.PoolMove).Current)
	s.Len(s.sentWith(ability.MsgTickToChar), 5)

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.False(busy)
}

func (s *EngineTestSuite) TestOverTimeIsBusy() {
	def := s.define(mining())
	def.CooldownSeconds = 0
	s.givePickaxe()
	s.givePickaxe()

	_, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeUsageError, res.Outcome)
	s.Equal(engine.ReasonBusy, res.Reason)
	s.Equal(80, s.actor.Pool(ability.PoolMove).Current)
	s.Equal(1, s.actor.CountCarried(101))
	s.Equal(1, s.notices(engine.ReasonBusy))
}

func (s *EngineTestSuite) TestOverTimeNeedsConsumables() {
	def := s.define(mining())

	res, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	s.Equal(engine.OutcomeUsageError, res.Outcome)
	s.Equal(engine.ReasonNoResources, res.Reason)
	s.Equal(100, s.actor.Pool(ability.PoolMove).Current)
}

func (s *EngineTestSuite) TestOverTimeLosingTargetRefunds() {
	def := s.define(&ability.Definition{
		ID:       31,
		Name:     "mend",
		Types:    []ability.WeightedType{{Type: ability.TypeRestore, Weight: 1}},
		Targets:  ability.TargetCharRoom,
		Flags:    ability.FlagOverTime,
		BaseCost: 15,
		CostPool: ability.PoolMana,
		Messages: []ability.CustomMessage{
			{Slot: ability.MsgTickToChar, Position: 0, Text: "You begin binding wounds."},
			{Slot: ability.MsgTickToChar, Position: 1, Text: "You tie off the bandage."},
		},
	})
	squire := s.mob("squire", 10, 0)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "squire")
	s.Require().NoError(err)
	s.Require().Equal(engine.OutcomeStarted, res.Outcome)
	s.Equal(485, s.actor.Pool(ability.PoolMana).Current)

	s.world.RemoveCharacter(squire)

	res, err = s.engine.TickOverTime(s.ctx, s.actor)
	s.Require().NoError(err)
	s.Equal(engine.OutcomeCancelled, res.Outcome)
	s.Equal(engine.ReasonLostTarget, res.Reason)
	s.Equal(500, s.actor.Pool(ability.PoolMana).Current)
}

func (s *EngineTestSuite) TestOverTimeImmuneAtTheEndRefunds() {
	def := firebolt()
	def.Flags |= ability.FlagOverTime
	def.Immunities = ability.ImmuneFire
	def.Messages = []ability.CustomMessage{
		{Slot: ability.MsgTickToChar, Position: 0, Text: "You gather flame."},
	}
	s.define(def)
	salamander := s.mob("salamander", 30, 0)

	res, err := s.engine.Perform(s.ctx, s.actor, def, "salamander")
	s.Require().NoError(err)
	s.Require().Equal(engine.OutcomeStarted, res.Outcome)
	s.Less(s.actor.Pool(ability.PoolMana).Current, 500)
	s.NotZero(s.actor.CooldownRemaining(7, s.now))

	salamander.Immunities = ability.ImmuneFire

	res, err = s.engine.TickOverTime(s.ctx, s.actor)
	s.Require().NoError(err)
	s.Equal(engine.OutcomeImmune, res.Outcome)
	s.Zero(res.Cost)
	s.Equal(500, s.actor.Pool(ability.PoolMana).Current)
	s.Zero(s.actor.CooldownRemaining(7, s.now))
	s.Equal(100, salamander.Pool(ability.PoolHealth).Current)

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.False(busy)
}

func (s *EngineTestSuite) TestTickAllAdvancesRunningAbilities() {
	def := s.define(mining())
	s.givePickaxe()

	_, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)

	for i := 0; i < 5; i++ {
		s.Require().NoError(s.engine.TickAll(s.ctx))
	}
	s.NotNil(s.actor.Carrying(100))

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.False(busy)
}

func (s *EngineTestSuite) TestRepeatingOverTimeStartsAgain() {
	def := mining()
	def.Flags |= ability.FlagRepeatOverTime
	def.CooldownSeconds = 0
	s.define(def)
	s.givePickaxe()
	s.givePickaxe()

	_, err := s.engine.Perform(s.ctx, s.actor, def, "")
	s.Require().NoError(err)
	for i := 0; i < 5; i++ {
		_, err := s.engine.TickOverTime(s.ctx, s.actor)
		s.Require().NoError(err)
	}

	busy, err := s.engine.IsBusy(s.ctx, s.actor)
	s.Require().NoError(err)
	s.True(busy, "a second swing was started")
	s.Equal(60, s.actor.Pool(ability.PoolMove).Current)
	s.Zero(s.actor.CountCarried(101))
}
