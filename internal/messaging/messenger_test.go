package messaging_test

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	"github.com/KirkDiggler/ability-engine/internal/messaging"
	"github.com/KirkDiggler/ability-engine/internal/testutils"
)

type MessengerTestSuite struct {
	suite.Suite
	sink      *messaging.MemorySink
	messenger *messaging.Messenger

	room    *world.Room
	caster  *world.Character
	victim  *world.Character
	watcher *world.Character
	bolt    *ability.Definition
}

func (s *MessengerTestSuite) SetupTest() {
	s.sink = messaging.NewMemorySink()
	s.messenger = messaging.New(&messaging.Config{Sinks: []messaging.Sink{s.sink}})

	s.room = world.NewRoom(1, "the square")
	s.caster = testutils.CreateTestCharacter("p1", "Grunk", 20)
	s.caster.Sex = world.SexMale
	s.victim = testutils.CreateTestCharacter("p2", "Mira", 20)
	s.victim.Sex = world.SexFemale
	s.watcher = testutils.CreateTestCharacter("p3", "Tobin", 20)
	for _, ch := range []*world.Character{s.caster, s.victim, s.watcher} {
		ch.Room = s.room
		s.room.People = append(s.room.People, ch)
	}

	s.bolt = &ability.Definition{
		ID:   7,
		Name: "lightning bolt",
		Messages: []ability.CustomMessage{
			{Slot: ability.MsgToChar, Text: "You strike $N with $a."},
			{Slot: ability.MsgToVict, Text: "$n strikes you with $a."},
			{Slot: ability.MsgToRoom, Text: "$n strikes $N with $a."},
			{Slot: ability.MsgTickToChar, Position: 1, Text: "you keep chanting."},
		},
	}
}

func TestMessengerTestSuite(t *testing.T) {
	suite.Run(t, new(MessengerTestSuite))
}

func (s *MessengerTestSuite) send(slot ability.MessageSlot) {
	s.messenger.Send(engine.Message{Actor: s.caster, Char: s.victim, Ability: s.bolt, Slot: slot})
}

func (s *MessengerTestSuite) TestEachAudienceHearsItsOwnLine() {
	s.send(ability.MsgToChar)
	s.send(ability.MsgToVict)
	s.send(ability.MsgToRoom)

	s.Equal([]string{"You strike Mira with lightning bolt."}, s.sink.Heard(s.caster))
	s.Equal([]string{"Grunk strikes you with lightning bolt."}, s.sink.Heard(s.victim))
	s.Equal([]string{"Grunk strikes Mira with lightning bolt."}, s.sink.Heard(s.watcher))
}

func (s *MessengerTestSuite) TestVictimLineSkippedWhenSelfTargeted() {
	s.messenger.Send(engine.Message{Actor: s.caster, Char: s.caster, Ability: s.bolt, Slot: ability.MsgToVict})
	s.Empty(s.sink.Lines())
}

func (s *MessengerTestSuite) TestRoomLineExcludesActorOnlyWhenSelfTargeted() {
	s.messenger.Send(engine.Message{Actor: s.caster, Char: s.caster, Ability: s.bolt, Slot: ability.MsgToRoom})

	s.Require().Len(s.sink.Lines(), 1)
	s.Equal([]*world.Character{s.caster}, s.sink.Lines()[0].Exclude)
	s.Len(s.sink.Heard(s.victim), 1)
	s.Empty(s.sink.Heard(s.caster))
}

func (s *MessengerTestSuite) TestDefaultTextForActorSlots() {
	silent := &ability.Definition{ID: 8, Name: "hide"}

	s.messenger.Send(engine.Message{Actor: s.caster, Ability: silent, Slot: ability.MsgBeginToChar})
	s.messenger.Send(engine.Message{Actor: s.caster, Ability: silent, Slot: ability.MsgBeginToRoom})

	s.Equal([]string{"You begin hide."}, s.sink.Heard(s.caster))
	s.Empty(s.sink.Heard(s.watcher), "room slots stay quiet unless authored")
}

func (s *MessengerTestSuite) TestTickMessagesUsePosition() {
	s.messenger.Send(engine.Message{Actor: s.caster, Ability: s.bolt, Slot: ability.MsgTickToChar, Position: 1})
	s.messenger.Send(engine.Message{Actor: s.caster, Ability: s.bolt, Slot: ability.MsgTickToChar, Position: 2})

	s.Equal([]string{"You keep chanting."}, s.sink.Heard(s.caster))
}

func (s *MessengerTestSuite) TestReasonGoesToActor() {
	s.messenger.Send(engine.Message{
		Actor:   s.caster,
		Ability: s.bolt,
		Reason:  engine.ReasonLimitation,
		Detail:  ability.LimitOutdoors.String(),
	})

	s.Equal([]string{"You must be outdoors to use lightning bolt."}, s.sink.Heard(s.caster))
	s.Empty(s.sink.Heard(s.watcher))
}

func (s *MessengerTestSuite) TestRoomLineWithoutActorUsesMessageRoom() {
	fog := &ability.Definition{
		ID:       9,
		Name:     "fog",
		Messages: []ability.CustomMessage{{Slot: ability.MsgWearOffToRoom, Text: "the $a lifts."}},
	}

	s.messenger.Send(engine.Message{Ability: fog, Room: s.room, Slot: ability.MsgWearOffToRoom})

	s.Equal([]string{"The fog lifts."}, s.sink.Heard(s.watcher))
}

func (s *MessengerTestSuite) TestNothingToSay() {
	_, ok := s.messenger.Compose(engine.Message{Ability: s.bolt, Slot: ability.MsgToChar})
	s.False(ok, "no actor")

	_, ok = s.messenger.Compose(engine.Message{Actor: s.caster, Ability: s.bolt, Slot: ability.MsgFailToRoom})
	s.False(ok, "no authored text")

	_, ok = s.messenger.Compose(engine.Message{Reason: engine.ReasonCost})
	s.False(ok, "reason without actor")
}

type failingSink struct{}

func (failingSink) Deliver(messaging.Line) error { return errors.New("gone") }

func TestMessengerLogsDeliveryFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := messaging.NewMemorySink()
	m := messaging.New(&messaging.Config{
		Sinks:  []messaging.Sink{failingSink{}, sink},
		Logger: zap.New(core),
	})
	actor := world.NewCharacter("p1", "Grunk", 1)

	m.Send(engine.Message{Actor: actor, Ability: &ability.Definition{ID: 3, Name: "kick"}, Slot: ability.MsgToChar})

	assert.Len(t, sink.Lines(), 1, "later sinks still get the line")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "message delivery failed", logs.All()[0].Message)
}

type sentMessage struct {
	channel string
	content string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sentMessage{channel: channelID, content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestDiscordSink(t *testing.T) {
	room := world.NewRoom(1, "Market")
	player := world.NewCharacter("p1", "Grunk", 1)
	other := world.NewCharacter("p2", "Mira", 1)
	mob := world.NewCharacter("m1", "a rat", 1)
	mob.IsNPC = true

	sender := &fakeSender{}
	sink := messaging.NewDiscordSink(sender, "main")
	sink.Register(player.ID, "dm-grunk")

	require.NoError(t, sink.Deliver(messaging.Line{To: player, Text: "You hide."}))
	require.NoError(t, sink.Deliver(messaging.Line{To: other, Text: "You sneeze."}))
	require.NoError(t, sink.Deliver(messaging.Line{To: mob, Text: "You squeak."}))
	require.NoError(t, sink.Deliver(messaging.Line{Room: room, Text: "A rat squeaks."}))
	require.NoError(t, sink.Deliver(messaging.Line{Text: "nowhere"}))

	assert.Equal(t, []sentMessage{
		{channel: "dm-grunk", content: "You hide."},
		{channel: "main", content: "**Mira**: You sneeze."},
		{channel: "main", content: "*[Market]* A rat squeaks."},
	}, sender.sent)

	sender.err = errors.New("rate limited")
	err := sink.Deliver(messaging.Line{To: player, Text: "again"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dm-grunk")
}

func TestDiscordSinkWithoutDefaultChannel(t *testing.T) {
	sender := &fakeSender{}
	sink := messaging.NewDiscordSink(sender, "")

	require.NoError(t, sink.Deliver(messaging.Line{To: world.NewCharacter("p1", "Grunk", 1), Text: "hi"}))
	require.NoError(t, sink.Deliver(messaging.Line{Room: world.NewRoom(1, "Market"), Text: "hi"}))
	assert.Empty(t, sender.sent)
}

func TestMemorySinkReset(t *testing.T) {
	sink := messaging.NewMemorySink()
	require.NoError(t, sink.Deliver(messaging.Line{Text: "x"}))
	sink.Reset()
	assert.Empty(t, sink.Lines())
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := messaging.NewLogSink(zap.New(core))

	require.NoError(t, sink.Deliver(messaging.Line{
		To:      world.NewCharacter("p1", "Grunk", 1),
		Ability: 4,
		Text:    "You hide.",
	}))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "p1", fields["to"])
	assert.Equal(t, "You hide.", fields["text"])
	assert.EqualValues(t, 4, fields["ability"])
}

func (s *MessengerTestSuite) TestTell() {
	s.messenger.Tell(s.caster, "huh?")
	s.messenger.Tell(nil, "nobody")
	s.messenger.Tell(s.caster, "")

	s.Equal([]string{"Huh?"}, s.sink.Heard(s.caster))
}
