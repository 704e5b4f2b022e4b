package messaging

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
)

// Line is one rendered line for one audience. Room lines go to everyone in
// Room except the Exclude list.
type Line struct {
	To      *world.Character
	Room    *world.Room
	Exclude []*world.Character
	Ability ability.ID
	Text    string
}

// Sink delivers rendered lines
type Sink interface {
	Deliver(line Line) error
}

// defaultText is used when an ability has no message for a slot the actor
// should always hear about
var defaultText = map[ability.MessageSlot]string{
	ability.MsgToChar:        "You use $a.",
	ability.MsgFailToChar:    "You fail to use $a.",
	ability.MsgImmuneToChar:  "$N is immune to $a.",
	ability.MsgBeginToChar:   "You begin $a.",
	ability.MsgCancelToChar:  "You stop $a.",
	ability.MsgWearOffToChar: "$a wears off.",
	ability.MsgNoTarget:      "Use $a on whom?",
}

type audience int

const (
	toActor audience = iota
	toVictim
	toRoom
)

var slotAudience = map[ability.MessageSlot]audience{
	ability.MsgToChar:        toActor,
	ability.MsgFailToChar:    toActor,
	ability.MsgImmuneToChar:  toActor,
	ability.MsgBeginToChar:   toActor,
	ability.MsgTickToChar:    toActor,
	ability.MsgCancelToChar:  toActor,
	ability.MsgWearOffToChar: toActor,
	ability.MsgNoTarget:      toActor,
	ability.MsgToVict:        toVictim,
	ability.MsgFailToVict:    toVictim,
	ability.MsgToRoom:        toRoom,
	ability.MsgFailToRoom:    toRoom,
	ability.MsgBeginToRoom:   toRoom,
	ability.MsgTickToRoom:    toRoom,
	ability.MsgWearOffToRoom: toRoom,
}

// Messenger renders engine messages and hands them to every sink
type Messenger struct {
	renderer *Renderer
	sinks    []Sink
	logger   *zap.Logger
}

// Config holds configuration for the messenger
type Config struct {
	Sinks  []Sink
	Logger *zap.Logger
}

// New creates a messenger. With no sinks every line is dropped.
func New(cfg *Config) *Messenger {
	m := &Messenger{
		renderer: NewRenderer(),
		sinks:    cfg.Sinks,
		logger:   cfg.Logger,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Send implements engine.Messenger
func (m *Messenger) Send(msg engine.Message) {
	line, ok := m.Compose(msg)
	if !ok {
		return
	}
	m.deliver(line)
}

// Tell delivers a plain line to one character
func (m *Messenger) Tell(to *world.Character, text string) {
	if to == nil || text == "" {
		return
	}
	m.deliver(Line{To: to, Text: m.renderer.Capitalize(text)})
}

func (m *Messenger) deliver(line Line) {
	for _, sink := range m.sinks {
		if err := sink.Deliver(line); err != nil {
			m.logger.Warn("message delivery failed",
				zap.Int("ability", int(line.Ability)),
				zap.String("text", line.Text),
				zap.Error(err))
		}
	}
}

// Compose renders msg and picks its audience. It reports false when there
// is nothing to say or nobody to say it to.
func (m *Messenger) Compose(msg engine.Message) (Line, bool) {
	line := Line{Ability: ability.ID(abilityID(msg.Ability))}

	if msg.Reason != engine.ReasonNone {
		if msg.Actor == nil {
			return Line{}, false
		}
		line.To = msg.Actor
		line.Text = m.renderer.Render(ReasonTemplate(msg.Reason, msg.Detail), msg)
		return line, true
	}

	tmpl, ok := template(msg)
	if !ok {
		return Line{}, false
	}

	switch slotAudience[msg.Slot] {
	case toActor:
		if msg.Actor == nil {
			return Line{}, false
		}
		line.To = msg.Actor
	case toVictim:
		if msg.Char == nil || msg.Char == msg.Actor {
			return Line{}, false
		}
		line.To = msg.Char
	case toRoom:
		line.Room = roomOf(msg)
		if line.Room == nil {
			return Line{}, false
		}
		line.Exclude = []*world.Character{msg.Actor}
		if msg.Char != nil && msg.Char != msg.Actor {
			line.Exclude = append(line.Exclude, msg.Char)
		}
	}

	line.Text = m.renderer.Render(tmpl, msg)
	return line, true
}

func template(msg engine.Message) (string, bool) {
	if msg.Ability != nil {
		if text, ok := msg.Ability.Message(msg.Slot, msg.Position); ok {
			return text, true
		}
	}
	text, ok := defaultText[msg.Slot]
	return text, ok
}

func roomOf(msg engine.Message) *world.Room {
	if msg.Actor != nil && msg.Actor.Room != nil {
		return msg.Actor.Room
	}
	return msg.Room
}

func abilityID(def *ability.Definition) int {
	if def == nil {
		return 0
	}
	return int(def.ID)
}
