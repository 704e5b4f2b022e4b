package messaging

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// LogSink writes every line to a zap logger
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs at info level
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(line Line) error {
	fields := []zap.Field{
		zap.Int("ability", int(line.Ability)),
		zap.String("text", line.Text),
	}
	if line.To != nil {
		fields = append(fields, zap.String("to", line.To.ID))
	}
	if line.Room != nil {
		fields = append(fields, zap.Int("room", line.Room.Vnum))
	}
	s.logger.Info("ability message", fields...)
	return nil
}

// MemorySink keeps delivered lines, mostly for tests and replays
type MemorySink struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemorySink creates an empty memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Deliver(line Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns a copy of everything delivered so far
func (s *MemorySink) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

// Heard returns the text of every line ch would have seen, in order
func (s *MemorySink) Heard(ch *world.Character) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, line := range s.lines {
		if Reaches(line, ch) {
			out = append(out, line.Text)
		}
	}
	return out
}

// Reset forgets every delivered line
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Reaches reports whether ch is in a line's audience
func Reaches(line Line, ch *world.Character) bool {
	if ch == nil {
		return false
	}
	if line.To != nil {
		return line.To == ch
	}
	if line.Room == nil || ch.Room != line.Room {
		return false
	}
	for _, excluded := range line.Exclude {
		if excluded == ch {
			return false
		}
	}
	return true
}

// ChannelSender is the part of a discordgo session the Discord sink uses
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink posts lines to Discord channels. Player lines go to the
// player's own channel when one is registered; room lines and everything
// else go to the default channel. NPC lines are dropped.
type DiscordSink struct {
	sender   ChannelSender
	fallback string

	mu       sync.RWMutex
	channels map[string]string
}

// NewDiscordSink creates a sink posting to channelID by default
func NewDiscordSink(sender ChannelSender, channelID string) *DiscordSink {
	return &DiscordSink{
		sender:   sender,
		fallback: channelID,
		channels: make(map[string]string),
	}
}

// Register routes a character's private lines to a channel
func (s *DiscordSink) Register(characterID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[characterID] = channelID
}

func (s *DiscordSink) Deliver(line Line) error {
	channel, content, ok := s.route(line)
	if !ok {
		return nil
	}
	if _, err := s.sender.ChannelMessageSend(channel, content); err != nil {
		return fmt.Errorf("failed to send to channel %s: %w", channel, err)
	}
	return nil
}

func (s *DiscordSink) route(line Line) (string, string, bool) {
	if line.To != nil {
		if line.To.IsNPC {
			return "", "", false
		}
		s.mu.RLock()
		channel, ok := s.channels[line.To.ID]
		s.mu.RUnlock()
		if ok {
			return channel, line.Text, true
		}
		if s.fallback == "" {
			return "", "", false
		}
		return s.fallback, fmt.Sprintf("**%s**: %s", line.To.Name, line.Text), true
	}

	if line.Room == nil || s.fallback == "" {
		return "", "", false
	}
	return s.fallback, fmt.Sprintf("*[%s]* %s", line.Room.Name, line.Text), true
}
