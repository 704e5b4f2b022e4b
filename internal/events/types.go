package events

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// EventType represents the type of game event
type EventType string

// Event is the base interface for all game events
type Event interface {
	GetType() EventType
	GetActor() *world.Character
	GetTarget() *world.Character
	// Context carries request-scoped values (such as the hook chain of the
	// invocation that caused the event) from emitter to listeners
	Context() context.Context
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Actor     *world.Character
	Target    *world.Character
	Ctx       context.Context
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType          { return e.Type }
func (e *BaseEvent) GetActor() *world.Character  { return e.Actor }
func (e *BaseEvent) GetTarget() *world.Character { return e.Target }
func (e *BaseEvent) IsCancelled() bool           { return e.Cancelled }
func (e *BaseEvent) Cancel()                     { e.Cancelled = true }

// Context returns the emitter's context, or Background when none was set
func (e *BaseEvent) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
