package events

// Event type constants
const (
	// Ability Events
	EventTypeBeforeAbility    EventType = "before_ability"
	EventTypeAfterAbility     EventType = "after_ability"
	EventTypeOverTimeStarted  EventType = "over_time_started"
	EventTypeOverTimeFinished EventType = "over_time_finished"
	EventTypeOverTimeCanceled EventType = "over_time_cancelled"
	EventTypeEffectWoreOff    EventType = "effect_wore_off"

	// Combat Events
	EventTypeAttack      EventType = "attack"
	EventTypeHit         EventType = "hit"
	EventTypeDamageDealt EventType = "damage_dealt"
	EventTypeKill        EventType = "kill"
	EventTypeDying       EventType = "dying"
	EventTypeRespawn     EventType = "respawn"
)

// Priority levels for listener order
const (
	PriorityVeto    = 0   // May cancel before anything else sees the event
	PriorityHooks   = 100 // Ability hooks
	PriorityEffects = 200 // Status effect bookkeeping
	PriorityAudit   = 400 // Logging
	PriorityLast    = 500
)
