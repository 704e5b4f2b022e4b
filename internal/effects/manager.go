package effects

import (
	"sync"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
)

// AddResult describes what AddEffect did
type AddResult int

const (
	Added AddResult = iota
	Replaced
	Stacked
	Refreshed
	Extended
	Kept
)

// Manager manages status effects for a character or room. Effects keep
// insertion order so ticks and listings are deterministic.
type Manager struct {
	effects map[string]*StatusEffect
	order   []string
	ids     uuid.Generator
	mu      sync.RWMutex
}

// NewManager creates a new effect manager with random effect ids
func NewManager() *Manager {
	return NewManagerWithGenerator(uuid.NewGoogleUUIDGenerator())
}

// NewManagerWithGenerator creates a manager that ids effects with gen
func NewManagerWithGenerator(gen uuid.Generator) *Manager {
	return &Manager{
		effects: make(map[string]*StatusEffect),
		ids:     gen,
	}
}

// AddEffect adds a status effect, resolving conflicts with an existing
// effect in the same slot (source ability, caster, name, kind) by its stacking
// rule. It returns the effect that is now live.
func (m *Manager) AddEffect(effect *StatusEffect) (*StatusEffect, AddResult, error) {
	if effect == nil {
		return nil, Kept, abilerr.InvalidArgument("effect is required")
	}
	if effect.Duration.Type == DurationTicks && effect.Duration.Remaining <= 0 {
		return nil, Kept, abilerr.InvalidArgumentf("timed effect %s needs a positive duration", effect.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.findSlotLocked(effect); existing != nil {
		switch effect.StackingRule {
		case StackingStack:
			if existing.Stacks < effect.MaxStacks {
				existing.Stacks++
				existing.Duration = effect.Duration
				existing.DamagePerTick = effect.DamagePerTick
				return existing, Stacked, nil
			}
			existing.Duration = effect.Duration
			return existing, Refreshed, nil
		case StackingExtend:
			existing.Duration.Remaining += effect.Duration.Remaining
			return existing, Extended, nil
		default:
			m.removeLocked(existing.ID)
			m.insertLocked(effect)
			return effect, Replaced, nil
		}
	}

	m.insertLocked(effect)
	return effect, Added, nil
}

func (m *Manager) insertLocked(effect *StatusEffect) {
	if effect.ID == "" {
		effect.ID = m.ids.New()
	}
	if effect.Stacks < 1 {
		effect.Stacks = 1
	}
	effect.CreatedAt = time.Now()
	m.effects[effect.ID] = effect
	m.order = append(m.order, effect.ID)
}

func (m *Manager) removeLocked(id string) *StatusEffect {
	effect, ok := m.effects[id]
	if !ok {
		return nil
	}
	delete(m.effects, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return effect
}

func (m *Manager) findSlotLocked(effect *StatusEffect) *StatusEffect {
	for _, id := range m.order {
		if existing := m.effects[id]; existing.sameSlot(effect) {
			return existing
		}
	}
	return nil
}

// RemoveWhere removes every effect match accepts and returns them
func (m *Manager) RemoveWhere(match func(*StatusEffect) bool) []*StatusEffect {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []*StatusEffect
	for _, id := range append([]string(nil), m.order...) {
		if effect := m.effects[id]; match(effect) {
			removed = append(removed, m.removeLocked(id))
		}
	}
	return removed
}

// GetActiveEffects returns all non-expired effects in the order they were added
func (m *Manager) GetActiveEffects() []*StatusEffect {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := []*StatusEffect{}
	for _, id := range m.order {
		if effect := m.effects[id]; !effect.IsExpired() {
			active = append(active, effect)
		}
	}
	return active
}

// Find returns the live effect an ability and caster placed here
func (m *Manager) Find(sourceID ability.ID, casterID string) *StatusEffect {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		effect := m.effects[id]
		if effect.SourceID == sourceID && effect.CasterID == casterID && !effect.IsExpired() {
			return effect
		}
	}
	return nil
}

// Affects returns the union of affect bits from all active effects
func (m *Manager) Affects() ability.AffectFlags {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var flags ability.AffectFlags
	for _, effect := range m.effects {
		if !effect.IsExpired() {
			flags |= effect.Affects
		}
	}
	return flags
}

// ModifierTotal sums every active modifier for a location
func (m *Manager) ModifierTotal(location ability.ApplyLocation) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, effect := range m.effects {
		if effect.IsExpired() {
			continue
		}
		for _, mod := range effect.Modifiers {
			if mod.Location == location {
				total += mod.Value
			}
		}
	}
	return total
}

// HasDOT reports whether a damage-over-time effect of the given damage type
// is active. A negative damage type matches any.
func (m *Manager) HasDOT(damageType ability.DamageType) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, effect := range m.effects {
		if effect.Kind == KindDOT && !effect.IsExpired() && (damageType < 0 || effect.DamageType == damageType) {
			return true
		}
	}
	return false
}

// TickResult is what happened to effects during one tick
type TickResult struct {
	// DOTs are the damage-over-time effects that fire this tick
	DOTs []*StatusEffect
	// Expired effects were removed after this tick
	Expired []*StatusEffect
}

// Tick advances every timed effect by one tick. DOTs that were active at
// the start of the tick are reported so their damage can be applied.
func (m *Manager) Tick() TickResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result TickResult
	for _, id := range append([]string(nil), m.order...) {
		effect := m.effects[id]
		if effect.Kind == KindDOT && !effect.IsExpired() {
			result.DOTs = append(result.DOTs, effect)
		}
		if effect.Duration.Type != DurationTicks {
			continue
		}
		effect.Duration.Remaining--
		if effect.IsExpired() {
			result.Expired = append(result.Expired, m.removeLocked(id))
		}
	}
	return result
}

// Clear removes all effects
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.effects = make(map[string]*StatusEffect)
	m.order = nil
}
