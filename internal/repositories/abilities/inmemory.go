package abilities

import (
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

type inMemoryRepository struct {
	mu        sync.RWMutex
	abilities map[ability.ID]*ability.Definition
	byCommand map[string]ability.ID // lowercased command -> ability ID
	ordered   []*ability.Definition
}

// NewInMemoryRepository creates a catalog holding defs
func NewInMemoryRepository(defs ...*ability.Definition) (Repository, error) {
	r := &inMemoryRepository{
		abilities: make(map[ability.ID]*ability.Definition, len(defs)),
		byCommand: make(map[string]ability.ID),
	}
	for _, def := range defs {
		if err := r.Add(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add stores a new definition
func (r *inMemoryRepository) Add(def *ability.Definition) error {
	if def == nil {
		return abilerr.InvalidArgument("definition cannot be nil")
	}
	if def.ID < 0 {
		return abilerr.InvalidArgumentf("ability %q has invalid ID %d", def.Name, def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.abilities[def.ID]; exists {
		return abilerr.AlreadyExistsf("ability %d is defined twice (%s, %s)", def.ID, existing.Name, def.Name).
			WithMeta("ability_id", int(def.ID))
	}
	if def.Command != "" {
		cmd := strings.ToLower(def.Command)
		if other, taken := r.byCommand[cmd]; taken {
			return abilerr.AlreadyExistsf("command %q is used by abilities %d and %d", def.Command, other, def.ID)
		}
		r.byCommand[cmd] = def.ID
	}

	def.RecomputeTypeFlags()
	r.abilities[def.ID] = def

	i := sort.Search(len(r.ordered), func(i int) bool { return r.ordered[i].ID > def.ID })
	r.ordered = append(r.ordered, nil)
	copy(r.ordered[i+1:], r.ordered[i:])
	r.ordered[i] = def

	return nil
}

// Get retrieves a definition by ID
func (r *inMemoryRepository) Get(id ability.ID) (*ability.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.abilities[id]
	return def, exists
}

// GetByName matches an exact name first, then the lowest ID whose name
// starts with the given text
func (r *inMemoryRepository) GetByName(name string) (*ability.Definition, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var prefix *ability.Definition
	for _, def := range r.ordered {
		lower := strings.ToLower(def.Name)
		if lower == name {
			return def, true
		}
		if prefix == nil && strings.HasPrefix(lower, name) {
			prefix = def
		}
	}
	return prefix, prefix != nil
}

// GetByCommand retrieves the definition a player command invokes
func (r *inMemoryRepository) GetByCommand(command string) (*ability.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byCommand[strings.ToLower(command)]
	if !exists {
		return nil, false
	}
	return r.abilities[id], true
}

// List returns every definition ordered by ID
func (r *inMemoryRepository) List() []*ability.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*ability.Definition(nil), r.ordered...)
}
