package abilities

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// Repository is a read-mostly catalog of ability definitions. It satisfies
// the engine's Catalog.
type Repository interface {
	// Get retrieves a definition by ID
	Get(id ability.ID) (*ability.Definition, bool)

	// GetByName retrieves a definition by name or a prefix of one
	GetByName(name string) (*ability.Definition, bool)

	// GetByCommand retrieves the definition a player command invokes
	GetByCommand(command string) (*ability.Definition, bool)

	// Add stores a new definition
	Add(def *ability.Definition) error

	// List returns every definition ordered by ID
	List() []*ability.Definition
}
