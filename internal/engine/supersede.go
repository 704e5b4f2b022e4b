package engine

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// maxSupersedeHops bounds the walk even if the catalog is malformed
const maxSupersedeHops = 100

// ResolveSupersede follows def's superseded-by links to the best version
// the actor owns. A loop or an overlong chain returns def unchanged along
// with a cycle error.
func (e *Engine) ResolveSupersede(actor *world.Character, def *ability.Definition) (*ability.Definition, error) {
	current := def
	visited := map[ability.ID]bool{def.ID: true}

	for hops := 0; ; hops++ {
		next := e.ownedSuccessor(actor, current)
		if next == nil {
			return current, nil
		}
		if visited[next.ID] || hops >= maxSupersedeHops {
			return def, abilerr.Cyclef("ability %d supersede chain loops at %d", def.ID, next.ID).
				WithMeta("ability_id", int(def.ID))
		}
		visited[next.ID] = true
		current = next
	}
}

// ownedSuccessor is the first superseding ability the actor owns
func (e *Engine) ownedSuccessor(actor *world.Character, def *ability.Definition) *ability.Definition {
	for _, id := range def.SupersededBy() {
		if !actor.Owns(id) {
			continue
		}
		if next, ok := e.catalog.Get(id); ok {
			return next
		}
	}
	return nil
}
