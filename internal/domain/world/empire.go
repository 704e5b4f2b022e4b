package world

// Relation is one empire's diplomatic stance toward another
type Relation int

const (
	RelationNeutral Relation = iota
	RelationAllied
	RelationWar
)

// Empire is a player-run faction that owns territory
type Empire struct {
	ID        string
	Name      string
	Diplomacy map[string]Relation
}

// NewEmpire creates an empire with no relations
func NewEmpire(id, name string) *Empire {
	return &Empire{ID: id, Name: name, Diplomacy: make(map[string]Relation)}
}

// SetRelation records a symmetric relation
func (e *Empire) SetRelation(other *Empire, rel Relation) {
	e.Diplomacy[other.ID] = rel
	other.Diplomacy[e.ID] = rel
}

// AtWarWith reports whether the empires are at war
func (e *Empire) AtWarWith(other *Empire) bool {
	return other != nil && e.Diplomacy[other.ID] == RelationWar
}

// AlliedWith reports whether the empires are allied
func (e *Empire) AlliedWith(other *Empire) bool {
	return other != nil && e.Diplomacy[other.ID] == RelationAllied
}
