package world

// Object is an item in the world
type Object struct {
	ID         string
	Vnum       int
	Name       string
	Keywords   []string
	WeaponType int // zero for non-weapons
	Light      bool

	CarriedBy *Character
	WornBy    *Character
	InRoom    *Room
}

// Matches reports whether a keyword abbreviates one of the object's names
func (o *Object) Matches(word string) bool {
	return matchKeywords(o.Keywords, word)
}

// Vehicle is a ship, cart or similar movable structure
type Vehicle struct {
	ID       string
	Vnum     int
	Name     string
	Keywords []string
	Room     *Room
	Health   PoolResource
}

// Matches reports whether a keyword abbreviates one of the vehicle's names
func (v *Vehicle) Matches(word string) bool {
	return matchKeywords(v.Keywords, word)
}

// ObjectProto is the template objects are loaded from
type ObjectProto struct {
	Vnum       int
	Name       string
	Keywords   []string
	WeaponType int
	Light      bool
}

// MobProto is the template NPCs are loaded from
type MobProto struct {
	Vnum     int
	Name     string
	Keywords []string
	Level    int
	Health   int
	Flags    CharacterFlags
}

// VehicleProto is the template vehicles are loaded from
type VehicleProto struct {
	Vnum     int
	Name     string
	Keywords []string
	Health   int
}
