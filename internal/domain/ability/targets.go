package ability

// TargetFlags is the set of target categories an ability accepts
type TargetFlags uint64

const (
	TargetSelf TargetFlags = 1 << iota
	TargetCharRoom
	TargetCharClosest
	TargetCharWorld
	TargetFightVictim
	TargetFightSelf
	TargetNotSelf
	TargetNotAlly
	TargetNotEnemy
	TargetObjInventory
	TargetObjEquipped
	TargetObjRoom
	TargetObjWorld
	TargetVehicleRoom
	TargetVehicleWorld
	TargetRoomHere
	TargetRoomExit
	TargetRoomHome
	TargetRoomDirection
	TargetRoomCoords
	TargetRoomCity
	TargetMultiGroup
	TargetMultiAllies
	TargetMultiEnemies
	TargetMultiAny
	TargetDeadOK
)

var targetNames = []string{
	"self",
	"char-room",
	"char-closest",
	"char-world",
	"fight-victim",
	"fight-self",
	"not-self",
	"not-ally",
	"not-enemy",
	"obj-inventory",
	"obj-equipped",
	"obj-room",
	"obj-world",
	"vehicle-room",
	"vehicle-world",
	"room-here",
	"room-exit",
	"room-home",
	"room-direction",
	"room-coords",
	"room-city",
	"multi-group",
	"multi-allies",
	"multi-enemies",
	"multi-any",
	"dead-ok",
}

// Grouped masks used by targeting and validation
const (
	TargetAnyChar    = TargetSelf | TargetCharRoom | TargetCharClosest | TargetCharWorld | TargetFightVictim | TargetFightSelf
	TargetAnyObj     = TargetObjInventory | TargetObjEquipped | TargetObjRoom | TargetObjWorld
	TargetAnyVehicle = TargetVehicleRoom | TargetVehicleWorld
	TargetAnyRoom    = TargetRoomHere | TargetRoomExit | TargetRoomHome | TargetRoomDirection | TargetRoomCoords | TargetRoomCity
	TargetAnyMulti   = TargetMultiGroup | TargetMultiAllies | TargetMultiEnemies | TargetMultiAny
)

// Has reports whether every bit in other is set
func (f TargetFlags) Has(other TargetFlags) bool { return f&other == other && other != 0 }

// Any reports whether any bit in other is set
func (f TargetFlags) Any(other TargetFlags) bool { return f&other != 0 }

// SelfOnly reports whether the only character target allowed is the actor
func (f TargetFlags) SelfOnly() bool {
	return f.Any(TargetSelf) && !f.Any((TargetAnyChar&^TargetSelf)|TargetAnyObj|TargetAnyVehicle|TargetAnyRoom|TargetAnyMulti)
}

func (f TargetFlags) MarshalJSON() ([]byte, error) { return marshalBits(uint64(f), targetNames) }

func (f *TargetFlags) UnmarshalJSON(data []byte) error {
	v, err := unmarshalBits(data, targetNames)
	if err != nil {
		return err
	}
	*f = TargetFlags(v)
	return nil
}

// MultiCategory is the class of characters a multi-target invocation hits
type MultiCategory int

const (
	MultiNone MultiCategory = iota
	MultiGroup
	MultiAllies
	MultiEnemies
	MultiAny
)

var multiNames = []string{"none", "group", "allies", "enemies", "any"}

func (m MultiCategory) String() string { return enumName(int(m), multiNames) }

// Flag returns the target bit that permits this category
func (m MultiCategory) Flag() TargetFlags {
	switch m {
	case MultiGroup:
		return TargetMultiGroup
	case MultiAllies:
		return TargetMultiAllies
	case MultiEnemies:
		return TargetMultiEnemies
	case MultiAny:
		return TargetMultiAny
	}
	return 0
}

// MultiCategories lists the categories in default preference order
func MultiCategories() []MultiCategory {
	return []MultiCategory{MultiGroup, MultiAllies, MultiEnemies, MultiAny}
}
