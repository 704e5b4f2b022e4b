package ability

// Type is one behavior an ability exhibits. An ability may combine several.
type Type int

const (
	TypeCraft Type = iota
	TypePlayerTech
	TypePassiveBuff
	TypeCustom
	TypeTeleport
	TypeAttack
	TypeDamage
	TypeRestore
	TypeConjureObject
	TypeConjureVehicle
	TypeRoomAffect
	TypeBuff
	TypeDOT
	TypeBuildingDamage
	TypeResurrect
	TypeReadyWeapons
	TypeSummonAny
	TypeSummonRandom
	TypeMove
	TypeAction

	numTypes
)

var typeNames = []string{
	"craft",
	"player-tech",
	"passive-buff",
	"custom",
	"teleport",
	"attack",
	"damage",
	"restore",
	"conjure-object",
	"conjure-vehicle",
	"room-affect",
	"buff",
	"dot",
	"building-damage",
	"resurrect",
	"ready-weapons",
	"summon-any",
	"summon-random",
	"move",
	"action",
}

// AllTypes lists every behavior type in declaration order
func AllTypes() []Type {
	out := make([]Type, 0, numTypes)
	for t := Type(0); t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

func (t Type) String() string { return enumName(int(t), typeNames) }

// Flag returns the bit for this type in a TypeFlags mask
func (t Type) Flag() TypeFlags { return TypeFlags(1) << uint(t) }

func (t Type) MarshalJSON() ([]byte, error) { return marshalEnum(int(t), typeNames) }

func (t *Type) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, typeNames)
	if err != nil {
		return err
	}
	*t = Type(v)
	return nil
}

// TypeFlags is the bitwise union of an ability's types
type TypeFlags uint64

// Has reports whether every bit in other is set
func (f TypeFlags) Has(other TypeFlags) bool { return f&other == other && other != 0 }

// Any reports whether any bit in other is set
func (f TypeFlags) Any(other TypeFlags) bool { return f&other != 0 }

func (f TypeFlags) MarshalJSON() ([]byte, error) { return marshalBits(uint64(f), typeNames) }

func (f *TypeFlags) UnmarshalJSON(data []byte) error {
	v, err := unmarshalBits(data, typeNames)
	if err != nil {
		return err
	}
	*f = TypeFlags(v)
	return nil
}

// WeightedType is one entry in an ability's type list. Weight decides the
// type's share of scale points when several types co-occur.
type WeightedType struct {
	Type   Type `json:"type"`
	Weight int  `json:"weight"`
}
