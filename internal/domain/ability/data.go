package ability

// DataKind selects how an extension Data entry is interpreted
type DataKind int

const (
	DataPlayerTech DataKind = iota
	DataSummonMob
	DataSupersededBy
	DataParent
	DataRange
	DataPaintColor
	DataAction
	DataConjureObject
	DataConjureVehicle
	DataRestorePool
	DataReadyWeapon
	DataMoveDirection
)

var dataKindNames = []string{
	"player-tech",
	"summon-mob",
	"superseded-by",
	"parent",
	"range",
	"paint-color",
	"action",
	"conjure-object",
	"conjure-vehicle",
	"restore-pool",
	"ready-weapon",
	"move-direction",
}

func (k DataKind) String() string { return enumName(int(k), dataKindNames) }

func (k DataKind) MarshalJSON() ([]byte, error) { return marshalEnum(int(k), dataKindNames) }

func (k *DataKind) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, dataKindNames)
	if err != nil {
		return err
	}
	*k = DataKind(v)
	return nil
}

// Data is an open extension entry. Vnum and Misc mean different things per
// kind: a mob or object vnum, a linked ability id, a quantity, a range in
// rooms, a pool or direction number.
type Data struct {
	Kind DataKind `json:"kind"`
	Vnum int      `json:"vnum"`
	Misc int      `json:"misc,omitempty"`
}

// ActionID names a player-initiated action sub-behavior (DataAction vnum)
type ActionID int

const (
	ActionCleanse ActionID = iota + 1
	ActionDispel
	ActionReveal
	ActionCalm
)

// Tech is a capability granted to owners of a player-tech ability
type Tech int

const (
	TechNone Tech = iota
	TechDeepMines
	TechFastFind
	TechForage
	TechInfiltrate
	TechNavigate
	TechRepairVehicles
	TechSeeInDark
	TechWhereUpgrade
)

// ResourceCost is a consumable an ability uses up. When an over-time ability
// completes, every TurnsInto vnum is handed back to the actor.
type ResourceCost struct {
	Vnum      int `json:"vnum"`
	Amount    int `json:"amount"`
	TurnsInto int `json:"turns_into,omitempty"`
}

// Apply is a stat modifier. Weight is the share of scale points it receives;
// a negative weight produces a penalty.
type Apply struct {
	Location ApplyLocation `json:"location"`
	Weight   float64       `json:"weight"`
}
