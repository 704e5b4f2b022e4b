package ability

// LimitationType names one testable precondition
type LimitationType int

const (
	LimitOnBarrier LimitationType = iota
	LimitOnRoad
	LimitIndoors
	LimitOutdoors
	LimitInCity
	LimitHasEmpire
	LimitOwnTerritory
	LimitNotOwnTerritory
	LimitCanUseGuest
	LimitCanUseAlly
	LimitCanUseOwner
	LimitTargetHuman
	LimitTargetNotFighting
	LimitWieldingWeaponType
	LimitTargetHasDOT
	LimitHasItem
	LimitExpression
)

var limitationNames = []string{
	"on-barrier",
	"on-road",
	"indoors",
	"outdoors",
	"in-city",
	"has-empire",
	"own-territory",
	"not-own-territory",
	"can-use-guest",
	"can-use-ally",
	"can-use-owner",
	"target-human",
	"target-not-fighting",
	"wielding-weapon-type",
	"target-has-dot",
	"has-item",
	"expression",
}

func (l LimitationType) String() string { return enumName(int(l), limitationNames) }

func (l LimitationType) MarshalJSON() ([]byte, error) { return marshalEnum(int(l), limitationNames) }

func (l *LimitationType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, limitationNames)
	if err != nil {
		return err
	}
	*l = LimitationType(v)
	return nil
}

// LimitGroup collects limitations where any one satisfied member is enough
type LimitGroup int

const (
	LimitGroupNone LimitGroup = iota
	LimitGroupPermission
	LimitGroupWeapon
)

// Group returns the disjunctive group a limitation belongs to
func (l LimitationType) Group() LimitGroup {
	switch l {
	case LimitCanUseGuest, LimitCanUseAlly, LimitCanUseOwner:
		return LimitGroupPermission
	case LimitWieldingWeaponType:
		return LimitGroupWeapon
	}
	return LimitGroupNone
}

// Fatal reports whether failing this limitation aborts a whole multi-target batch
func (l LimitationType) Fatal() bool {
	switch l {
	case LimitHasEmpire, LimitOwnTerritory, LimitNotOwnTerritory, LimitOnBarrier, LimitOnRoad,
		LimitIndoors, LimitOutdoors, LimitInCity, LimitCanUseGuest, LimitCanUseAlly, LimitCanUseOwner,
		LimitWieldingWeaponType, LimitHasItem:
		return true
	}
	return false
}

// Limitation is one precondition on an ability. Value parameterizes it
// (a weapon type, a damage type, an item vnum); Expr is only used by
// LimitExpression.
type Limitation struct {
	Type  LimitationType `json:"type"`
	Value int            `json:"value,omitempty"`
	Expr  string         `json:"expr,omitempty"`
}
