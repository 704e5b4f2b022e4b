package ability

// Flags are behavior switches on an ability definition
type Flags uint64

const (
	FlagViolent Flags = 1 << iota
	FlagOverTime
	FlagRepeatOverTime
	FlagStopOnMiss
	FlagNoEngage
	FlagNotInCombat
	FlagOnlyInCombat
	FlagNoAnimal
	FlagNoInvulnerable
	FlagNeedsLight
	FlagSunSensitive
	FlagSpoken
	FlagRanged
	FlagMelee
	FlagCumulativeDuration
	FlagSolo
	FlagNoMsgOnSuccess
)

var flagNames = []string{
	"violent",
	"over-time",
	"repeat-over-time",
	"stop-on-miss",
	"no-engage",
	"not-in-combat",
	"only-in-combat",
	"no-animal",
	"no-invulnerable",
	"needs-light",
	"sun-sensitive",
	"spoken",
	"ranged",
	"melee",
	"cumulative-duration",
	"solo",
	"no-msg-on-success",
}

// Has reports whether every bit in other is set
func (f Flags) Has(other Flags) bool { return f&other == other && other != 0 }

func (f Flags) Names() []string { return bitList(uint64(f), flagNames) }

func (f Flags) MarshalJSON() ([]byte, error) { return marshalBits(uint64(f), flagNames) }

func (f *Flags) UnmarshalJSON(data []byte) error {
	v, err := unmarshalBits(data, flagNames)
	if err != nil {
		return err
	}
	*f = Flags(v)
	return nil
}

// AffectFlags are status bits an ability applies for a duration.
// They are a separate mask from Flags and ImmunityFlags on purpose.
type AffectFlags uint64

const (
	AffectBlind AffectFlags = 1 << iota
	AffectSlow
	AffectHaste
	AffectSilence
	AffectHide
	AffectStun
	AffectEntangle
	AffectDistracted
	AffectSenseHide
	AffectNoAttack
	AffectImmuneDamage
)

var affectNames = []string{
	"blind",
	"slow",
	"haste",
	"silence",
	"hide",
	"stun",
	"entangle",
	"distracted",
	"sense-hide",
	"no-attack",
	"immune-damage",
}

// Has reports whether every bit in other is set
func (f AffectFlags) Has(other AffectFlags) bool { return f&other == other && other != 0 }

// Any reports whether any bit in other is set
func (f AffectFlags) Any(other AffectFlags) bool { return f&other != 0 }

func (f AffectFlags) Names() []string { return bitList(uint64(f), affectNames) }

func (f AffectFlags) MarshalJSON() ([]byte, error) { return marshalBits(uint64(f), affectNames) }

func (f *AffectFlags) UnmarshalJSON(data []byte) error {
	v, err := unmarshalBits(data, affectNames)
	if err != nil {
		return err
	}
	*f = AffectFlags(v)
	return nil
}

// ImmunityFlags describe what a target shrugs off
type ImmunityFlags uint64

const (
	ImmunePhysical ImmunityFlags = 1 << iota
	ImmuneMagical
	ImmuneFire
	ImmunePoison
	ImmuneStun
	ImmuneSlow
	ImmuneBlind
	ImmuneDistract
	ImmuneMovement
)

var immunityNames = []string{
	"physical",
	"magical",
	"fire",
	"poison",
	"stun",
	"slow",
	"blind",
	"distract",
	"movement",
}

// Any reports whether any bit in other is set
func (f ImmunityFlags) Any(other ImmunityFlags) bool { return f&other != 0 }

func (f ImmunityFlags) MarshalJSON() ([]byte, error) { return marshalBits(uint64(f), immunityNames) }

func (f *ImmunityFlags) UnmarshalJSON(data []byte) error {
	v, err := unmarshalBits(data, immunityNames)
	if err != nil {
		return err
	}
	*f = ImmunityFlags(v)
	return nil
}
