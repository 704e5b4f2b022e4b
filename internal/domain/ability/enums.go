package ability

// Position is how alert a character is; higher is more capable
type Position int

const (
	PositionDead Position = iota
	PositionSleeping
	PositionResting
	PositionSitting
	PositionFighting
	PositionStanding
)

var positionNames = []string{"dead", "sleeping", "resting", "sitting", "fighting", "standing"}

func (p Position) String() string { return enumName(int(p), positionNames) }

func (p Position) MarshalJSON() ([]byte, error) { return marshalEnum(int(p), positionNames) }

func (p *Position) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, positionNames)
	if err != nil {
		return err
	}
	*p = Position(v)
	return nil
}

// Role is a combat role a character may choose
type Role int

const (
	RoleNone Role = iota
	RoleTank
	RoleMelee
	RoleCaster
	RoleHealer
	RoleSolo
)

var roleNames = []string{"none", "tank", "melee", "caster", "healer", "solo"}

func (r Role) String() string { return enumName(int(r), roleNames) }

func (r Role) MarshalJSON() ([]byte, error) { return marshalEnum(int(r), roleNames) }

func (r *Role) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, roleNames)
	if err != nil {
		return err
	}
	*r = Role(v)
	return nil
}

// Trait is a character attribute an ability can be linked to
type Trait int

const (
	TraitNone Trait = iota
	TraitStrength
	TraitDexterity
	TraitCharisma
	TraitGreatness
	TraitIntelligence
	TraitWits
)

var traitNames = []string{"none", "strength", "dexterity", "charisma", "greatness", "intelligence", "wits"}

func (t Trait) String() string { return enumName(int(t), traitNames) }

func (t Trait) MarshalJSON() ([]byte, error) { return marshalEnum(int(t), traitNames) }

func (t *Trait) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, traitNames)
	if err != nil {
		return err
	}
	*t = Trait(v)
	return nil
}

// TraitMax is the normalizing maximum for a trait. Traits with no meaningful
// maximum report 0.
func TraitMax(t Trait) int {
	switch t {
	case TraitStrength, TraitDexterity, TraitCharisma, TraitIntelligence, TraitWits:
		return 10
	}
	return 0
}

// Pool is a spendable character resource
type Pool int

const (
	PoolHealth Pool = iota
	PoolMove
	PoolMana
	PoolBlood

	NumPools
)

var poolNames = []string{"health", "move", "mana", "blood"}

func (p Pool) String() string { return enumName(int(p), poolNames) }

func (p Pool) MarshalJSON() ([]byte, error) { return marshalEnum(int(p), poolNames) }

func (p *Pool) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, poolNames)
	if err != nil {
		return err
	}
	*p = Pool(v)
	return nil
}

// ReservedMinimum is the floor a charge cannot take a pool below.
// Health and blood keep the character alive.
func (p Pool) ReservedMinimum() int {
	switch p {
	case PoolHealth, PoolBlood:
		return 1
	}
	return 0
}

// Difficulty is the skill check an ability makes when used
type Difficulty int

const (
	DifficultyTrivial Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
	DifficultyRare
)

var difficultyNames = []string{"trivial", "easy", "medium", "hard", "rare"}

func (d Difficulty) String() string { return enumName(int(d), difficultyNames) }

// SuccessChance is the percent chance a character of the given level passes
func (d Difficulty) SuccessChance(level int) int {
	var bonus int
	switch d {
	case DifficultyTrivial:
		return 100
	case DifficultyEasy:
		bonus = 50
	case DifficultyMedium:
		bonus = 25
	case DifficultyHard:
		bonus = 0
	case DifficultyRare:
		bonus = -25
	}
	chance := level + bonus
	if chance < 5 {
		chance = 5
	}
	if chance > 100 {
		chance = 100
	}
	return chance
}

func (d Difficulty) MarshalJSON() ([]byte, error) { return marshalEnum(int(d), difficultyNames) }

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, difficultyNames)
	if err != nil {
		return err
	}
	*d = Difficulty(v)
	return nil
}

// DamageType is the kind of damage an attack, damage or DOT type deals
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageMagical
	DamageFire
	DamagePoison
	DamageDirect
)

var damageTypeNames = []string{"physical", "magical", "fire", "poison", "direct"}

func (d DamageType) String() string { return enumName(int(d), damageTypeNames) }

func (d DamageType) MarshalJSON() ([]byte, error) { return marshalEnum(int(d), damageTypeNames) }

func (d *DamageType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, damageTypeNames)
	if err != nil {
		return err
	}
	*d = DamageType(v)
	return nil
}

// Direction is a compass exit
type Direction int

const (
	DirNorth Direction = iota
	DirEast
	DirSouth
	DirWest
	DirUp
	DirDown

	NumDirections
)

var directionNames = []string{"north", "east", "south", "west", "up", "down"}

func (d Direction) String() string { return enumName(int(d), directionNames) }

// ParseDirection matches a full or abbreviated direction word
func ParseDirection(s string) (Direction, bool) {
	if s == "" {
		return 0, false
	}
	for i, name := range directionNames {
		if len(s) <= len(name) && name[:len(s)] == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	switch d {
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirEast:
		return DirWest
	case DirWest:
		return DirEast
	case DirUp:
		return DirDown
	}
	return DirUp
}

// ApplyLocation is the stat an apply modifies
type ApplyLocation int

const (
	ApplyNone ApplyLocation = iota
	ApplyStrength
	ApplyDexterity
	ApplyCharisma
	ApplyIntelligence
	ApplyWits
	ApplyToHit
	ApplyDodge
	ApplyBlock
	ApplySoak
	ApplyBonusPhysical
	ApplyBonusMagical
	ApplyBonusHealing
	ApplyMaxHealth
	ApplyMaxMove
	ApplyMaxMana
	ApplyHealthRegen
	ApplyMoveRegen
	ApplyManaRegen
)

var applyNames = []string{
	"none",
	"strength",
	"dexterity",
	"charisma",
	"intelligence",
	"wits",
	"to-hit",
	"dodge",
	"block",
	"soak",
	"bonus-physical",
	"bonus-magical",
	"bonus-healing",
	"max-health",
	"max-move",
	"max-mana",
	"health-regen",
	"move-regen",
	"mana-regen",
}

func (a ApplyLocation) String() string { return enumName(int(a), applyNames) }

func (a ApplyLocation) MarshalJSON() ([]byte, error) { return marshalEnum(int(a), applyNames) }

func (a *ApplyLocation) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, applyNames)
	if err != nil {
		return err
	}
	*a = ApplyLocation(v)
	return nil
}
