package world

import (
	"strings"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

// Sex selects pronouns in rendered messages
type Sex int

const (
	SexNeutral Sex = iota
	SexMale
	SexFemale
)

// CharacterFlags are innate character properties
type CharacterFlags uint32

const (
	CharAnimal CharacterFlags = 1 << iota
	CharInvulnerable
	CharVampire
	CharHuman
	CharAggressive
	CharHidden
	CharLight
)

// Has reports whether every bit in other is set
func (f CharacterFlags) Has(other CharacterFlags) bool { return f&other == other && other != 0 }

// Character is a player or NPC in the world
type Character struct {
	ID       string
	TempID   int
	Name     string
	Keywords []string
	Sex      Sex
	IsNPC    bool
	Vnum     int // prototype number for NPCs

	Level    int
	Role     ability.Role
	Traits   map[ability.Trait]int
	Pools    [ability.NumPools]PoolResource
	Position ability.Position
	Flags    CharacterFlags

	Immunities ability.ImmunityFlags
	Abilities  map[ability.ID]bool

	Room     *Room
	Home     *Room
	Fighting *Character
	Empire   *Empire
	GroupID  string
	Master   *Character

	Inventory []*Object
	Equipment []*Object

	Cooldowns map[int]time.Time
	Effects   *effects.Manager
}

// NewCharacter creates a character with empty collections
func NewCharacter(id, name string, level int) *Character {
	return &Character{
		ID:        id,
		Name:      name,
		Keywords:  strings.Fields(strings.ToLower(name)),
		Level:     level,
		Position:  ability.PositionStanding,
		Traits:    make(map[ability.Trait]int),
		Abilities: make(map[ability.ID]bool),
		Cooldowns: make(map[int]time.Time),
		Effects:   effects.NewManager(),
	}
}

// Owns reports whether the character has learned an ability
func (c *Character) Owns(id ability.ID) bool {
	return c.Abilities[id]
}

// Grant teaches an ability
func (c *Character) Grant(ids ...ability.ID) {
	for _, id := range ids {
		c.Abilities[id] = true
	}
}

// Revoke forgets an ability
func (c *Character) Revoke(id ability.ID) {
	delete(c.Abilities, id)
}

// Pool returns a resource pool by kind
func (c *Character) Pool(p ability.Pool) *PoolResource {
	return &c.Pools[p]
}

// SetPool sets a pool to full at max
func (c *Character) SetPool(p ability.Pool, max int) {
	c.Pools[p] = PoolResource{Current: max, Max: max}
}

// TraitValue is the trait including active modifiers
func (c *Character) TraitValue(t ability.Trait) int {
	value := c.Traits[t]
	if loc, ok := traitApply[t]; ok {
		value += c.Effects.ModifierTotal(loc)
	}
	return value
}

var traitApply = map[ability.Trait]ability.ApplyLocation{
	ability.TraitStrength:     ability.ApplyStrength,
	ability.TraitDexterity:    ability.ApplyDexterity,
	ability.TraitCharisma:     ability.ApplyCharisma,
	ability.TraitIntelligence: ability.ApplyIntelligence,
	ability.TraitWits:         ability.ApplyWits,
}

// IsDead reports whether the character has died
func (c *Character) IsDead() bool {
	return c.Position == ability.PositionDead
}

// InCombat reports whether the character is fighting someone
func (c *Character) InCombat() bool {
	return c.Fighting != nil
}

// Has reports whether the character has an innate flag
func (c *Character) Has(flag CharacterFlags) bool {
	return c.Flags.Has(flag)
}

// Affected reports whether an active effect grants an affect bit
func (c *Character) Affected(flag ability.AffectFlags) bool {
	return c.Effects.Affects().Any(flag)
}

// IsHidden covers both innate hiding and hide effects
func (c *Character) IsHidden() bool {
	return c.Has(CharHidden) || c.Affected(ability.AffectHide)
}

// Matches reports whether a keyword abbreviates one of the character's names
func (c *Character) Matches(word string) bool {
	return matchKeywords(c.Keywords, word)
}

// IsAlly reports whether other is on the character's side
func (c *Character) IsAlly(other *Character) bool {
	if other == nil {
		return false
	}
	if other == c {
		return true
	}
	if c.GroupID != "" && c.GroupID == other.GroupID {
		return true
	}
	if other.Master == c || c.Master == other {
		return true
	}
	if c.Empire != nil && other.Empire != nil {
		return c.Empire == other.Empire || c.Empire.AlliedWith(other.Empire)
	}
	return false
}

// IsEnemy reports whether other is hostile to the character
func (c *Character) IsEnemy(other *Character) bool {
	if other == nil || other == c || c.IsAlly(other) {
		return false
	}
	if c.Fighting == other || other.Fighting == c {
		return true
	}
	if other.IsNPC && other.Has(CharAggressive) && !c.IsNPC {
		return true
	}
	if c.IsNPC && c.Has(CharAggressive) && !other.IsNPC {
		return true
	}
	return c.Empire != nil && other.Empire != nil && c.Empire.AtWarWith(other.Empire)
}

// CooldownRemaining returns how long until a cooldown expires
func (c *Character) CooldownRemaining(id int, now time.Time) time.Duration {
	if id == 0 {
		return 0
	}
	until, ok := c.Cooldowns[id]
	if !ok || !until.After(now) {
		return 0
	}
	return until.Sub(now)
}

// SetCooldown starts a cooldown that expires at until
func (c *Character) SetCooldown(id int, until time.Time) {
	if id == 0 {
		return
	}
	c.Cooldowns[id] = until
}

// ClearCooldown lifts a cooldown
func (c *Character) ClearCooldown(id int) {
	delete(c.Cooldowns, id)
}

// Carrying returns the first carried or equipped object with a vnum
func (c *Character) Carrying(vnum int) *Object {
	for _, obj := range c.Inventory {
		if obj.Vnum == vnum {
			return obj
		}
	}
	for _, obj := range c.Equipment {
		if obj.Vnum == vnum {
			return obj
		}
	}
	return nil
}

// CountCarried counts inventory objects with a vnum
func (c *Character) CountCarried(vnum int) int {
	count := 0
	for _, obj := range c.Inventory {
		if obj.Vnum == vnum {
			count++
		}
	}
	return count
}

// Wielded returns the equipped weapon, if any
func (c *Character) Wielded() *Object {
	for _, obj := range c.Equipment {
		if obj.WeaponType != 0 {
			return obj
		}
	}
	return nil
}

// HasLight reports whether the character carries a light source
func (c *Character) HasLight() bool {
	if c.Has(CharLight) {
		return true
	}
	for _, obj := range c.Equipment {
		if obj.Light {
			return true
		}
	}
	return false
}

// CanCarryMore reports whether n more objects fit in the inventory
func (c *Character) CanCarryMore(n int) bool {
	return len(c.Inventory)+n <= MaxInventory
}

// MaxInventory is how many objects a character can carry
const MaxInventory = 50

func matchKeywords(keywords []string, word string) bool {
	word = strings.ToLower(word)
	if word == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.HasPrefix(strings.ToLower(kw), word) {
			return true
		}
	}
	return false
}
