package ability

import (
	"encoding/json"

	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// ID identifies an ability definition
type ID int

// NoAbility marks an unset ability reference
const NoAbility ID = -1

// Definition is an authored ability. It is shared between every actor that
// owns it and is read-only while abilities are being resolved.
type Definition struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Command string `json:"command,omitempty"`
	Flags   Flags  `json:"flags,omitempty"`

	// Types is the weighted type list. TypeFlags is always its union and is
	// recomputed on every change; it is never authored directly.
	Types     []WeightedType `json:"types"`
	TypeFlags TypeFlags      `json:"-"`

	Targets      TargetFlags `json:"targets,omitempty"`
	MinPosition  Position    `json:"min_position,omitempty"`
	RoleRequired Role        `json:"role,omitempty"`
	Difficulty   Difficulty  `json:"difficulty,omitempty"`

	BaseCost          int     `json:"base_cost,omitempty"`
	CostPerScalePoint float64 `json:"cost_per_scale_point,omitempty"`
	CostPerAmount     float64 `json:"cost_per_amount,omitempty"`
	CostPerTarget     float64 `json:"cost_per_target,omitempty"`
	CostPool          Pool    `json:"cost_pool,omitempty"`
	CooldownID        int     `json:"cooldown_id,omitempty"`
	CooldownSeconds   int     `json:"cooldown_seconds,omitempty"`

	ScaleMultiplier float64 `json:"scale_multiplier,omitempty"`
	LinkedTrait     Trait   `json:"linked_trait,omitempty"`
	MasteryAbility  ID      `json:"mastery_ability,omitempty"`

	Applies       []Apply        `json:"applies,omitempty"`
	Affects       AffectFlags    `json:"affects,omitempty"`
	ShortDuration int            `json:"short_duration,omitempty"`
	LongDuration  int            `json:"long_duration,omitempty"`
	AttackType    int            `json:"attack_type,omitempty"`
	DamageType    DamageType     `json:"damage_type,omitempty"`
	MaxStacks     int            `json:"max_stacks,omitempty"`
	Immunities    ImmunityFlags  `json:"immunities,omitempty"`
	RequiresTool  int            `json:"requires_tool,omitempty"`
	ResourceCost  []ResourceCost `json:"resource_cost,omitempty"`

	Data        []Data          `json:"data,omitempty"`
	Hooks       []Hook          `json:"hooks,omitempty"`
	Limitations []Limitation    `json:"limitations,omitempty"`
	Messages    []CustomMessage `json:"messages,omitempty"`
}

// UnmarshalJSON decodes a definition and restores the type flag invariant
func (d *Definition) UnmarshalJSON(data []byte) error {
	type plain Definition
	aux := plain{MasteryAbility: NoAbility}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Definition(aux)
	d.RecomputeTypeFlags()
	return nil
}

// RecomputeTypeFlags rebuilds TypeFlags from the weighted list
func (d *Definition) RecomputeTypeFlags() {
	var flags TypeFlags
	for _, wt := range d.Types {
		flags |= wt.Type.Flag()
	}
	d.TypeFlags = flags
}

// SetTypes replaces the weighted type list
func (d *Definition) SetTypes(types []WeightedType) {
	d.Types = append([]WeightedType(nil), types...)
	d.RecomputeTypeFlags()
}

// AddType adds a type or raises the weight of an existing entry
func (d *Definition) AddType(t Type, weight int) {
	for i := range d.Types {
		if d.Types[i].Type == t {
			d.Types[i].Weight += weight
			d.RecomputeTypeFlags()
			return
		}
	}
	d.Types = append(d.Types, WeightedType{Type: t, Weight: weight})
	d.RecomputeTypeFlags()
}

// RemoveType drops every entry for a type
func (d *Definition) RemoveType(t Type) {
	kept := d.Types[:0]
	for _, wt := range d.Types {
		if wt.Type != t {
			kept = append(kept, wt)
		}
	}
	d.Types = kept
	d.RecomputeTypeFlags()
}

// HasType reports whether the ability has a type
func (d *Definition) HasType(t Type) bool {
	return d.TypeFlags&t.Flag() != 0
}

// TypeWeightShare is the fraction of scale points a type receives. Entries
// with no positive weight split evenly.
func (d *Definition) TypeWeightShare(t Type) float64 {
	if !d.HasType(t) {
		return 0
	}

	total, mine, count := 0, 0, 0
	for _, wt := range d.Types {
		count++
		if wt.Weight > 0 {
			total += wt.Weight
		}
		if wt.Type == t && wt.Weight > 0 {
			mine += wt.Weight
		}
	}
	if total == 0 {
		return 1.0 / float64(count)
	}
	return float64(mine) / float64(total)
}

// EffectiveScaleMultiplier treats an unset multiplier as 1.0
func (d *Definition) EffectiveScaleMultiplier() float64 {
	if d.ScaleMultiplier <= 0 {
		return 1.0
	}
	return d.ScaleMultiplier
}

// HasMastery reports whether a mastery ability is configured. Ability ids
// are positive; zero and NoAbility both mean none.
func (d *Definition) HasMastery() bool { return d.MasteryAbility > 0 }

// IsViolent reports whether the ability is hostile
func (d *Definition) IsViolent() bool { return d.Flags.Has(FlagViolent) }

// IsOverTime reports whether the ability spans several ticks
func (d *Definition) IsOverTime() bool { return d.Flags.Has(FlagOverTime) }

// DataOfKind returns every extension entry of a kind, in authored order
func (d *Definition) DataOfKind(kind DataKind) []Data {
	var out []Data
	for _, entry := range d.Data {
		if entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out
}

// FirstData returns the first extension entry of a kind
func (d *Definition) FirstData(kind DataKind) (Data, bool) {
	for _, entry := range d.Data {
		if entry.Kind == kind {
			return entry, true
		}
	}
	return Data{}, false
}

// SupersededBy lists the abilities that replace this one, most preferred first
func (d *Definition) SupersededBy() []ID {
	var out []ID
	for _, entry := range d.DataOfKind(DataSupersededBy) {
		out = append(out, ID(entry.Vnum))
	}
	return out
}

// Techs lists the player techs this ability grants
func (d *Definition) Techs() []Tech {
	var out []Tech
	for _, entry := range d.DataOfKind(DataPlayerTech) {
		out = append(out, Tech(entry.Vnum))
	}
	return out
}

// Message returns the custom message for a slot and position
func (d *Definition) Message(slot MessageSlot, position int) (string, bool) {
	for _, msg := range d.Messages {
		if msg.Slot == slot && msg.Position == position {
			return msg.Text, true
		}
	}
	return "", false
}

// HasTickMessage reports whether an over-time ability has a per-tick
// message at position
func (d *Definition) HasTickMessage(position int) bool {
	if _, ok := d.Message(MsgTickToChar, position); ok {
		return true
	}
	_, ok := d.Message(MsgTickToRoom, position)
	return ok
}

// Validate checks authored data for mistakes that make the ability unusable
func (d *Definition) Validate() error {
	if d.Name == "" {
		return d.invalid("ability %d has no name", d.ID)
	}
	if len(d.Types) == 0 {
		return d.invalid("ability %d (%s) has no types", d.ID, d.Name)
	}
	for _, wt := range d.Types {
		if wt.Type < 0 || wt.Type >= numTypes {
			return d.invalid("ability %d (%s) has unknown type %d", d.ID, d.Name, wt.Type)
		}
		if wt.Weight < 0 {
			return d.invalid("ability %d (%s) has negative weight for %s", d.ID, d.Name, wt.Type)
		}
	}
	if d.MaxStacks < 0 {
		return d.invalid("ability %d (%s) has negative max stacks", d.ID, d.Name)
	}
	if d.CooldownSeconds < 0 {
		return d.invalid("ability %d (%s) has negative cooldown", d.ID, d.Name)
	}
	for _, h := range d.Hooks {
		if h.Percent < 0 || h.Percent > 100 {
			return d.invalid("ability %d (%s) has hook chance %d outside 0-100", d.ID, d.Name, h.Percent)
		}
	}
	return nil
}

func (d *Definition) invalid(format string, args ...any) error {
	return abilerr.Validationf(format, args...).WithMeta("ability_id", int(d.ID))
}

// FileDefinitions is the on-disk shape of an ability data file
type FileDefinitions struct {
	Abilities []*Definition `json:"abilities"`
}
