package ability

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Authored data uses names rather than numbers for every enum and bitmask.
// These helpers back the MarshalJSON/UnmarshalJSON methods of each newtype.

func enumName(v int, names []string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

func parseEnum(s string, names []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}

func marshalEnum(v int, names []string) ([]byte, error) {
	return json.Marshal(enumName(v, names))
}

// unmarshalEnum accepts either a name or a raw number
func unmarshalEnum(data []byte, names []string) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return parseEnum(s, names)
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("expected name or number, got %s", string(data))
	}
	return n, nil
}

func bitList(v uint64, names []string) []string {
	out := []string{}
	for i, name := range names {
		if v&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func marshalBits(v uint64, names []string) ([]byte, error) {
	return json.Marshal(bitList(v, names))
}

// unmarshalBits accepts a list of names or a raw number
func unmarshalBits(data []byte, names []string) (uint64, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		var v uint64
		for _, s := range list {
			i, err := parseEnum(s, names)
			if err != nil {
				return 0, err
			}
			v |= 1 << uint(i)
		}
		return v, nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("expected list of names or number, got %s", string(data))
	}
	return n, nil
}

// EnumNames lists the authored names of every named enum, keyed by type name
func EnumNames() map[string][]string {
	return map[string][]string{
		"ApplyLocation":  applyNames,
		"DamageType":     damageTypeNames,
		"DataKind":       dataKindNames,
		"Difficulty":     difficultyNames,
		"HookTrigger":    hookNames,
		"LimitationType": limitationNames,
		"MessageSlot":    slotNames,
		"Pool":           poolNames,
		"Position":       positionNames,
		"Role":           roleNames,
		"Trait":          traitNames,
		"Type":           typeNames,
	}
}

// BitmaskNames lists the authored bit names of every bitmask, keyed by type name
func BitmaskNames() map[string][]string {
	return map[string][]string{
		"AffectFlags":   affectNames,
		"Flags":         flagNames,
		"ImmunityFlags": immunityNames,
		"TargetFlags":   targetNames,
	}
}
