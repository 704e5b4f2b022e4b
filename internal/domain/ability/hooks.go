package ability

// HookTrigger is a game event that can auto-fire an owned ability
type HookTrigger int

const (
	HookAbility HookTrigger = iota
	HookAttack
	HookMeleeHit
	HookRangedHit
	HookDamageType
	HookKill
	HookDying
	HookRespawn
)

var hookNames = []string{
	"ability",
	"attack",
	"melee-hit",
	"ranged-hit",
	"damage-type",
	"kill",
	"dying",
	"respawn",
}

func (h HookTrigger) String() string { return enumName(int(h), hookNames) }

func (h HookTrigger) MarshalJSON() ([]byte, error) { return marshalEnum(int(h), hookNames) }

func (h *HookTrigger) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, hookNames)
	if err != nil {
		return err
	}
	*h = HookTrigger(v)
	return nil
}

// AnyValue matches every event value for a hook
const AnyValue = -1

// Hook fires its owning ability when Trigger happens with a matching Value.
// Percent is the chance in 1..100.
type Hook struct {
	Trigger HookTrigger `json:"trigger"`
	Percent int         `json:"percent"`
	Value   int         `json:"value"`
	Misc    int         `json:"misc,omitempty"`
}

// Matches reports whether this hook listens for the event
func (h Hook) Matches(trigger HookTrigger, value int) bool {
	if h.Trigger != trigger {
		return false
	}
	return h.Value == AnyValue || h.Value == value
}
