package world

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// HasResources reports whether every listed consumable is in the inventory
func (w *World) HasResources(ch *Character, costs []ability.ResourceCost) bool {
	need := make(map[int]int)
	for _, cost := range costs {
		need[cost.Vnum] += cost.Amount
	}
	for vnum, amount := range need {
		if ch.CountCarried(vnum) < amount {
			return false
		}
	}
	return true
}

// ExtractResources removes every listed consumable from the inventory. It
// removes nothing and returns false unless all of them are present.
func (w *World) ExtractResources(ch *Character, costs []ability.ResourceCost) bool {
	if !w.HasResources(ch, costs) {
		return false
	}
	for _, cost := range costs {
		for i := 0; i < cost.Amount; i++ {
			if obj := firstCarried(ch, cost.Vnum); obj != nil {
				w.ExtractObject(obj)
			}
		}
	}
	return true
}

// GiveResources loads and hands over the listed consumables. Prototypes are
// checked before anything is created.
func (w *World) GiveResources(ch *Character, costs []ability.ResourceCost) error {
	for _, cost := range costs {
		if _, ok := w.ObjectProtos[cost.Vnum]; !ok && cost.Amount > 0 {
			return abilerr.NotFoundf("no object prototype %d", cost.Vnum)
		}
	}
	for _, cost := range costs {
		for i := 0; i < cost.Amount; i++ {
			obj, err := w.LoadObject(cost.Vnum)
			if err != nil {
				return err
			}
			w.GiveObject(ch, obj)
		}
	}
	return nil
}

func firstCarried(ch *Character, vnum int) *Object {
	for _, obj := range ch.Inventory {
		if obj.Vnum == vnum {
			return obj
		}
	}
	return nil
}
