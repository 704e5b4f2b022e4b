package engine

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// defaultRange is how many rooms away "closest" searches without range data
const defaultRange = 3

// ResolveTargets turns the argument text into a target. An empty argument
// falls back to the ability's default target. A zero target mask always
// resolves to an empty set.
func (e *Engine) ResolveTargets(actor *world.Character, def *ability.Definition, arg string) (TargetSet, Reason) {
	mask := def.Targets
	if mask == 0 {
		return TargetSet{}, ReasonNone
	}

	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return e.defaultTarget(actor, def)
	}

	word, nth, reason := splitOrdinal(arg)
	if reason != ReasonNone {
		return TargetSet{}, reason
	}

	if mask.SelfOnly() {
		if isSelfWord(word) || actor.Matches(word) {
			return TargetSet{Char: actor}, ReasonNone
		}
		return TargetSet{}, ReasonSelfOnly
	}

	if nth == 1 {
		if m, ok := multiKeyword(word, mask); ok {
			return TargetSet{Multi: m}, ReasonNone
		}
	}

	if mask.Any(ability.TargetAnyChar) {
		if ch := e.findCharacter(actor, def, word, nth); ch != nil {
			return TargetSet{Char: ch}, ReasonNone
		}
	}
	if mask.Any(ability.TargetAnyObj) {
		if obj := e.findObject(actor, mask, word, nth); obj != nil {
			return TargetSet{Obj: obj}, ReasonNone
		}
	}
	if mask.Any(ability.TargetAnyVehicle) {
		if v := e.findVehicle(actor, mask, word, nth); v != nil {
			return TargetSet{Vehicle: v}, ReasonNone
		}
	}
	if mask.Any(ability.TargetAnyRoom) {
		if t, ok := e.findRoom(actor, mask, arg); ok {
			return t, ReasonNone
		}
	}
	return TargetSet{}, ReasonNotFound
}

func (e *Engine) defaultTarget(actor *world.Character, def *ability.Definition) (TargetSet, Reason) {
	mask := def.Targets

	if mask.SelfOnly() || (mask.Any(ability.TargetSelf) && !def.IsViolent()) {
		return TargetSet{Char: actor}, ReasonNone
	}
	for _, m := range ability.MultiCategories() {
		if mask.Any(m.Flag()) {
			return TargetSet{Multi: m}, ReasonNone
		}
	}
	if mask.Any(ability.TargetRoomHere) && actor.Room != nil {
		return TargetSet{Room: actor.Room}, ReasonNone
	}
	if mask.Any(ability.TargetRoomHome) && actor.Home != nil {
		return TargetSet{Room: actor.Home}, ReasonNone
	}
	if actor.Fighting != nil {
		if mask.Any(ability.TargetFightVictim) {
			return TargetSet{Char: actor.Fighting}, ReasonNone
		}
		if mask.Any(ability.TargetFightSelf) {
			return TargetSet{Char: actor}, ReasonNone
		}
	}
	return TargetSet{}, ReasonNoTarget
}

// splitOrdinal strips an "N." prefix selecting the Nth match
func splitOrdinal(arg string) (string, int, Reason) {
	dot := strings.Index(arg, ".")
	if dot <= 0 {
		return arg, 1, ReasonNone
	}
	n, err := strconv.Atoi(arg[:dot])
	if err != nil {
		return arg, 1, ReasonNone
	}
	word := arg[dot+1:]
	if n < 1 || word == "" {
		return "", 0, ReasonAmbiguous
	}
	return word, n, ReasonNone
}

func isSelfWord(word string) bool {
	return word == "self" || word == "me"
}

func multiKeyword(word string, mask ability.TargetFlags) (ability.MultiCategory, bool) {
	var m ability.MultiCategory
	switch word {
	case "group":
		m = ability.MultiGroup
	case "allies":
		m = ability.MultiAllies
	case "enemies":
		m = ability.MultiEnemies
	case "all", "room":
		m = ability.MultiAny
	default:
		return ability.MultiNone, false
	}
	return m, mask.Any(m.Flag())
}

// canSee reports whether actor can pick ch out by name
func canSee(actor, ch *world.Character) bool {
	if ch == actor {
		return true
	}
	if actor.Affected(ability.AffectBlind) {
		return false
	}
	return !ch.IsHidden() || actor.Affected(ability.AffectSenseHide)
}

func (e *Engine) findCharacter(actor *world.Character, def *ability.Definition, word string, nth int) *world.Character {
	mask := def.Targets

	if isSelfWord(word) && nth == 1 {
		if mask.Any(ability.TargetSelf | ability.TargetFightSelf | ability.TargetCharRoom) {
			return actor
		}
	}

	if mask.Any(ability.TargetCharRoom|ability.TargetFightVictim) && actor.Room != nil {
		if ch := nthCharacter(actor, actor.Room.People, word, nth); ch != nil {
			return ch
		}
	}

	if mask.Any(ability.TargetCharClosest) && actor.Room != nil {
		limit := defaultRange
		if r, ok := def.FirstData(ability.DataRange); ok {
			limit = r.Vnum
		}
		var nearby []*world.Character
		for _, room := range roomsWithin(actor.Room, limit) {
			nearby = append(nearby, room.People...)
		}
		if ch := nthCharacter(actor, nearby, word, nth); ch != nil {
			return ch
		}
	}

	if mask.Any(ability.TargetCharWorld) {
		if ch := nthCharacter(actor, e.world.Characters, word, nth); ch != nil {
			return ch
		}
	}
	return nil
}

func nthCharacter(actor *world.Character, people []*world.Character, word string, nth int) *world.Character {
	count := 0
	for _, ch := range people {
		if !canSee(actor, ch) || !ch.Matches(word) {
			continue
		}
		count++
		if count == nth {
			return ch
		}
	}
	return nil
}

func (e *Engine) findObject(actor *world.Character, mask ability.TargetFlags, word string, nth int) *world.Object {
	var scopes [][]*world.Object
	if mask.Any(ability.TargetObjInventory) {
		scopes = append(scopes, actor.Inventory)
	}
	if mask.Any(ability.TargetObjEquipped) {
		scopes = append(scopes, actor.Equipment)
	}
	if mask.Any(ability.TargetObjRoom) && actor.Room != nil {
		scopes = append(scopes, actor.Room.Contents)
	}
	if mask.Any(ability.TargetObjWorld) {
		scopes = append(scopes, e.world.Objects)
	}

	for _, objs := range scopes {
		count := 0
		for _, obj := range objs {
			if !obj.Matches(word) {
				continue
			}
			count++
			if count == nth {
				return obj
			}
		}
	}
	return nil
}

func (e *Engine) findVehicle(actor *world.Character, mask ability.TargetFlags, word string, nth int) *world.Vehicle {
	var scopes [][]*world.Vehicle
	if mask.Any(ability.TargetVehicleRoom) && actor.Room != nil {
		scopes = append(scopes, actor.Room.Vehicles)
	}
	if mask.Any(ability.TargetVehicleWorld) {
		scopes = append(scopes, e.world.Vehicles)
	}

	for _, vehicles := range scopes {
		count := 0
		for _, v := range vehicles {
			if !v.Matches(word) {
				continue
			}
			count++
			if count == nth {
				return v
			}
		}
	}
	return nil
}

func (e *Engine) findRoom(actor *world.Character, mask ability.TargetFlags, arg string) (TargetSet, bool) {
	here := actor.Room

	switch arg {
	case "room", "here":
		if mask.Any(ability.TargetRoomHere) && here != nil {
			return TargetSet{Room: here}, true
		}
	case "home":
		if mask.Any(ability.TargetRoomHome) && actor.Home != nil {
			return TargetSet{Room: actor.Home}, true
		}
	case "exit", "out":
		if mask.Any(ability.TargetRoomExit) && here != nil {
			for dir := ability.Direction(0); dir < ability.NumDirections; dir++ {
				if to := here.Exit(dir); to != nil {
					return TargetSet{Room: to, Dir: dir, HasDir: true}, true
				}
			}
		}
	}

	if mask.Any(ability.TargetRoomDirection) && here != nil {
		if dir, ok := ability.ParseDirection(arg); ok {
			if to := here.Exit(dir); to != nil {
				return TargetSet{Room: to, Dir: dir, HasDir: true}, true
			}
		}
	}

	if mask.Any(ability.TargetRoomCoords) {
		if x, y, ok := parseCoords(arg); ok {
			if room := e.world.RoomAt(x, y); room != nil {
				return TargetSet{Room: room}, true
			}
		}
	}

	if mask.Any(ability.TargetRoomCity) {
		if room := e.world.City(arg); room != nil {
			return TargetSet{Room: room}, true
		}
	}
	return TargetSet{}, false
}

// parseCoords accepts "x,y", "x y" and "(x, y)"
func parseCoords(arg string) (int, int, bool) {
	arg = strings.Trim(arg, "()")
	parts := strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}

// roomsWithin lists rooms reachable through exits in breadth-first order,
// starting with from itself
func roomsWithin(from *world.Room, limit int) []*world.Room {
	seen := map[*world.Room]bool{from: true}
	out := []*world.Room{from}
	frontier := []*world.Room{from}
	for depth := 0; depth < limit && len(frontier) > 0; depth++ {
		var next []*world.Room
		for _, room := range frontier {
			for _, to := range room.Exits {
				if to == nil || seen[to] {
					continue
				}
				seen[to] = true
				out = append(out, to)
				next = append(next, to)
			}
		}
		frontier = next
	}
	return out
}

// roomDistance is the exit count between two rooms, or -1 beyond limit
func roomDistance(from, to *world.Room, limit int) int {
	if from == to {
		return 0
	}
	seen := map[*world.Room]bool{from: true}
	frontier := []*world.Room{from}
	for depth := 1; depth <= limit && len(frontier) > 0; depth++ {
		var next []*world.Room
		for _, room := range frontier {
			for _, r := range room.Exits {
				if r == nil || seen[r] {
					continue
				}
				if r == to {
					return depth
				}
				seen[r] = true
				next = append(next, r)
			}
		}
		frontier = next
	}
	return -1
}
