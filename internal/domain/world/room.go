package world

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

// RoomFlags describe a room's environment
type RoomFlags uint32

const (
	RoomDark RoomFlags = 1 << iota
	RoomPeaceful
	RoomBarrier
	RoomIndoors
	RoomRoad
	RoomNoTeleport
)

// Has reports whether every bit in other is set
func (f RoomFlags) Has(other RoomFlags) bool { return f&other == other && other != 0 }

// Room is one location on the map
type Room struct {
	Vnum  int
	Name  string
	X, Y  int
	Flags RoomFlags
	Owner *Empire
	City  string

	// People is kept in arrival order; multi-target abilities walk it in order
	People   []*Character
	Contents []*Object
	Vehicles []*Vehicle
	Exits    [ability.NumDirections]*Room

	Effects *effects.Manager

	// Building is nil for open ground
	Building *PoolResource
}

// NewRoom creates a room
func NewRoom(vnum int, name string) *Room {
	return &Room{
		Vnum:    vnum,
		Name:    name,
		Effects: effects.NewManager(),
	}
}

// Has reports whether the room has a flag
func (r *Room) Has(flag RoomFlags) bool {
	return r.Flags.Has(flag)
}

// Exit returns the room in a direction
func (r *Room) Exit(dir ability.Direction) *Room {
	if dir < 0 || dir >= ability.NumDirections {
		return nil
	}
	return r.Exits[dir]
}

// Link joins two rooms both ways
func (r *Room) Link(dir ability.Direction, to *Room) {
	r.Exits[dir] = to
	to.Exits[dir.Reverse()] = r
}

// IsLit reports whether characters can see
func (r *Room) IsLit(daylight bool) bool {
	if !r.Has(RoomDark) && (daylight || r.Has(RoomIndoors) || r.City != "") {
		return true
	}
	for _, ch := range r.People {
		if ch.HasLight() {
			return true
		}
	}
	return false
}

// Sunlit reports whether direct sun reaches the room
func (r *Room) Sunlit(daylight bool) bool {
	return daylight && !r.Has(RoomIndoors) && !r.Has(RoomDark)
}

func (r *Room) addPerson(ch *Character) {
	r.People = append(r.People, ch)
}

func (r *Room) removePerson(ch *Character) {
	for i, p := range r.People {
		if p == ch {
			r.People = append(r.People[:i], r.People[i+1:]...)
			return
		}
	}
}

func (r *Room) removeObject(obj *Object) bool {
	for i, o := range r.Contents {
		if o == obj {
			r.Contents = append(r.Contents[:i], r.Contents[i+1:]...)
			return true
		}
	}
	return false
}
