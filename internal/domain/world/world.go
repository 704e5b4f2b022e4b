// Package world holds the in-memory game state abilities read and mutate.
// It is owned by the tick driver and is not safe for concurrent use.
package world

import (
	"strings"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/effects"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
)

// World is every character, room and object currently loaded
type World struct {
	Characters []*Character
	Rooms      map[int]*Room
	Objects    []*Object
	Vehicles   []*Vehicle
	Empires    map[string]*Empire

	ObjectProtos  map[int]ObjectProto
	MobProtos     map[int]MobProto
	VehicleProtos map[int]VehicleProto

	Daylight bool

	ids        uuid.Generator
	nextTempID int
}

// New creates an empty world that ids new things with gen
func New(gen uuid.Generator) *World {
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return &World{
		Rooms:         make(map[int]*Room),
		Empires:       make(map[string]*Empire),
		ObjectProtos:  make(map[int]ObjectProto),
		MobProtos:     make(map[int]MobProto),
		VehicleProtos: make(map[int]VehicleProto),
		ids:           gen,
	}
}

// AddRoom registers a room
func (w *World) AddRoom(room *Room) *Room {
	w.Rooms[room.Vnum] = room
	return room
}

// Room returns a room by vnum
func (w *World) Room(vnum int) *Room {
	return w.Rooms[vnum]
}

// RoomAt finds the room at map coordinates
func (w *World) RoomAt(x, y int) *Room {
	for _, room := range w.Rooms {
		if room.X == x && room.Y == y {
			return room
		}
	}
	return nil
}

// City finds the first room of a named city
func (w *World) City(name string) *Room {
	var found *Room
	for _, room := range w.Rooms {
		if room.City != "" && strings.EqualFold(room.City, name) {
			if found == nil || room.Vnum < found.Vnum {
				found = room
			}
		}
	}
	return found
}

// AddCharacter places a character in a room and gives it a temp id
func (w *World) AddCharacter(ch *Character, room *Room) *Character {
	if ch.ID == "" {
		ch.ID = w.ids.New()
	}
	if ch.Effects == nil {
		ch.Effects = effects.NewManager()
	}
	w.nextTempID++
	ch.TempID = w.nextTempID
	w.Characters = append(w.Characters, ch)
	if room != nil {
		w.MoveCharacter(ch, room)
	}
	return ch
}

// RemoveCharacter takes a character out of the world. It keeps its temp id
// so it can be found again if it returns.
func (w *World) RemoveCharacter(ch *Character) {
	if ch.Room != nil {
		ch.Room.removePerson(ch)
		ch.Room = nil
	}
	for i, c := range w.Characters {
		if c == ch {
			w.Characters = append(w.Characters[:i], w.Characters[i+1:]...)
			break
		}
	}
	for _, c := range w.Characters {
		if c.Fighting == ch {
			c.Fighting = nil
		}
	}
	ch.Fighting = nil
}

// ReturnCharacter puts a previously removed character back, keeping its
// temp id
func (w *World) ReturnCharacter(ch *Character, room *Room) {
	w.Characters = append(w.Characters, ch)
	w.MoveCharacter(ch, room)
}

// MoveCharacter moves a character to a room, ending any fight
func (w *World) MoveCharacter(ch *Character, to *Room) {
	if ch.Room == to {
		return
	}
	if ch.Room != nil {
		ch.Room.removePerson(ch)
	}
	ch.Room = to
	to.addPerson(ch)
	if ch.Fighting != nil && ch.Fighting.Room != to {
		ch.Fighting = nil
	}
}

// FindCharacter looks up a loaded character by id
func (w *World) FindCharacter(id string) *Character {
	for _, ch := range w.Characters {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// FindByTempID looks up a loaded character by temp id
func (w *World) FindByTempID(tempID int) *Character {
	if tempID == 0 {
		return nil
	}
	for _, ch := range w.Characters {
		if ch.TempID == tempID {
			return ch
		}
	}
	return nil
}

// FindObject looks up an object by id
func (w *World) FindObject(id string) *Object {
	for _, obj := range w.Objects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

// FindVehicle looks up a vehicle by id
func (w *World) FindVehicle(id string) *Vehicle {
	for _, v := range w.Vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// LoadObject creates an object from its prototype
func (w *World) LoadObject(vnum int) (*Object, error) {
	proto, ok := w.ObjectProtos[vnum]
	if !ok {
		return nil, abilerr.NotFoundf("no object prototype %d", vnum)
	}
	obj := &Object{
		ID:         w.ids.New(),
		Vnum:       vnum,
		Name:       proto.Name,
		Keywords:   proto.Keywords,
		WeaponType: proto.WeaponType,
		Light:      proto.Light,
	}
	w.Objects = append(w.Objects, obj)
	return obj, nil
}

// LoadMob creates an NPC from its prototype in a room
func (w *World) LoadMob(vnum int, room *Room) (*Character, error) {
	proto, ok := w.MobProtos[vnum]
	if !ok {
		return nil, abilerr.NotFoundf("no mob prototype %d", vnum)
	}
	mob := NewCharacter("", proto.Name, proto.Level)
	mob.IsNPC = true
	mob.Vnum = vnum
	mob.Flags = proto.Flags
	if len(proto.Keywords) > 0 {
		mob.Keywords = proto.Keywords
	}
	mob.SetPool(ability.PoolHealth, proto.Health)
	return w.AddCharacter(mob, room), nil
}

// LoadVehicle creates a vehicle from its prototype in a room
func (w *World) LoadVehicle(vnum int, room *Room) (*Vehicle, error) {
	proto, ok := w.VehicleProtos[vnum]
	if !ok {
		return nil, abilerr.NotFoundf("no vehicle prototype %d", vnum)
	}
	v := &Vehicle{
		ID:       w.ids.New(),
		Vnum:     vnum,
		Name:     proto.Name,
		Keywords: proto.Keywords,
		Room:     room,
		Health:   PoolResource{Current: proto.Health, Max: proto.Health},
	}
	w.Vehicles = append(w.Vehicles, v)
	room.Vehicles = append(room.Vehicles, v)
	return v, nil
}

// GiveObject puts an object in a character's inventory
func (w *World) GiveObject(ch *Character, obj *Object) {
	w.detach(obj)
	obj.CarriedBy = ch
	ch.Inventory = append(ch.Inventory, obj)
}

// Equip moves a carried object to the character's equipment
func (w *World) Equip(ch *Character, obj *Object) {
	w.detach(obj)
	obj.WornBy = ch
	ch.Equipment = append(ch.Equipment, obj)
}

// Unequip moves an equipped object back to the inventory
func (w *World) Unequip(ch *Character, obj *Object) {
	w.GiveObject(ch, obj)
}

// DropObject places an object in a room
func (w *World) DropObject(room *Room, obj *Object) {
	w.detach(obj)
	obj.InRoom = room
	room.Contents = append(room.Contents, obj)
}

// ExtractObject destroys an object
func (w *World) ExtractObject(obj *Object) {
	w.detach(obj)
	for i, o := range w.Objects {
		if o == obj {
			w.Objects = append(w.Objects[:i], w.Objects[i+1:]...)
			return
		}
	}
}

func (w *World) detach(obj *Object) {
	if ch := obj.CarriedBy; ch != nil {
		ch.Inventory = removeObject(ch.Inventory, obj)
	}
	if ch := obj.WornBy; ch != nil {
		ch.Equipment = removeObject(ch.Equipment, obj)
	}
	if obj.InRoom != nil {
		obj.InRoom.removeObject(obj)
	}
	obj.CarriedBy, obj.WornBy, obj.InRoom = nil, nil, nil
}

func removeObject(list []*Object, obj *Object) []*Object {
	for i, o := range list {
		if o == obj {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
