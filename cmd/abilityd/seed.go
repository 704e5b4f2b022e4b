package main

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
)

// Vnums of the starter area
const (
	roomSquare = 1
	roomForest = 2
	roomMine   = 3

	objPickaxe = 200
	objOre     = 210
	objSword   = 220

	mobWolf   = 500
	mobGoblin = 501
)

// seedWorld builds the small starter area players join into
func seedWorld(ids uuid.Generator) (*world.World, error) {
	w := world.New(ids)
	w.Daylight = true

	square := w.AddRoom(world.NewRoom(roomSquare, "the town square"))
	square.City = "Ashford"
	square.Flags = world.RoomPeaceful | world.RoomRoad

	forest := w.AddRoom(world.NewRoom(roomForest, "the forest edge"))
	forest.X, forest.Y = 0, 1

	mine := w.AddRoom(world.NewRoom(roomMine, "an old mine"))
	mine.Flags = world.RoomIndoors

	square.Link(ability.DirNorth, forest)
	square.Link(ability.DirDown, mine)

	w.ObjectProtos[objPickaxe] = world.ObjectProto{Vnum: objPickaxe, Name: "a miner's pickaxe", Keywords: []string{"pickaxe", "pick"}}
	w.ObjectProtos[objOre] = world.ObjectProto{Vnum: objOre, Name: "a chunk of iron ore", Keywords: []string{"ore", "chunk", "iron"}}
	w.ObjectProtos[objSword] = world.ObjectProto{Vnum: objSword, Name: "a broad sword", Keywords: []string{"sword", "broad"}, WeaponType: 3}

	w.MobProtos[mobWolf] = world.MobProto{Vnum: mobWolf, Name: "a grey wolf", Keywords: []string{"wolf", "grey"}, Level: 20, Health: 120}
	w.MobProtos[mobGoblin] = world.MobProto{Vnum: mobGoblin, Name: "a goblin", Keywords: []string{"goblin"}, Level: 8, Health: 60, Flags: world.CharAggressive}

	for i := 0; i < 2; i++ {
		if _, err := w.LoadMob(mobGoblin, forest); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// newPlayer creates a player character with the starter kit
func newPlayer(w *world.World, id, name string, catalog []*ability.Definition) (*world.Character, error) {
	start := w.Room(roomSquare)

	ch := world.NewCharacter(id, name, 25)
	ch.Home = start
	ch.Flags = world.CharHuman
	ch.SetPool(ability.PoolHealth, 200)
	ch.SetPool(ability.PoolMove, 150)
	ch.SetPool(ability.PoolMana, 150)
	for _, t := range []ability.Trait{ability.TraitStrength, ability.TraitDexterity, ability.TraitIntelligence, ability.TraitWits} {
		ch.Traits[t] = 4
	}
	for _, def := range catalog {
		ch.Grant(def.ID)
	}
	w.AddCharacter(ch, start)

	pickaxe, err := w.LoadObject(objPickaxe)
	if err != nil {
		return nil, err
	}
	w.GiveObject(ch, pickaxe)

	sword, err := w.LoadObject(objSword)
	if err != nil {
		return nil, err
	}
	w.Equip(ch, sword)

	return ch, nil
}
