package engine

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// LimitEnv is what an expression limitation can see
type LimitEnv struct {
	Actor     LimitChar
	Target    LimitChar
	HasTarget bool
	Room      LimitRoom
	Level     int
	Daylight  bool
}

// LimitChar describes a character to an expression limitation
type LimitChar struct {
	Name      string
	Level     int
	NPC       bool
	Human     bool
	Dead      bool
	Fighting  bool
	Health    int
	MaxHealth int
	Mana      int
	Role      string
	Empire    string
}

// LimitRoom describes the actor's room to an expression limitation
type LimitRoom struct {
	Vnum     int
	City     string
	Owner    string
	Indoors  bool
	Dark     bool
	Road     bool
	Barrier  bool
	Peaceful bool
	People   int
}

// CompileLimitation checks that an expression limitation compiles
func CompileLimitation(src string) error {
	_, err := compileLimit(src)
	return err
}

func compileLimit(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(LimitEnv{}), expr.AsBool())
	if err != nil {
		return nil, abilerr.WrapWithCode(err, abilerr.CodeValidation, "invalid limitation expression")
	}
	return program, nil
}

// limitPrograms caches compiled expressions by source
type limitPrograms struct {
	mu       sync.Mutex
	programs map[string]*vm.Program
}

func newLimitPrograms() *limitPrograms {
	return &limitPrograms{programs: make(map[string]*vm.Program)}
}

func (p *limitPrograms) get(src string) (*vm.Program, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if program, ok := p.programs[src]; ok {
		return program, nil
	}
	program, err := compileLimit(src)
	if err != nil {
		return nil, err
	}
	p.programs[src] = program
	return program, nil
}

// checkLimitations evaluates def's limitations. Members of a group pass
// when any one of them does.
func (e *Engine) checkLimitations(actor *world.Character, def *ability.Definition, t TargetSet) Verdict {
	groups := make(map[ability.LimitGroup][]ability.Limitation)
	var order []ability.LimitGroup

	for _, lim := range def.Limitations {
		g := lim.Type.Group()
		if g == ability.LimitGroupNone {
			if !e.limitationHolds(actor, def, lim, t) {
				return reject(ReasonLimitation, lim.Type.Fatal(), lim.Type.String())
			}
			continue
		}
		if _, seen := groups[g]; !seen {
			order = append(order, g)
		}
		groups[g] = append(groups[g], lim)
	}

	for _, g := range order {
		members := groups[g]
		held, fatal := false, false
		for _, lim := range members {
			if e.limitationHolds(actor, def, lim, t) {
				held = true
				break
			}
			fatal = fatal || lim.Type.Fatal()
		}
		if !held {
			return reject(ReasonLimitation, fatal, members[0].Type.String())
		}
	}
	return pass()
}

func (e *Engine) limitationHolds(actor *world.Character, def *ability.Definition, lim ability.Limitation, t TargetSet) bool {
	room := actor.Room
	target := t.Char

	switch lim.Type {
	case ability.LimitOnBarrier:
		return room != nil && room.Has(world.RoomBarrier)
	case ability.LimitOnRoad:
		return room != nil && room.Has(world.RoomRoad)
	case ability.LimitIndoors:
		return room != nil && room.Has(world.RoomIndoors)
	case ability.LimitOutdoors:
		return room != nil && !room.Has(world.RoomIndoors)
	case ability.LimitInCity:
		return room != nil && room.City != ""
	case ability.LimitHasEmpire:
		return actor.Empire != nil
	case ability.LimitOwnTerritory:
		return room != nil && actor.Empire != nil && room.Owner == actor.Empire
	case ability.LimitNotOwnTerritory:
		return room == nil || actor.Empire == nil || room.Owner != actor.Empire
	case ability.LimitCanUseOwner:
		return room != nil && (room.Owner == nil || room.Owner == actor.Empire)
	case ability.LimitCanUseAlly:
		return room != nil && (room.Owner == nil || room.Owner == actor.Empire || room.Owner.AlliedWith(actor.Empire))
	case ability.LimitCanUseGuest:
		return room != nil && (room.Owner == nil || !room.Owner.AtWarWith(actor.Empire))
	case ability.LimitTargetHuman:
		return target != nil && target.Has(world.CharHuman)
	case ability.LimitTargetNotFighting:
		return target != nil && target.Fighting == nil
	case ability.LimitWieldingWeaponType:
		weapon := actor.Wielded()
		return weapon != nil && weapon.WeaponType == lim.Value
	case ability.LimitTargetHasDOT:
		return target != nil && target.Effects.HasDOT(ability.DamageType(lim.Value))
	case ability.LimitHasItem:
		return actor.Carrying(lim.Value) != nil
	case ability.LimitExpression:
		return e.evalLimit(actor, def, lim.Expr, t)
	}

	e.logger.Warn("unknown limitation type",
		zap.Int("ability", int(def.ID)),
		zap.Int("type", int(lim.Type)))
	return false
}

func (e *Engine) evalLimit(actor *world.Character, def *ability.Definition, src string, t TargetSet) bool {
	program, err := e.limits.get(src)
	if err != nil {
		e.logger.Warn("limitation does not compile",
			zap.Int("ability", int(def.ID)),
			zap.String("expr", src),
			zap.Error(err))
		return false
	}

	env := LimitEnv{
		Actor:    describeChar(actor),
		Level:    actor.Level,
		Daylight: e.world.Daylight,
	}
	if t.Char != nil {
		env.Target = describeChar(t.Char)
		env.HasTarget = true
	}
	if room := actor.Room; room != nil {
		env.Room = LimitRoom{
			Vnum:     room.Vnum,
			City:     room.City,
			Indoors:  room.Has(world.RoomIndoors),
			Dark:     room.Has(world.RoomDark),
			Road:     room.Has(world.RoomRoad),
			Barrier:  room.Has(world.RoomBarrier),
			Peaceful: room.Has(world.RoomPeaceful),
			People:   len(room.People),
		}
		if room.Owner != nil {
			env.Room.Owner = room.Owner.Name
		}
	}

	out, err := vm.Run(program, env)
	if err != nil {
		e.logger.Warn("limitation failed to evaluate",
			zap.Int("ability", int(def.ID)),
			zap.String("expr", src),
			zap.Error(err))
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func describeChar(ch *world.Character) LimitChar {
	health := ch.Pool(ability.PoolHealth)
	lc := LimitChar{
		Name:      ch.Name,
		Level:     ch.Level,
		NPC:       ch.IsNPC,
		Human:     ch.Has(world.CharHuman),
		Dead:      ch.IsDead(),
		Fighting:  ch.InCombat(),
		Health:    health.Current,
		MaxHealth: health.Max,
		Mana:      ch.Pool(ability.PoolMana).Current,
		Role:      ch.Role.String(),
	}
	if ch.Empire != nil {
		lc.Empire = ch.Empire.Name
	}
	return lc
}
