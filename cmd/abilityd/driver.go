package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/combat"
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/effects"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/messaging"
	"github.com/KirkDiggler/ability-engine/internal/repositories/abilities"
)

const commandPrefix = "!"

// command is one line of player input
type command struct {
	UserID    string
	Name      string
	ChannelID string
	Text      string
}

// driver owns the world. Every engine call happens on its goroutine.
type driver struct {
	engine    *engine.Engine
	world     *world.World
	catalog   abilities.Repository
	combat    *combat.Service
	messenger *messaging.Messenger
	logger    *zap.Logger

	// onJoin is told about new players so their lines can be routed
	onJoin func(ch *world.Character, channelID string)

	commands chan command
	players  map[string]*world.Character
}

type driverConfig struct {
	Engine    *engine.Engine
	World     *world.World
	Catalog   abilities.Repository
	Combat    *combat.Service
	Messenger *messaging.Messenger
	Logger    *zap.Logger
	OnJoin    func(ch *world.Character, channelID string)
}

func newDriver(cfg *driverConfig) *driver {
	d := &driver{
		engine:    cfg.Engine,
		world:     cfg.World,
		catalog:   cfg.Catalog,
		combat:    cfg.Combat,
		messenger: cfg.Messenger,
		logger:    cfg.Logger,
		onJoin:    cfg.OnJoin,
		commands:  make(chan command, 64),
		players:   make(map[string]*world.Character),
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// submit queues input from another goroutine. Input is dropped when the
// queue is full.
func (d *driver) submit(cmd command) bool {
	select {
	case d.commands <- cmd:
		return true
	default:
		d.logger.Warn("command queue full, dropping input", zap.String("user", cmd.UserID))
		return false
	}
}

// run ticks the world every interval and handles input between ticks
func (d *driver) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick(ctx)
		case cmd := <-d.commands:
			d.handle(ctx, cmd)
		}
	}
}

func (d *driver) tick(ctx context.Context) {
	if err := d.engine.TickAll(ctx); err != nil {
		d.logger.Error("over-time tick failed", errFields(err)...)
	}
	d.engine.TickEffects(ctx)
}

func (d *driver) handle(ctx context.Context, cmd command) {
	text := strings.TrimSpace(cmd.Text)
	if !strings.HasPrefix(text, commandPrefix) {
		return
	}
	word, arg, _ := strings.Cut(strings.TrimPrefix(text, commandPrefix), " ")
	word = strings.ToLower(word)
	arg = strings.TrimSpace(arg)
	if word == "" {
		return
	}

	ch, err := d.player(cmd)
	if err != nil {
		d.logger.Error("failed to create player", append(errFields(err), zap.String("user", cmd.UserID))...)
		return
	}

	switch word {
	case "abilities":
		d.listAbilities(ch)
		return
	case "affects":
		d.listAffects(ch)
		return
	case "stop":
		if stopped, err := d.engine.Cancel(ctx, ch, engine.ReasonStopped); err != nil {
			d.logger.Error("cancel failed", append(errFields(err), zap.String("actor", ch.ID))...)
		} else if !stopped {
			d.messenger.Tell(ch, "You aren't doing anything.")
		}
		return
	case "respawn":
		if !ch.IsDead() {
			d.messenger.Tell(ch, "You are already alive.")
			return
		}
		d.world.MoveCharacter(ch, ch.Home)
		d.combat.Revive(ctx, ch, ch.Pool(ability.PoolHealth).Max/2)
		return
	}

	def, ok := d.catalog.GetByCommand(word)
	if !ok {
		d.messenger.Tell(ch, "Huh?")
		return
	}

	res, err := d.engine.Perform(ctx, ch, def, arg)
	if err != nil {
		fields := append(errFields(err),
			zap.String("actor", ch.ID),
			zap.Int("ability", int(def.ID)))
		if abilerr.IsInvalidArgument(err) {
			d.logger.Warn("ability rejected", fields...)
			return
		}
		d.logger.Error("ability failed", fields...)
		return
	}
	used := def
	if res.Ability != nil {
		used = res.Ability
	}
	d.logger.Debug("ability used",
		zap.String("actor", ch.ID),
		zap.Int("ability", int(used.ID)),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("cost", res.Cost))
}

// player finds or creates the character for a user
func (d *driver) player(cmd command) (*world.Character, error) {
	if ch, ok := d.players[cmd.UserID]; ok {
		return ch, nil
	}

	ch, err := newPlayer(d.world, cmd.UserID, cmd.Name, d.catalog.List())
	if err != nil {
		return nil, err
	}
	d.players[cmd.UserID] = ch
	d.engine.RefreshPassives(ch)
	if d.onJoin != nil {
		d.onJoin(ch, cmd.ChannelID)
	}

	d.logger.Info("player joined", zap.String("actor", ch.ID), zap.String("name", ch.Name))
	d.messenger.Tell(ch, fmt.Sprintf("welcome to %s, %s.", ch.Room.Name, ch.Name))
	return ch, nil
}

func (d *driver) listAbilities(ch *world.Character) {
	var b strings.Builder
	b.WriteString("your abilities:")
	for _, row := range d.engine.Available(ch) {
		if row.Ability.Command == "" {
			continue
		}
		status := "ready"
		switch {
		case row.Cooldown > 0:
			status = fmt.Sprintf("%s cooldown", row.Cooldown.Round(time.Second))
		case !row.Usable:
			status = row.Reason.String()
		}
		fmt.Fprintf(&b, "\n  %-12s %s", commandPrefix+row.Ability.Command, status)
	}
	d.messenger.Tell(ch, b.String())
}

func (d *driver) listAffects(ch *world.Character) {
	active := ch.Effects.GetActiveEffects()
	if len(active) == 0 {
		d.messenger.Tell(ch, "You are not affected by anything.")
		return
	}

	var b strings.Builder
	b.WriteString("you are affected by:")
	for _, se := range active {
		left := "permanent"
		if se.Duration.Type == effects.DurationTicks {
			left = fmt.Sprintf("%d ticks", se.Duration.Remaining)
		}
		fmt.Fprintf(&b, "\n  %-12s %s", se.Name, left)
		if se.Stacks > 1 {
			fmt.Fprintf(&b, " x%d", se.Stacks)
		}
	}
	d.messenger.Tell(ch, b.String())
}

// errFields logs err with its code and metadata
func errFields(err error) []zap.Field {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", string(abilerr.GetCode(err))),
	}
	if meta := abilerr.GetMeta(err); len(meta) > 0 {
		fields = append(fields, zap.Any("meta", meta))
	}
	return fields
}
