package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/events"
)

// startOverTime validates the target, pays the estimated cost and stores a
// continuation. Nothing executes until the final tick.
func (e *Engine) startOverTime(ctx context.Context, inv invocation, target TargetSet) (Result, error) {
	actor, def := inv.actor, inv.def
	messaged := !inv.hooked
	res := Result{Ability: def}

	existing, err := e.store.Get(ctx, actor.ID)
	switch {
	case err == nil && existing.IsRunning():
		if messaged {
			e.notify(actor, def, ReasonBusy, "")
		}
		res.Outcome, res.Reason = OutcomeUsageError, ReasonBusy
		return res, nil
	case err != nil && !abilerr.IsNotFound(err):
		return res, abilerr.Wrap(err, "failed to check for a running ability")
	}

	ec := newExecutionContext(def, actor, inv.level, inv.hooked)
	if _, v := e.collectTargets(ec, target, messaged); !v.OK {
		return e.refused(res, v), nil
	}
	ec.Target = target
	if e.vetoed(ctx, ec) {
		if messaged {
			e.notify(actor, def, ReasonVetoed, "")
		}
		res.Outcome, res.Reason = OutcomeCancelled, ReasonVetoed
		return res, nil
	}

	if len(def.ResourceCost) > 0 && !e.resources.ExtractResources(actor, def.ResourceCost) {
		if messaged {
			e.notify(actor, def, ReasonNoResources, "")
		}
		res.Outcome, res.Reason = OutcomeUsageError, ReasonNoResources
		return res, nil
	}

	c := &overtime.Continuation{
		ID:        e.ids.New(),
		ActorID:   actor.ID,
		Ability:   def.ID,
		Level:     inv.level,
		Target:    recordTarget(target),
		Argument:  inv.arg,
		CostPool:  def.CostPool,
		Resources: append([]ability.ResourceCost(nil), def.ResourceCost...),
		State:     overtime.StateRunning,
	}
	if def.CooldownSeconds > 0 {
		c.CooldownID = def.CooldownID
	}
	c.PaidCost = e.charge(actor, def, e.EstimateCost(actor, def, inv.level))

	if err := e.store.Save(ctx, c); err != nil {
		e.refund(actor, c)
		return res, abilerr.Wrap(err, "failed to save continuation")
	}

	e.sayAt(actor, def, ability.MsgBeginToChar, 0, target, nil)
	e.sayAt(actor, def, ability.MsgBeginToRoom, 0, target, nil)
	e.emit(&events.OverTimeEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeOverTimeStarted, Actor: actor, Target: target.Char, Ctx: ctx},
		Ability:   def.ID,
	})

	e.logger.Debug("over-time ability started",
		zap.String("actor", actor.ID),
		zap.Int("ability", int(def.ID)),
		zap.Int("paid", c.PaidCost))

	res.Outcome = OutcomeStarted
	res.Cost = c.PaidCost
	return res, nil
}

// TickOverTime advances the actor's running ability by one tick. The last
// tick, the one with no tick message after it, runs the ability for real.
func (e *Engine) TickOverTime(ctx context.Context, actor *world.Character) (Result, error) {
	if actor == nil {
		return Result{}, abilerr.InvalidArgument("actor is required")
	}
	c, err := e.store.Get(ctx, actor.ID)
	if err != nil {
		return Result{}, err
	}

	ctx, span := e.tracer.Start(ctx, "ability.tick", trace.WithAttributes(
		attribute.Int("ability.id", int(c.Ability)),
		attribute.String("actor.id", actor.ID),
		attribute.Int("ability.tick", c.Ticks),
	))
	defer span.End()

	def, ok := e.catalog.Get(c.Ability)
	if !ok || !actor.Owns(c.Ability) {
		return e.abort(ctx, actor, c, def, ReasonLostPreconditions)
	}
	if reason := e.preCheck(actor, def, false); reason != ReasonNone {
		e.notify(actor, def, reason, "")
		return e.abort(ctx, actor, c, def, ReasonLostPreconditions)
	}
	target, ok := e.restoreTarget(c.Target)
	if !ok {
		return e.abort(ctx, actor, c, def, ReasonLostTarget)
	}

	for _, slot := range []ability.MessageSlot{ability.MsgTickToChar, ability.MsgTickToRoom} {
		if _, ok := def.Message(slot, c.Ticks); ok {
			e.sayAt(actor, def, slot, c.Ticks, target, nil)
		}
	}

	if def.HasTickMessage(c.Ticks + 1) {
		c.Ticks++
		if err := e.store.Save(ctx, c); err != nil {
			return Result{}, abilerr.Wrap(err, "failed to save continuation")
		}
		return Result{Outcome: OutcomeStarted, Ability: def, Cost: c.PaidCost}, nil
	}
	return e.finishOverTime(ctx, actor, def, c, target)
}

func (e *Engine) finishOverTime(ctx context.Context, actor *world.Character, def *ability.Definition, c *overtime.Continuation, target TargetSet) (Result, error) {
	ctx, chain, _ := withChain(ctx)
	chain.claim(def.ID)

	ec := newExecutionContext(def, actor, c.Level, false)
	ec.NoMsg = def.Flags.Has(ability.FlagNoMsgOnSuccess)
	targets, v := e.collectTargets(ec, target, true)
	if !v.OK {
		return e.abort(ctx, actor, c, def, ReasonLostPreconditions)
	}

	e.runBatch(ctx, ec, targets)
	res := e.conclude(ec)
	res.Cost = c.PaidCost
	if ec.cancelled != ReasonNone || res.Outcome == OutcomeImmune {
		e.refund(actor, c)
		res.Cost = 0
	} else {
		if ec.ShouldChargeCost {
			res.Cost += e.topUp(actor, c, ComputeCost(def, ec.MaxScale, ec.TotalAmount, ec.TotalTargets))
		}
		e.turnInto(actor, c)
	}
	e.engage(ctx, ec, targets)

	c.State = overtime.StateCompleted
	if err := e.store.Delete(ctx, actor.ID); err != nil && !abilerr.IsNotFound(err) {
		return res, abilerr.Wrap(err, "failed to delete continuation")
	}
	e.emit(&events.OverTimeEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeOverTimeFinished, Actor: actor, Target: target.Char, Ctx: ctx},
		Ability:   def.ID,
		Ticks:     c.Ticks,
		Reason:    res.Outcome.String(),
	})
	e.afterward(ctx, ec, res, target)

	if res.Outcome == OutcomeSuccess && def.Flags.Has(ability.FlagRepeatOverTime) {
		again, err := e.invoke(ctx, invocation{actor: actor, def: def, level: c.Level, arg: c.Argument, targets: &target})
		if err != nil {
			return res, err
		}
		e.logger.Debug("over-time ability repeated",
			zap.String("actor", actor.ID),
			zap.Int("ability", int(def.ID)),
			zap.String("outcome", again.Outcome.String()))
	}
	return res, nil
}

// Cancel stops the actor's running ability and returns everything it took.
// It reports false when nothing was running.
func (e *Engine) Cancel(ctx context.Context, actor *world.Character, reason Reason) (bool, error) {
	if actor == nil {
		return false, abilerr.InvalidArgument("actor is required")
	}
	c, err := e.store.Get(ctx, actor.ID)
	if abilerr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	def, _ := e.catalog.Get(c.Ability)
	if _, err := e.abort(ctx, actor, c, def, reason); err != nil {
		return false, err
	}
	return true, nil
}

// IsBusy reports whether the actor has an over-time ability running
func (e *Engine) IsBusy(ctx context.Context, actor *world.Character) (bool, error) {
	c, err := e.store.Get(ctx, actor.ID)
	if abilerr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.IsRunning(), nil
}

// abort refunds and removes a continuation. def may be nil when the
// ability left the catalog.
func (e *Engine) abort(ctx context.Context, actor *world.Character, c *overtime.Continuation, def *ability.Definition, reason Reason) (Result, error) {
	e.refund(actor, c)
	c.State = overtime.StateCancelled
	if err := e.store.Delete(ctx, actor.ID); err != nil && !abilerr.IsNotFound(err) {
		return Result{}, abilerr.Wrap(err, "failed to delete continuation")
	}

	if def != nil {
		e.sayAt(actor, def, ability.MsgCancelToChar, 0, TargetSet{}, nil)
	}
	e.emit(&events.OverTimeEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeOverTimeCanceled, Actor: actor, Ctx: ctx},
		Ability:   c.Ability,
		Ticks:     c.Ticks,
		Reason:    reason.String(),
	})

	e.logger.Debug("over-time ability cancelled",
		zap.String("actor", actor.ID),
		zap.Int("ability", int(c.Ability)),
		zap.Int("ticks", c.Ticks),
		zap.String("reason", reason.String()))

	return Result{Outcome: OutcomeCancelled, Ability: def, Reason: reason}, nil
}

// TickAll advances every running continuation whose actor is in the world
func (e *Engine) TickAll(ctx context.Context) error {
	running, err := e.store.ListRunning(ctx)
	if err != nil {
		return abilerr.Wrap(err, "failed to list running abilities")
	}
	for _, c := range running {
		actor := e.world.FindCharacter(c.ActorID)
		if actor == nil {
			continue
		}
		if _, err := e.TickOverTime(ctx, actor); err != nil {
			e.logger.Error("over-time tick failed",
				zap.String("actor", c.ActorID),
				zap.Int("ability", int(c.Ability)),
				zap.Error(err))
		}
	}
	return nil
}

// turnInto hands over what consumed resources become on completion
func (e *Engine) turnInto(actor *world.Character, c *overtime.Continuation) {
	var products []ability.ResourceCost
	for _, rc := range c.Resources {
		if rc.TurnsInto > 0 {
			products = append(products, ability.ResourceCost{Vnum: rc.TurnsInto, Amount: rc.Amount})
		}
	}
	if len(products) == 0 {
		return
	}
	if err := e.resources.GiveResources(actor, products); err != nil {
		e.logger.Error("failed to give resource products",
			zap.String("actor", actor.ID),
			zap.Int("ability", int(c.Ability)),
			zap.Error(err))
	}
}

func recordTarget(t TargetSet) overtime.Target {
	out := overtime.Target{Direction: t.Dir, HasDir: t.HasDir, Multi: t.Multi}
	if t.Char != nil {
		out.CharacterID = t.Char.ID
		out.TempID = t.Char.TempID
	}
	if t.Obj != nil {
		out.ObjectID = t.Obj.ID
	}
	if t.Vehicle != nil {
		out.VehicleID = t.Vehicle.ID
	}
	if t.Room != nil {
		out.RoomVnum = t.Room.Vnum
		out.HasRoom = true
	}
	return out
}

// restoreTarget finds a recorded target again. Characters are matched by
// id and then by temp id.
func (e *Engine) restoreTarget(rec overtime.Target) (TargetSet, bool) {
	out := TargetSet{Dir: rec.Direction, HasDir: rec.HasDir, Multi: rec.Multi}

	if rec.CharacterID != "" || rec.TempID != 0 {
		ch := e.world.FindCharacter(rec.CharacterID)
		if ch == nil && rec.TempID != 0 {
			ch = e.world.FindByTempID(rec.TempID)
		}
		if ch == nil {
			return TargetSet{}, false
		}
		out.Char = ch
	}
	if rec.ObjectID != "" {
		if out.Obj = e.world.FindObject(rec.ObjectID); out.Obj == nil {
			return TargetSet{}, false
		}
	}
	if rec.VehicleID != "" {
		if out.Vehicle = e.world.FindVehicle(rec.VehicleID); out.Vehicle == nil {
			return TargetSet{}, false
		}
	}
	if rec.HasRoom {
		if out.Room = e.world.Room(rec.RoomVnum); out.Room == nil {
			return TargetSet{}, false
		}
	}
	return out, true
}
