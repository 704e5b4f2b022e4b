// Package engine resolves ability invocations: it finds targets, validates
// them, scales and dispatches every behavior type, charges cost and
// cooldown, fires hooks and drives abilities that span several ticks.
//
// The engine is single threaded. The tick driver serializes every call.
package engine

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/config"
	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/events"
	overtimerepo "github.com/KirkDiggler/ability-engine/internal/repositories/overtime"
	"github.com/KirkDiggler/ability-engine/internal/telemetry"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
)

// Config holds the engine's collaborators
type Config struct {
	World     *world.World
	Catalog   Catalog
	Combat    Combat
	Messenger Messenger

	// Optional; defaults are an in-memory store, the world itself, a random
	// roller, the real clock, a private bus, a nop logger and the global tracer
	Store     overtimerepo.Repository
	Resources Resources
	Roller    dice.Roller
	Clock     world.Clock
	Bus       *events.Bus
	Logger    *zap.Logger
	Tracer    trace.Tracer
	IDs       uuid.Generator
	Tunables  config.EngineConfig
}

// Engine resolves abilities against a world
type Engine struct {
	world     *world.World
	catalog   Catalog
	combat    Combat
	messenger Messenger
	store     overtimerepo.Repository
	resources Resources
	roller    dice.Roller
	clock     world.Clock
	bus       *events.Bus
	logger    *zap.Logger
	tracer    trace.Tracer
	ids       uuid.Generator
	tunables  config.EngineConfig

	pipeline *pipeline
	limits   *limitPrograms
	hooks    *HookListener
}

// New creates an engine and subscribes its hook listener to the bus
func New(cfg *Config) *Engine {
	if cfg == nil {
		panic("engine config is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Combat == nil {
		panic("combat is required")
	}
	if cfg.Messenger == nil {
		panic("messenger is required")
	}

	e := &Engine{
		world:     cfg.World,
		catalog:   cfg.Catalog,
		combat:    cfg.Combat,
		messenger: cfg.Messenger,
		store:     cfg.Store,
		resources: cfg.Resources,
		roller:    cfg.Roller,
		clock:     cfg.Clock,
		bus:       cfg.Bus,
		logger:    cfg.Logger,
		tracer:    cfg.Tracer,
		ids:       cfg.IDs,
		tunables:  cfg.Tunables,
		limits:    newLimitPrograms(),
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.store == nil {
		e.store = overtimerepo.NewInMemoryRepository(nil)
	}
	if e.resources == nil {
		e.resources = cfg.World
	}
	if e.roller == nil {
		e.roller = dice.NewRandomRoller()
	}
	if e.clock == nil {
		e.clock = world.RealClock{}
	}
	if e.bus == nil {
		e.bus = events.NewBus(e.logger)
	}
	if e.tracer == nil {
		e.tracer = telemetry.Tracer("engine")
	}
	if e.ids == nil {
		e.ids = uuid.NewGoogleUUIDGenerator()
	}
	if e.tunables == (config.EngineConfig{}) {
		e.tunables = config.DefaultEngineConfig()
	}

	e.pipeline = newPipeline(e)
	e.hooks = NewHookListener(e)
	e.hooks.Register(e.bus)

	return e
}

// Bus returns the event bus the engine publishes on
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// invocation is one request to run an ability
type invocation struct {
	actor *world.Character
	def   *ability.Definition
	level int
	arg   string

	// targets skips argument resolution when set
	targets *TargetSet
	hooked  bool
}

// Perform runs def for actor with the argument text the command
// interpreter left over. The returned error is only for infrastructure
// failures; refusals and misses are reported through the Result.
func (e *Engine) Perform(ctx context.Context, actor *world.Character, def *ability.Definition, arg string) (Result, error) {
	if actor == nil {
		return Result{}, abilerr.InvalidArgument("actor is required")
	}
	if def == nil {
		return Result{}, abilerr.InvalidArgument("ability is required")
	}

	resolved, err := e.ResolveSupersede(actor, def)
	switch {
	case abilerr.IsCycle(err):
		e.logger.Warn("supersede chain loops, using the requested ability",
			zap.Int("ability", int(def.ID)),
			zap.String("actor", actor.ID),
			zap.Error(err))
	case err != nil:
		return Result{}, err
	}
	def = resolved

	ctx, span := e.tracer.Start(ctx, "ability.perform", trace.WithAttributes(
		attribute.Int("ability.id", int(def.ID)),
		attribute.String("ability.name", def.Name),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	ctx, chain, _ := withChain(ctx)
	chain.claim(def.ID)

	res, err := e.invoke(ctx, invocation{actor: actor, def: def, level: actor.Level, arg: arg})
	span.SetAttributes(
		attribute.String("ability.outcome", res.Outcome.String()),
		attribute.Int("ability.cost", res.Cost),
	)
	if err != nil {
		span.RecordError(err)
	}
	return res, err
}

// PerformByID looks an ability up in the catalog and performs it
func (e *Engine) PerformByID(ctx context.Context, actor *world.Character, id ability.ID, arg string) (Result, error) {
	def, ok := e.catalog.Get(id)
	if !ok {
		return Result{}, abilerr.NotFoundf("ability %d not found", id).WithMeta("ability_id", int(id))
	}
	return e.Perform(ctx, actor, def, arg)
}

func (e *Engine) invoke(ctx context.Context, inv invocation) (Result, error) {
	actor, def := inv.actor, inv.def
	messaged := !inv.hooked
	res := Result{Ability: def}

	if reason := e.preCheck(actor, def, true); reason != ReasonNone {
		if messaged {
			e.notify(actor, def, reason, "")
		}
		res.Outcome, res.Reason = OutcomeUsageError, reason
		return res, nil
	}

	var target TargetSet
	if inv.targets != nil {
		target = *inv.targets
	} else {
		var reason Reason
		target, reason = e.ResolveTargets(actor, def, inv.arg)
		if reason != ReasonNone {
			if messaged {
				e.notify(actor, def, reason, "")
			}
			res.Outcome, res.Reason = OutcomeUsageError, reason
			return res, nil
		}
	}

	if def.IsOverTime() {
		return e.startOverTime(ctx, inv, target)
	}

	ec := newExecutionContext(def, actor, inv.level, inv.hooked)
	ec.NoMsg = def.Flags.Has(ability.FlagNoMsgOnSuccess)

	targets, verdict := e.collectTargets(ec, target, messaged)
	if !verdict.OK {
		return e.refused(res, verdict), nil
	}

	if e.vetoed(ctx, ec) {
		if messaged {
			e.notify(actor, def, ReasonVetoed, "")
		}
		res.Outcome, res.Reason = OutcomeCancelled, ReasonVetoed
		return res, nil
	}

	e.runBatch(ctx, ec, targets)
	res = e.conclude(ec)
	if ec.ShouldChargeCost && ec.TotalTargets > 0 {
		ec.Cost = ComputeCost(def, ec.MaxScale, ec.TotalAmount, ec.TotalTargets)
		res.Cost = e.charge(actor, def, ec.Cost)
	}
	e.engage(ctx, ec, targets)
	e.afterward(ctx, ec, res, target)

	return res, nil
}

// refused turns a failed verdict into a result
func (e *Engine) refused(res Result, v Verdict) Result {
	res.Reason = v.Reason
	switch {
	case v.Reason == ReasonNoValidTargets:
		res.Outcome = OutcomeUsageError
	case v.Fatal:
		res.Outcome = OutcomeFatalValidationFailure
	default:
		res.Outcome = OutcomeValidationFailure
	}
	return res
}

// vetoed emits the before event and reports whether a listener cancelled it
func (e *Engine) vetoed(ctx context.Context, ec *ExecutionContext) bool {
	ev := &events.BeforeAbilityEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeBeforeAbility, Actor: ec.Actor, Target: ec.Target.Char, Ctx: ctx},
		Ability:   ec.Ability.ID,
		Level:     ec.Level,
	}
	e.emit(ev)
	return ev.IsCancelled()
}

// conclude decides the outcome once every target has run
func (e *Engine) conclude(ec *ExecutionContext) Result {
	res := Result{Ability: ec.Ability, Targets: ec.TotalTargets, Amount: ec.TotalAmount}

	switch {
	case ec.cancelled != ReasonNone:
		res.Outcome, res.Reason = OutcomeCancelled, ec.cancelled
	case ec.Success:
		res.Outcome = OutcomeSuccess
	case ec.skillFailures > 0:
		res.Outcome, res.Reason = OutcomeSkillCheckFailure, ReasonFailed
	case ec.TotalTargets == 0 && ec.immunities > 0:
		res.Outcome, res.Reason = OutcomeImmune, ReasonImmune
	default:
		res.Outcome, res.Reason = OutcomeNoEffect, ReasonNoEffect
		if !ec.SentFailMsg && !ec.Hooked {
			e.notify(ec.Actor, ec.Ability, ReasonNoEffect, "")
			ec.SentFailMsg = true
		}
	}
	return res
}

// afterward fires ability hooks and publishes the result
func (e *Engine) afterward(ctx context.Context, ec *ExecutionContext, res Result, target TargetSet) {
	if res.Outcome == OutcomeSuccess {
		e.FireHooks(ctx, ec.Actor, ability.HookAbility, int(ec.Ability.ID), target)
	}

	e.emit(&events.AfterAbilityEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeAfterAbility, Actor: ec.Actor, Target: target.Char, Ctx: ctx},
		Ability:   ec.Ability.ID,
		Outcome:   res.Outcome.String(),
		Cost:      res.Cost,
		Hooked:    ec.Hooked,
	})
}

func (e *Engine) emit(ev events.Event) {
	if err := e.bus.Emit(ev); err != nil {
		e.logger.Error("event listener failed",
			zap.String("event", string(ev.GetType())),
			zap.Error(err))
	}
}

// ownedAbilities lists an actor's abilities in id order
func ownedAbilities(actor *world.Character) []ability.ID {
	ids := make([]ability.ID, 0, len(actor.Abilities))
	for id, owned := range actor.Abilities {
		if owned {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
