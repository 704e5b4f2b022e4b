package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// charge takes amount from the cost pool, never below its reserved floor,
// and starts the cooldown. It returns what was actually taken.
func (e *Engine) charge(actor *world.Character, def *ability.Definition, amount int) int {
	paid := actor.Pool(def.CostPool).Spend(amount, def.CostPool.ReservedMinimum())
	if def.CooldownID != 0 && def.CooldownSeconds > 0 {
		actor.SetCooldown(def.CooldownID, e.clock.Now().Add(time.Duration(def.CooldownSeconds)*time.Second))
	}
	return paid
}

// topUp takes the difference when a finished over-time ability cost more
// than was paid up front. The cooldown is not restarted.
func (e *Engine) topUp(actor *world.Character, c *overtime.Continuation, realized int) int {
	if realized <= c.PaidCost {
		return 0
	}
	extra := actor.Pool(c.CostPool).Spend(realized-c.PaidCost, c.CostPool.ReservedMinimum())
	c.PaidCost += extra
	return extra
}

// refund returns everything a continuation took when it started
func (e *Engine) refund(actor *world.Character, c *overtime.Continuation) {
	refunded := actor.Pool(c.CostPool).Refund(c.PaidCost)
	if refunded < c.PaidCost {
		e.logger.Warn("refund capped by pool maximum",
			zap.String("actor", actor.ID),
			zap.Int("paid", c.PaidCost),
			zap.Int("refunded", refunded))
	}
	actor.ClearCooldown(c.CooldownID)
	if len(c.Resources) > 0 {
		if err := e.resources.GiveResources(actor, c.Resources); err != nil {
			e.logger.Error("failed to return consumables",
				zap.String("actor", actor.ID),
				zap.Int("ability", int(c.Ability)),
				zap.Error(err))
		}
	}
}
