package engine

import (
	"math"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

const (
	roleMatchFactor    = 1.20
	roleMismatchFactor = 0.70
	masteryFactor      = 1.25
	traitFloor         = 0.75
	traitSpan          = 0.50
)

// ScalePoints is the power a type of def earns when actor uses it at level
func (e *Engine) ScalePoints(actor *world.Character, def *ability.Definition, level int, t ability.Type) float64 {
	points := float64(level) / 100 * e.tunables.PointsAtMaxLevel
	points *= def.TypeWeightShare(t)
	points *= def.EffectiveScaleMultiplier()
	points *= traitFactor(actor, def.LinkedTrait)
	points *= e.roleFactor(actor, def, level)
	if def.HasMastery() && actor.Owns(def.MasteryAbility) {
		points *= masteryFactor
	}
	return math.Max(points, 1)
}

// traitFactor moves linearly from 0.75 to 1.25 with the normalized trait
func traitFactor(actor *world.Character, trait ability.Trait) float64 {
	if trait == ability.TraitNone {
		return 1
	}
	norm := 1.0
	if top := ability.TraitMax(trait); top > 0 {
		norm = float64(actor.TraitValue(trait)) / float64(top)
		norm = math.Min(math.Max(norm, 0), 1)
	}
	return traitFloor + traitSpan*norm
}

func (e *Engine) roleFactor(actor *world.Character, def *ability.Definition, level int) float64 {
	if def.RoleRequired == ability.RoleNone || level <= e.tunables.BaseLevelCap {
		return 1
	}
	if actor.Role == def.RoleRequired {
		return roleMatchFactor
	}
	return roleMismatchFactor
}

// maxScale is the largest single-type scale point total of def
func (e *Engine) maxScale(actor *world.Character, def *ability.Definition, level int) float64 {
	best := 0.0
	for _, h := range e.pipeline.active(def) {
		if !h.Scales() {
			continue
		}
		best = math.Max(best, e.ScalePoints(actor, def, level, h.Type()))
	}
	return best
}

// ComputeCost is the resource charge for one invocation
func ComputeCost(def *ability.Definition, maxScale float64, totalAmount, totalTargets int) int {
	cost := float64(def.BaseCost) +
		maxScale*def.CostPerScalePoint +
		float64(totalAmount)*def.CostPerAmount +
		float64(totalTargets)*def.CostPerTarget
	if cost <= 0 {
		return 0
	}
	return int(math.Round(cost))
}

// EstimateCost is the charge assuming one target and no amount
func (e *Engine) EstimateCost(actor *world.Character, def *ability.Definition, level int) int {
	return ComputeCost(def, e.maxScale(actor, def, level), 0, 1)
}

// amountFor converts scale points into an effect magnitude of at least 1
func amountFor(points, perPoint float64) int {
	amount := int(math.Round(points * perPoint))
	if amount < 1 {
		return 1
	}
	return amount
}
