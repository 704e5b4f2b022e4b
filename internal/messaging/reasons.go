package messaging

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/engine"
)

var reasonText = map[engine.Reason]string{
	engine.ReasonNotOwned:           "You don't know how to do that.",
	engine.ReasonPassive:            "$a is always active; you don't need to use it.",
	engine.ReasonCooldown:           "You can't use $a again so soon.",
	engine.ReasonCost:               "You don't have the energy to use $a.",
	engine.ReasonNoResources:        "You don't have the materials for $a.",
	engine.ReasonNoTool:             "You need the right tool for $a.",
	engine.ReasonPosition:           "You can't do that in your current position.",
	engine.ReasonAnimal:             "You can't do that in animal form.",
	engine.ReasonInvulnerable:       "You can't do that while invulnerable.",
	engine.ReasonRole:               "You aren't in the right role to use $a.",
	engine.ReasonDark:               "It's too dark to use $a.",
	engine.ReasonPeaceful:           "This place is too peaceful for that.",
	engine.ReasonFighting:           "You can't do that while fighting.",
	engine.ReasonNotFighting:        "You need to be fighting to use $a.",
	engine.ReasonSunlight:           "The sunlight stops you from using $a.",
	engine.ReasonSilenced:           "You can't speak the words of $a.",
	engine.ReasonBusy:               "You're already busy doing something else.",
	engine.ReasonNoTarget:           "Use $a on whom?",
	engine.ReasonNotFound:           "You don't see that here.",
	engine.ReasonAmbiguous:          "Which one do you mean?",
	engine.ReasonSelfOnly:           "You can only use $a on yourself.",
	engine.ReasonNotSelf:            "You can't use $a on yourself.",
	engine.ReasonNotAlly:            "You can't use $a on an ally.",
	engine.ReasonNotEnemy:           "You can't use $a on an enemy.",
	engine.ReasonTargetDead:         "$N is already dead.",
	engine.ReasonTargetAlive:        "$N isn't dead.",
	engine.ReasonOutOfRange:         "$N is too far away.",
	engine.ReasonTargetInvulnerable: "$N can't be harmed.",
	engine.ReasonLimitation:         "You can't use $a right now.",
	engine.ReasonNoValidTargets:     "There is no one here to use $a on.",
	engine.ReasonImmune:             "$N is immune to $a.",
	engine.ReasonFailed:             "You fail.",
	engine.ReasonNoEffect:           "Nothing seems to happen.",
	engine.ReasonInventoryFull:      "You can't carry any more.",
	engine.ReasonNoTeleport:         "Something prevents you from going there.",
	engine.ReasonNoExit:             "You can't go that way.",
	engine.ReasonToggledOff:         "You stop using $a.",
	engine.ReasonVetoed:             "You are prevented from using $a.",
	engine.ReasonStopped:            "You stop.",
	engine.ReasonDied:               "You are interrupted by death.",
	engine.ReasonLostPreconditions:  "You can no longer continue.",
	engine.ReasonLostTarget:         "You've lost your target.",
}

// limitationText refines ReasonLimitation by the limitation that failed
var limitationText = map[string]string{
	ability.LimitOnBarrier.String():          "You must be on a barrier to use $a.",
	ability.LimitOnRoad.String():             "You must be on a road to use $a.",
	ability.LimitIndoors.String():            "You must be indoors to use $a.",
	ability.LimitOutdoors.String():           "You must be outdoors to use $a.",
	ability.LimitInCity.String():             "You must be in a city to use $a.",
	ability.LimitHasEmpire.String():          "You must be in an empire to use $a.",
	ability.LimitOwnTerritory.String():       "You can only use $a in your own territory.",
	ability.LimitNotOwnTerritory.String():    "You can't use $a in your own territory.",
	ability.LimitCanUseGuest.String():        "You don't have permission to use $a here.",
	ability.LimitCanUseAlly.String():         "You don't have permission to use $a here.",
	ability.LimitCanUseOwner.String():        "You don't have permission to use $a here.",
	ability.LimitTargetHuman.String():        "You can only use $a on humans.",
	ability.LimitTargetNotFighting.String():  "You can't use $a on someone who is fighting.",
	ability.LimitWieldingWeaponType.String(): "You aren't wielding the right weapon for $a.",
	ability.LimitTargetHasDOT.String():       "$N isn't suffering from the right affliction.",
	ability.LimitHasItem.String():            "You need a particular item to use $a.",
}

// ReasonTemplate returns the template explaining reason to the actor
func ReasonTemplate(reason engine.Reason, detail string) string {
	if reason == engine.ReasonLimitation {
		if text, ok := limitationText[detail]; ok {
			return text
		}
	}
	if text, ok := reasonText[reason]; ok {
		return text
	}
	return "You can't do that."
}
