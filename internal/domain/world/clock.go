package world

import "time"

//go:generate mockgen -destination=mocks/mock_clock.go -package=mocks github.com/KirkDiggler/ability-engine/internal/domain/world Clock

// Clock provides the current time for cooldowns and continuation bookkeeping
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// Now returns the current time
func (RealClock) Now() time.Time {
	return time.Now()
}
