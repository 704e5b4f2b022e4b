package overtime

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/ability-engine/internal/repositories/overtime TimeProvider

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
