package overtime

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/KirkDiggler/ability-engine/internal/repositories/overtime Repository

// Repository stores over-time continuations keyed by actor id
type Repository interface {
	// Save creates or replaces the actor's continuation
	Save(ctx context.Context, c *overtime.Continuation) error
	Get(ctx context.Context, actorID string) (*overtime.Continuation, error)
	Delete(ctx context.Context, actorID string) error
	// ListRunning returns every running continuation ordered by actor id
	ListRunning(ctx context.Context) ([]*overtime.Continuation, error)
}
