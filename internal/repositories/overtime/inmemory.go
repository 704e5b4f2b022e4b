package overtime

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// InMemoryRepository keeps continuations in a map. Stored values are
// copies, so callers can mutate what they get back.
type InMemoryRepository struct {
	mu            sync.RWMutex
	continuations map[string]*overtime.Continuation
	timeProvider  TimeProvider
}

// NewInMemoryRepository creates an empty in-memory store
func NewInMemoryRepository(timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}
	return &InMemoryRepository{
		continuations: make(map[string]*overtime.Continuation),
		timeProvider:  timeProvider,
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, c *overtime.Continuation) error {
	if c == nil {
		return abilerr.InvalidArgument("continuation cannot be nil")
	}
	if c.ActorID == "" {
		return abilerr.InvalidArgument("actor ID is required")
	}

	stamp(c, r.timeProvider)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.continuations[c.ActorID] = clone(c)
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, actorID string) (*overtime.Continuation, error) {
	if actorID == "" {
		return nil, abilerr.InvalidArgument("actor ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.continuations[actorID]
	if !exists {
		return nil, abilerr.NotFoundf("no continuation for actor '%s'", actorID).
			WithMeta("actor_id", actorID)
	}
	return clone(c), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, actorID string) error {
	if actorID == "" {
		return abilerr.InvalidArgument("actor ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.continuations[actorID]; !exists {
		return abilerr.NotFoundf("no continuation for actor '%s'", actorID).
			WithMeta("actor_id", actorID)
	}
	delete(r.continuations, actorID)
	return nil
}

func (r *InMemoryRepository) ListRunning(ctx context.Context) ([]*overtime.Continuation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*overtime.Continuation{}
	for _, c := range r.continuations {
		if c.IsRunning() {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActorID < out[j].ActorID })
	return out, nil
}

func stamp(c *overtime.Continuation, tp TimeProvider) {
	now := tp.Now()
	if c.StartedAt.IsZero() {
		c.StartedAt = now
	}
	c.UpdatedAt = now
}

func clone(c *overtime.Continuation) *overtime.Continuation {
	cp := *c
	cp.Resources = append(cp.Resources[:0:0], c.Resources...)
	return &cp
}
