package overtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

const runningKey = "overtime:running"

func continuationKey(actorID string) string {
	return fmt.Sprintf("overtime:%s", actorID)
}

type redisRepo struct {
	client       *redis.Client
	timeProvider TimeProvider
}

// NewRedis creates a Redis backed store. Each continuation is a JSON value
// under overtime:<actor>; running actors are indexed in a set.
func NewRedis(redisClient *redis.Client, timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}
	return &redisRepo{
		client:       redisClient,
		timeProvider: timeProvider,
	}
}

func (r *redisRepo) Save(ctx context.Context, c *overtime.Continuation) error {
	if c == nil {
		return abilerr.InvalidArgument("continuation cannot be nil")
	}
	if c.ActorID == "" {
		return abilerr.InvalidArgument("actor ID is required")
	}

	stamp(c, r.timeProvider)

	jsonData, err := json.Marshal(c)
	if err != nil {
		return abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to marshal continuation")
	}

	// Value and index change together
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, continuationKey(c.ActorID), string(jsonData), 0)
	if c.IsRunning() {
		pipe.SAdd(ctx, runningKey, c.ActorID)
	} else {
		pipe.SRem(ctx, runningKey, c.ActorID)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to save continuation in Redis")
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, actorID string) (*overtime.Continuation, error) {
	if actorID == "" {
		return nil, abilerr.InvalidArgument("actor ID is required")
	}

	jsonData, err := r.client.Get(ctx, continuationKey(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, abilerr.NotFoundf("no continuation for actor '%s'", actorID).
				WithMeta("actor_id", actorID)
		}
		return nil, abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to get continuation from Redis")
	}

	var c overtime.Continuation
	if err := json.Unmarshal(jsonData, &c); err != nil {
		return nil, abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to unmarshal continuation").
			WithMeta("actor_id", actorID)
	}

	return &c, nil
}

func (r *redisRepo) Delete(ctx context.Context, actorID string) error {
	if actorID == "" {
		return abilerr.InvalidArgument("actor ID is required")
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, continuationKey(actorID))
	pipe.SRem(ctx, runningKey, actorID)
	if _, err := pipe.Exec(ctx); err != nil {
		return abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to delete continuation from Redis")
	}
	if del.Val() == 0 {
		return abilerr.NotFoundf("no continuation for actor '%s'", actorID).
			WithMeta("actor_id", actorID)
	}

	return nil
}

// ListRunning returns every running continuation ordered by actor. Index
// entries whose continuation is gone are dropped from the index.
func (r *redisRepo) ListRunning(ctx context.Context) ([]*overtime.Continuation, error) {
	actorIDs, err := r.client.SMembers(ctx, runningKey).Result()
	if err != nil {
		return nil, abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to list running continuations")
	}

	found := make([]*overtime.Continuation, len(actorIDs))
	stale := make([]bool, len(actorIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range actorIDs {
		i, id := i, id
		g.Go(func() error {
			c, err := r.Get(gctx, id)
			if abilerr.IsNotFound(err) {
				stale[i] = true
				return nil
			}
			if err != nil {
				return abilerr.Wrapf(err, "failed to get continuation %s", id)
			}
			found[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var gone []any
	continuations := make([]*overtime.Continuation, 0, len(actorIDs))
	for i, c := range found {
		if stale[i] {
			gone = append(gone, actorIDs[i])
			continue
		}
		continuations = append(continuations, c)
	}
	if len(gone) > 0 {
		if err := r.client.SRem(ctx, runningKey, gone...).Err(); err != nil {
			return nil, abilerr.WrapWithCode(err, abilerr.CodeInternal, "failed to drop stale running entries")
		}
	}

	sort.Slice(continuations, func(i, j int) bool {
		return continuations[i].ActorID < continuations[j].ActorID
	})
	return continuations, nil
}
