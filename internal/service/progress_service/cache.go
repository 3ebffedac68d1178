package progress_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

const progressCacheTTL = 5 * time.Minute

type ProgressCache interface {
	// hit is false when nothing is cached for the user
	GetUserProgress(ctx context.Context, userID uuid.UUID) (progress []Progress, hit bool, err error)
	SetUserProgress(ctx context.Context, userID uuid.UUID, progress []Progress) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

type redisProgressCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProgressCache(client *redis.Client) ProgressCache {
	return &redisProgressCache{
		client: client,
		ttl:    progressCacheTTL,
	}
}

func progressCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("progress:%s", userID)
}

func (c *redisProgressCache) GetUserProgress(
	ctx context.Context,
	userID uuid.UUID,
) ([]Progress, bool, error) {
	cachedData, err := c.client.Get(ctx, progressCacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, quest_errors.WrapIPCError(err)
	}

	var progress []Progress
	if err := json.Unmarshal(cachedData, &progress); err != nil {
		// treat a corrupt entry as a miss, it gets overwritten
		return nil, false, nil
	}
	return progress, true, nil
}

func (c *redisProgressCache) SetUserProgress(
	ctx context.Context,
	userID uuid.UUID,
	progress []Progress,
) error {
	jsonData, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	err = c.client.Set(ctx, progressCacheKey(userID), jsonData, c.ttl).Err()
	if err != nil {
		return quest_errors.WrapIPCError(err)
	}
	return nil
}

func (c *redisProgressCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	err := c.client.Del(ctx, progressCacheKey(userID)).Err()
	if err != nil {
		return quest_errors.WrapIPCError(err)
	}
	return nil
}

// used when no redis is configured
type noopProgressCache struct{}

func (noopProgressCache) GetUserProgress(context.Context, uuid.UUID) ([]Progress, bool, error) {
	return nil, false, nil
}

func (noopProgressCache) SetUserProgress(context.Context, uuid.UUID, []Progress) error {
	return nil
}

func (noopProgressCache) InvalidateUser(context.Context, uuid.UUID) error {
	return nil
}
