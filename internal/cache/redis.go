package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKey = "teddys:feed:latest"

type redisCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	now         func() time.Time
}

// NewRedisCache shares the cached feed across server instances. The key is
// stored without a Redis expiry: stale entries must survive so they can be
// served when a regeneration fails.
func NewRedisCache(redisClient *redis.Client, ttl time.Duration) FeedCache {
	return &redisCache{
		redisClient: redisClient,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (c *redisCache) Get(ctx context.Context) (*Entry, bool, error) {
	val, err := c.redisClient.Get(ctx, redisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached feed: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached feed: %w", err)
	}

	fresh := c.now().Sub(entry.GeneratedAt) < c.ttl
	return &entry, fresh, nil
}

func (c *redisCache) Set(ctx context.Context, entry Entry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode feed for cache: %w", err)
	}

	if err := c.redisClient.Set(ctx, redisKey, b, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache feed: %w", err)
	}
	return nil
}
