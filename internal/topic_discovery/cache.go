package topic_discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "topics:term:" // cached results per lowercased term

// Cache stores processed topic counts in Redis so repeated searches skip the
// corpus scan.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached counts for a term, or (nil, false, nil) on a miss.
func (c *Cache) Get(ctx context.Context, term string) ([]TopicCount, bool, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+term).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var topics []TopicCount
	if err := json.Unmarshal([]byte(data), &topics); err != nil {
		// stale or corrupt entry; treat as a miss
		return nil, false, nil
	}
	return topics, true, nil
}

func (c *Cache) Set(ctx context.Context, term string, topics []TopicCount) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+term, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
