package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds ranked pages in Redis for a short TTL. Misses and Redis errors
// both fall through to a live search; the cache is strictly best-effort.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

func cacheKey(filter EntityType, query string, page, limit int) string {
	return fmt.Sprintf("search:%s:%s:%d:%d", filter, query, page, limit)
}

func (c *Cache) Get(ctx context.Context, filter EntityType, query string, page, limit int) (*Page, bool) {
	raw, err := c.Client.Get(ctx, cacheKey(filter, query, page, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached Page
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (c *Cache) Set(ctx context.Context, filter EntityType, query string, page, limit int, result *Page) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.Client.Set(ctx, cacheKey(filter, query, page, limit), raw, c.TTL)
}
