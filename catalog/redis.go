package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"

	"techquiz-core/models"
)

// RedisCache is a PageCache backed by Redis, for deployments where several
// processes share one catalog view. Failures degrade to cache misses.
type RedisCache struct {
	client *redis_v9.Client
}

func NewRedisCache(client *redis_v9.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.QuizPage, bool) {
	encoded, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var page models.QuizPage
	if err := json.Unmarshal(encoded, &page); err != nil {
		log.Printf("Discarding undecodable catalog cache entry %s: %v", key, err)
		return nil, false
	}
	return &page, true
}

func (c *RedisCache) Set(ctx context.Context, key string, page *models.QuizPage, ttl time.Duration) {
	if page == nil || ttl <= 0 {
		return
	}
	encoded, err := json.Marshal(page)
	if err != nil {
		log.Printf("Error encoding catalog page for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		log.Printf("Error caching catalog page %s: %v", key, err)
	}
}
