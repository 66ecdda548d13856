package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	TTLPageTree = 5 * time.Minute
	TTLDefault  = 5 * time.Minute
)

const (
	KeyPageTree = "pages:tree"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Service stores JSON-encoded values under string keys.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	IsAvailable() bool
}

type redisCache struct {
	client *redis.Client
}

// NewRedisService returns a Redis-backed cache. A nil client yields a cache
// that never hits.
func NewRedisService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// memoryCache keeps encoded values in process. Values are stored as JSON so
// callers get the same copy semantics as with Redis.
type memoryCache struct {
	cache *gocache.Cache
}

func NewMemoryService() Service {
	return &memoryCache{cache: gocache.New(TTLDefault, 10*time.Minute)}
}

func (c *memoryCache) IsAvailable() bool {
	return true
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	x, found := c.cache.Get(key)
	if !found {
		return ErrMiss
	}
	return json.Unmarshal(x.([]byte), dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Set(key, data, ttl)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Delete(k)
	}
	return nil
}
