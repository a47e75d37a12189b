package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// Cache is a JSON value cache.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	rdb    *goredis.Client
	prefix string
	log    *logger.Logger
}

func NewRedisCache(rdb *goredis.Client, prefix string, log *logger.Logger) Cache {
	return &redisCache{rdb: rdb, prefix: prefix, log: log.With("service", "RedisCache")}
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	return c.rdb.Del(ctx, full...).Err()
}

type noopCache struct{}

// Noop never stores anything; every Get is a miss.
func Noop() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error { return nil }

// GetOrLoad reads key from c, or calls load and stores its result for ttl.
// Cache failures are logged and fall through to load.
func GetOrLoad[T any](ctx context.Context, c Cache, log *logger.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T
	if c == nil {
		return load(ctx)
	}
	hit, err := c.Get(ctx, key, &out)
	if err != nil && log != nil {
		log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit && err == nil {
		return out, nil
	}
	out, err = load(ctx)
	if err != nil {
		return out, err
	}
	if err := c.Set(ctx, key, out, ttl); err != nil && log != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
	return out, nil
}
