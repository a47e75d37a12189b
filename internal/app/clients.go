package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/practice-backend/internal/platform/cache"
	"github.com/yungbote/practice-backend/internal/platform/logger"
	"github.com/yungbote/practice-backend/internal/platform/redisdb"
	"github.com/yungbote/practice-backend/internal/realtime/bus"
)

// Clients holds the external connections. Without REDIS_ADDR the cache and
// bus fall back to no-op implementations.
type Clients struct {
	Redis *goredis.Client
	Cache cache.Cache
	Bus   bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set; question-set cache and event bus disabled")
		return Clients{Cache: cache.Noop(), Bus: bus.Noop()}, nil
	}

	rdb, err := redisdb.Open(log, cfg.RedisAddr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	b, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init redis bus: %w", err)
	}
	return Clients{
		Redis: rdb,
		Cache: cache.NewRedisCache(rdb, cfg.RedisCachePrefix, log),
		Bus:   b,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
