package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"party-site/internal/config"
	"party-site/pkg/logger"
)

const (
	menuKey     = "menu:all"
	messagesKey = "messages:all"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use). Nil when
// Redis is unreachable; the list endpoints then always go to the store.
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "Redis ping failed; running without cache", "error", err)
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

// GetRawMenu reads the cached menu JSON. Returns (nil, false) on miss or error.
func GetRawMenu(ctx context.Context) ([]byte, bool) {
	return getRaw(ctx, menuKey)
}

// SetRawMenu caches the menu JSON with the configured TTL.
func SetRawMenu(ctx context.Context, b []byte) {
	setRaw(ctx, menuKey, b)
}

// InvalidateMenu drops the menu cache so the next read hits the store.
func InvalidateMenu(ctx context.Context) {
	invalidate(ctx, menuKey)
}

// GetRawMessages reads the cached messages JSON. Returns (nil, false) on miss
// or error.
func GetRawMessages(ctx context.Context) ([]byte, bool) {
	return getRaw(ctx, messagesKey)
}

// SetRawMessages caches the messages JSON with the configured TTL.
func SetRawMessages(ctx context.Context, b []byte) {
	setRaw(ctx, messagesKey, b)
}

// InvalidateMessages drops the messages cache.
func InvalidateMessages(ctx context.Context) {
	invalidate(ctx, messagesKey)
}

func getRaw(ctx context.Context, key string) ([]byte, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get failed", "error", err, "key", key)
		return nil, false
	}
	return b, true
}

func setRaw(ctx context.Context, key string, b []byte) {
	c := Client(ctx)
	if c == nil {
		return
	}
	ttl := time.Duration(config.Get().CacheTTL) * time.Second
	if err := c.Set(ctx, key, b, ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set failed", "error", err, "key", key)
	}
}

func invalidate(ctx context.Context, key string) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, key).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate failed", "error", err, "key", key)
	}
}
