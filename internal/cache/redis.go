package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
)

var (
	client *redis.Client
	once   sync.Once
)

// Initialize connects to Redis. The cache is an optional dependency:
// a failed connection is logged and subsequent operations degrade to
// misses, so the server keeps running without it.
func Initialize(cfg *config.Config) {
	once.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caching and rate limiting degraded",
				zap.Error(err))
		}
	})
}

// Client returns the shared Redis client, or nil when Initialize has
// not run.
func Client() *redis.Client {
	return client
}

// Get fetches a string value. Missing keys and connection errors both
// return ok=false.
func Get(ctx context.Context, key string) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetEx stores a value with a TTL. Errors are logged, not returned:
// cache writes are best effort.
func SetEx(ctx context.Context, key, value string, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a key.
func Delete(ctx context.Context, key string) {
	if client == nil {
		return
	}
	_ = client.Del(ctx, key).Err()
}

// Close shuts the connection down.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
