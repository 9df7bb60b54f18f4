package caches

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/storage"
)

// RedisCache is a ListingCache backed by Redis, shared across instances.
type RedisCache struct {
	client *storage.RedisClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache wraps an established Redis connection.
func NewRedisCache(client *storage.RedisClient, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (rc *RedisCache) Name() string {
	return "REDIS"
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := rc.client.GetBytes(ctx, key)
	if err != nil {
		rc.logger.Warn("redis cache lookup failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	return data, true
}

func (rc *RedisCache) Set(ctx context.Context, key string, data []byte) {
	if err := rc.client.SetBytes(ctx, key, data, rc.ttl); err != nil {
		rc.logger.Warn("redis cache store failed", zap.String("key", key), zap.Error(err))
	}
}

func (rc *RedisCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Delete(ctx, key); err != nil {
		rc.logger.Warn("redis cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
