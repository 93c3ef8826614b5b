// Package store holds the Redis connection plumbing shared by the wishlist
// and activity stores.
package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to the Redis named by redisURL. Returns nil when
// the URL is unparseable or the server is unreachable; callers treat a nil
// client as "redis unavailable" and fall back to in-memory stores.
func NewRedisClient(redisURL string, logger *zap.Logger) *redis.Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("failed to parse redis URL", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("redis connected", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))
	return client
}

// IsAvailable reports whether the client is usable.
func IsAvailable(client *redis.Client) bool {
	return client != nil
}
