// Package ratelimit provides a Redis-backed request rate limiter used by
// the HTTP layer to blunt vote and webhook bursts before they reach the
// database.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quokkalist/internal/shared/logger"
)

// RedisRateLimiter implements a sliding window counter per key.
type RedisRateLimiter struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisRateLimiter(client *redis.Client, log logger.Interface) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		logger: log.Named("ratelimit"),
	}
}

// Allow reports whether key may perform another request within the
// window. Redis being down fails open: limiting is a shield, not a
// correctness guarantee (the database rules still apply).
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
		return true, nil
	}

	return countCmd.Val() < int64(limit), nil
}
