// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tasker/internal/platform/constants"
)

// recordFailureScript increments the counter and starts the window on the
// first failure, in one round trip. A key left without a TTL gets one too.
var recordFailureScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisAttemptLimiter implements AttemptLimiter with expiring Redis counters.
//
// The window is fixed: it starts at the first failure and the counter
// disappears when it lapses, unlocking the username.
type RedisAttemptLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewRedisAttemptLimiter creates a limiter allowing maxAttempts failures per window.
func NewRedisAttemptLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func attemptsKey(key string) string {
	return constants.RedisPrefixLoginAttempts + key
}

/*
Locked reports the remaining lockout for key.

Returns:
  - time.Duration: zero when fewer than maxAttempts failures are recorded
  - error: connectivity errors
*/
func (limiter *RedisAttemptLimiter) Locked(context context.Context, key string) (time.Duration, error) {
	redisKey := attemptsKey(key)

	count, err := limiter.client.Get(context, redisKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_attempts_get_failed: %w", err)
	}

	if count < limiter.maxAttempts {
		return 0, nil
	}

	remaining, err := limiter.client.PTTL(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_attempts_ttl_failed: %w", err)
	}

	// A key without TTL (-1) or already gone (-2) still blocks for one window at most.
	if remaining <= 0 {
		return limiter.window, nil
	}

	return remaining, nil
}

// RecordFailure counts one failed attempt for key.
func (limiter *RedisAttemptLimiter) RecordFailure(context context.Context, key string) error {
	err := recordFailureScript.Run(context, limiter.client,
		[]string{attemptsKey(key)},
		limiter.window.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("redis_attempts_record_failed: %w", err)
	}

	return nil
}

// Reset forgets all failures recorded for key.
func (limiter *RedisAttemptLimiter) Reset(context context.Context, key string) error {
	if err := limiter.client.Del(context, attemptsKey(key)).Err(); err != nil {
		return fmt.Errorf("redis_attempts_reset_failed: %w", err)
	}

	return nil
}

// # No-op Limiter

// NoopAttemptLimiter never locks anyone out. It is used when Redis is not
// configured or throttling is disabled.
type NoopAttemptLimiter struct{}

// Locked always reports an unlocked key.
func (NoopAttemptLimiter) Locked(context.Context, string) (time.Duration, error) { return 0, nil }

// RecordFailure discards the failure.
func (NoopAttemptLimiter) RecordFailure(context.Context, string) error { return nil }

// Reset does nothing.
func (NoopAttemptLimiter) Reset(context.Context, string) error { return nil }
