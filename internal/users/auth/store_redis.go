// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
)

// RedisFailureTracker implements [FailureTracker] with one expiring counter
// per email, shared by every API instance.
type RedisFailureTracker struct {
	client redis.Cmdable
	window time.Duration
}

// NewRedisFailureTracker creates a Redis-backed FailureTracker.
func NewRedisFailureTracker(client redis.Cmdable, window time.Duration) *RedisFailureTracker {
	return &RedisFailureTracker{client: client, window: window}
}

func failureRedisKey(key string) string {
	return constants.RedisPrefixLoginFailures + key
}

/*
Count returns the current failure count of key.

Returns:
  - int64: Zero when the key is absent or expired
  - error: Connectivity errors
*/
func (tracker *RedisFailureTracker) Count(context context.Context, key string) (int64, error) {
	count, err := tracker.client.Get(context, failureRedisKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_failures_get_failed: %w", err)
	}
	return count, nil
}

/*
Increment adds one failure and restarts the window of key.

The increment and the expiry run in a single MULTI/EXEC, so a counter never
survives without a TTL.
*/
func (tracker *RedisFailureTracker) Increment(context context.Context, key string) (int64, error) {
	redisKey := failureRedisKey(key)

	var incr *redis.IntCmd
	_, err := tracker.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, redisKey)
		pipe.Expire(context, redisKey, tracker.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_login_failures_incr_failed: %w", err)
	}
	return incr.Val(), nil
}

// Reset removes the counter of key.
func (tracker *RedisFailureTracker) Reset(context context.Context, key string) error {
	if err := tracker.client.Del(context, failureRedisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis_login_failures_del_failed: %w", err)
	}
	return nil
}
