// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

/*
TestRedisFailureTracker verifies the counter, its TTL and reset against a real RESP server.
*/
func TestRedisFailureTracker(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	tracker := auth.NewRedisFailureTracker(client, time.Minute)

	count, err := tracker.Count(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = tracker.Increment(ctx, "ana@example.com")
	require.NoError(t, err)
	count, err = tracker.Increment(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	key := constants.RedisPrefixLoginFailures + "ana@example.com"
	assert.Equal(t, time.Minute, server.TTL(key))

	count, err = tracker.Count(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	server.FastForward(time.Minute + time.Second)
	count, err = tracker.Count(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, _ = tracker.Increment(ctx, "ana@example.com")
	require.NoError(t, tracker.Reset(ctx, "ana@example.com"))
	assert.False(t, server.Exists(key))
}

/*
TestRedisFailureTracker_Unavailable verifies that connectivity errors surface.
*/
func TestRedisFailureTracker_Unavailable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	tracker := auth.NewRedisFailureTracker(client, time.Minute)
	_, err := tracker.Count(context.Background(), "ana@example.com")
	assert.Error(t, err)
}
