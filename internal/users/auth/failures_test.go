// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestMemoryFailureTracker verifies counting, the sliding window and reset.
*/
func TestMemoryFailureTracker(t *testing.T) {
	ctx := context.Background()
	current := time.Now()

	tracker := NewMemoryFailureTracker(time.Minute)
	tracker.now = func() time.Time { return current }

	count, err := tracker.Count(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)

	for want := int64(1); want <= 3; want++ {
		count, err = tracker.Increment(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// Each failure restarts the window.
	current = current.Add(50 * time.Second)
	count, _ = tracker.Increment(ctx, "ana@example.com")
	assert.Equal(t, int64(4), count)

	current = current.Add(50 * time.Second)
	count, _ = tracker.Count(ctx, "ana@example.com")
	assert.Equal(t, int64(4), count)

	current = current.Add(time.Minute)
	count, _ = tracker.Count(ctx, "ana@example.com")
	assert.Zero(t, count)

	_, _ = tracker.Increment(ctx, "bob@example.com")
	require.NoError(t, tracker.Reset(ctx, "bob@example.com"))
	count, _ = tracker.Count(ctx, "bob@example.com")
	assert.Zero(t, count)
}

/*
TestFailureKey verifies that case and surrounding spaces share one counter.
*/
func TestFailureKey(t *testing.T) {
	assert.Equal(t, "ana@example.com", failureKey("  Ana@Example.COM "))
}
