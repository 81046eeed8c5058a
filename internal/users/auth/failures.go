// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

type failureEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryFailureTracker is the single-instance [FailureTracker] used when no
// Redis is configured. Every failure extends the window of its key.
type MemoryFailureTracker struct {
	mu      sync.Mutex
	entries map[string]failureEntry
	window  time.Duration
	now     func() time.Time
}

// NewMemoryFailureTracker creates a tracker remembering failures for window.
func NewMemoryFailureTracker(window time.Duration) *MemoryFailureTracker {
	return &MemoryFailureTracker{
		entries: make(map[string]failureEntry),
		window:  window,
		now:     time.Now,
	}
}

// Count implements [FailureTracker].
func (tracker *MemoryFailureTracker) Count(_ context.Context, key string) (int64, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	entry, ok := tracker.live(key)
	if !ok {
		return 0, nil
	}
	return entry.count, nil
}

// Increment implements [FailureTracker].
func (tracker *MemoryFailureTracker) Increment(_ context.Context, key string) (int64, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	entry, _ := tracker.live(key)
	entry.count++
	entry.expiresAt = tracker.now().Add(tracker.window)
	tracker.entries[key] = entry

	// Expired keys are only dropped when touched, keep the map bounded.
	if len(tracker.entries) > 10000 {
		tracker.sweep()
	}
	return entry.count, nil
}

// Reset implements [FailureTracker].
func (tracker *MemoryFailureTracker) Reset(_ context.Context, key string) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	delete(tracker.entries, key)
	return nil
}

func (tracker *MemoryFailureTracker) live(key string) (failureEntry, bool) {
	entry, ok := tracker.entries[key]
	if !ok {
		return failureEntry{}, false
	}
	if !tracker.now().Before(entry.expiresAt) {
		delete(tracker.entries, key)
		return failureEntry{}, false
	}
	return entry, true
}

func (tracker *MemoryFailureTracker) sweep() {
	now := tracker.now()
	for key, entry := range tracker.entries {
		if !now.Before(entry.expiresAt) {
			delete(tracker.entries, key)
		}
	}
}
