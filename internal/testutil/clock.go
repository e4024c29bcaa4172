// Package testutil provides shared test fixtures: a fixed clock and a
// small item dictionary mirroring a slice of the production items.json.
package testutil

import (
	"sync"
	"time"
)

// FixedClock starts at a predetermined instant and advances by a fixed
// step on every Now() call, so tests get deterministic, strictly ordered
// timestamps. A zero step freezes the clock entirely.
//
// Thread-safe via internal mutex.
type FixedClock struct {
	mu      sync.Mutex
	instant time.Time
	step    time.Duration
}

// NewFixedClock creates a clock that starts at instant and advances by
// step on every Now() call. A zero step freezes the clock.
func NewFixedClock(instant time.Time, step time.Duration) *FixedClock {
	return &FixedClock{instant: instant, step: step}
}

// Now returns the current instant and advances the clock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.instant
	c.instant = c.instant.Add(c.step)
	return now
}
