// Package testutil provides deterministic test doubles shared across
// packages.
package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable wall clock for budget tests.
//
// Unlike time.Now, Clock only moves when told to, so budget expiry can be
// triggered at an exact poll boundary and tests never sleep.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, though search runs are single-threaded in practice.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock frozen at an arbitrary fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Unix(1700000000, 0)}
}

// NewSteppingClock creates a clock that advances by step on every Now
// call. A stepping clock makes a wall-clock budget expire after a known
// number of polls.
func NewSteppingClock(step time.Duration) *Clock {
	c := NewClock()
	c.step = step
	return c
}

// Now returns the current instant, advancing first if a step is set.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
