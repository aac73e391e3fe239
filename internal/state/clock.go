package state

import (
	"sync/atomic"
	"time"
)

// Clock yields node timestamps in milliseconds.
type Clock interface {
	Now() int64
}

// MonotonicClock counts milliseconds since it was created, immune to wall clock jumps.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	now atomic.Int64
}

func (c *ManualClock) Now() int64 { return c.now.Load() }

// Advance moves the clock forward by ms and returns the new time.
func (c *ManualClock) Advance(ms int64) int64 {
	return c.now.Add(ms)
}

func (c *ManualClock) Set(ms int64) { c.now.Store(ms) }
