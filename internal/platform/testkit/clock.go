package testkit

import (
	"sync"
	"time"
)

// Clock is a manual time source for code with a `now func() time.Time` seam
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock starts a clock at t
func NewClock(t time.Time) *Clock { return &Clock{t: t} }

// Now returns the current reading
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Set jumps the clock to t
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
