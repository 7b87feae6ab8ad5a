package timex

import (
	"sync"
	"time"
)

// Clock provides the current time. Tests substitute a ManualClock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock whose time only moves when told to.
type ManualClock struct {
	mu      sync.Mutex
	current time.Time
}

func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{current: t}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// UnixMilli returns t as milliseconds since the epoch, the unit records use
// for their creation time.
func UnixMilli(c Clock) int64 {
	return c.Now().UnixMilli()
}
