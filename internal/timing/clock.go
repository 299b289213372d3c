package timing

import (
	"sync"
	"time"
)

// Clock is the scheduling facility suspensions and tweens run on.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type wallClock struct{}

// WallClock returns a Clock backed by package time.
func WallClock() Clock { return wallClock{} }

func (wallClock) Now() time.Time                         { return time.Now() }
func (wallClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// InstantClock keeps virtual time. After advances the virtual time by d and
// fires immediately, so a full run completes without sleeping while every
// frame still observes consistent elapsed times.
type InstantClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewInstantClock() *InstantClock {
	return &InstantClock{now: time.Unix(0, 0)}
}

func (c *InstantClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *InstantClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Elapsed reports virtual time passed since the clock was created.
func (c *InstantClock) Elapsed() time.Duration {
	return c.Now().Sub(time.Unix(0, 0))
}
