package timing

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

const (
	// Floor keeps frames visible at the highest speed.
	Floor = 20 * time.Millisecond

	MinSpeed     = 0.2
	MaxSpeed     = 5.0
	DefaultSpeed = 1.0
)

type Controller struct {
	clock Clock
	speed atomic.Uint64 // float64 bits
}

func New(clock Clock) *Controller {
	if clock == nil {
		clock = WallClock()
	}
	c := &Controller{clock: clock}
	c.speed.Store(math.Float64bits(DefaultSpeed))
	return c
}

func (c *Controller) Clock() Clock { return c.clock }

// ClampSpeed maps any requested multiplier into [MinSpeed, MaxSpeed].
func ClampSpeed(m float64) float64 {
	if math.IsNaN(m) || m < MinSpeed {
		return MinSpeed
	}
	if m > MaxSpeed {
		return MaxSpeed
	}
	return m
}

// SetSpeed stores a new multiplier. It affects only waits scheduled after
// the call and returns the value actually stored.
func (c *Controller) SetSpeed(m float64) float64 {
	m = ClampSpeed(m)
	c.speed.Store(math.Float64bits(m))
	return m
}

func (c *Controller) Speed() float64 {
	return math.Float64frombits(c.speed.Load())
}

// ScaledDelay returns max(Floor, base/speed).
func (c *Controller) ScaledDelay(base time.Duration) time.Duration {
	return Scale(base, c.Speed())
}

// Scale is ScaledDelay for an explicit multiplier.
func Scale(base time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		speed = MinSpeed
	}
	d := time.Duration(float64(base) / speed)
	if d < Floor {
		return Floor
	}
	return d
}

// Suspend waits ScaledDelay(base) on the controller's clock. It returns
// ctx.Err() if the context ends first.
func (c *Controller) Suspend(ctx context.Context, base time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(c.ScaledDelay(base)):
		return nil
	}
}
