// Package tween interpolates item positions over a fixed wall-clock duration.
package tween

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/algoviz/internal/timing"
)

// FrameInterval paces frames at roughly 60 per second.
const FrameInterval = time.Second / 60

// Item is anything with a scalar position moving toward a target.
type Item interface {
	Position() float64
	Target() float64
	SetPosition(x float64)
}

type Animator struct {
	Clock         timing.Clock
	FrameInterval time.Duration
}

func NewAnimator(clock timing.Clock) *Animator {
	if clock == nil {
		clock = timing.WallClock()
	}
	return &Animator{Clock: clock, FrameInterval: FrameInterval}
}

// EaseInOutCubic maps t in [0,1] onto a cubic ease-in-out curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Animate moves every item from its current position to its target over d,
// calling onFrame after each frame's positions are applied. It returns once
// the final frame (t == 1) has been painted, or with ctx.Err() if the
// context ends first; on cancellation positions stay where the last frame
// left them.
//
// Start and target positions are captured once, when Animate is called.
func (a *Animator) Animate(ctx context.Context, items []Item, d time.Duration, onFrame func()) error {
	start := make([]float64, len(items))
	target := make([]float64, len(items))
	for i, it := range items {
		start[i] = it.Position()
		target[i] = it.Target()
	}

	interval := a.FrameInterval
	if interval <= 0 {
		interval = FrameInterval
	}

	begin := a.Clock.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.Clock.After(interval):
		}

		t := 1.0
		if d > 0 {
			t = math.Min(1, float64(a.Clock.Now().Sub(begin))/float64(d))
		}
		ease := EaseInOutCubic(t)
		for i, it := range items {
			it.SetPosition(lerp(start[i], target[i], ease))
		}
		if onFrame != nil {
			onFrame()
		}
		if t >= 1 {
			return nil
		}
	}
}
