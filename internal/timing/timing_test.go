package timing

import (
	"context"
	"testing"
	"time"
)

func TestScaledDelay(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		base  time.Duration
		want  time.Duration
	}{
		{"unit speed keeps base", 1, 160 * time.Millisecond, 160 * time.Millisecond},
		{"double speed halves", 2, 160 * time.Millisecond, 80 * time.Millisecond},
		{"half speed doubles", 0.5, 160 * time.Millisecond, 320 * time.Millisecond},
		{"floor at unit speed", 1, 10 * time.Millisecond, Floor},
		{"floor at double speed", 2, 30 * time.Millisecond, Floor},
		{"max speed", 5, 420 * time.Millisecond, 84 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(NewInstantClock())
			c.SetSpeed(tt.speed)
			if got := c.ScaledDelay(tt.base); got != tt.want {
				t.Errorf("ScaledDelay(%v) at %.1fx = %v, want %v", tt.base, tt.speed, got, tt.want)
			}
		})
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinSpeed},
		{-3, MinSpeed},
		{0.1, MinSpeed},
		{1.5, 1.5},
		{50, MaxSpeed},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSuspendAdvancesClock(t *testing.T) {
	clock := NewInstantClock()
	c := New(clock)
	c.SetSpeed(2)

	if err := c.Suspend(context.Background(), 260*time.Millisecond); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if got := clock.Elapsed(); got != 130*time.Millisecond {
		t.Errorf("expected 130ms elapsed, got %v", got)
	}
}

func TestSpeedChangeAffectsLaterWaits(t *testing.T) {
	clock := NewInstantClock()
	c := New(clock)

	_ = c.Suspend(context.Background(), 100*time.Millisecond)
	c.SetSpeed(4)
	_ = c.Suspend(context.Background(), 100*time.Millisecond)

	if got := clock.Elapsed(); got != 125*time.Millisecond {
		t.Errorf("expected 125ms elapsed, got %v", got)
	}
}

func TestSuspendCanceled(t *testing.T) {
	c := New(WallClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Suspend(ctx, time.Hour); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSuspendWallClock(t *testing.T) {
	c := New(nil)
	c.SetSpeed(MaxSpeed)

	start := time.Now()
	if err := c.Suspend(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < Floor {
		t.Errorf("expected at least %v, waited %v", Floor, elapsed)
	}
}
