package model

import "math/rand"

const (
	MinSize     = 5
	MaxSize     = 30
	DefaultSize = 12

	// NodeRadius is the drawn radius of a graph node.
	NodeRadius = 22.0
)

// Layout is the logical drawing surface items are positioned on.
type Layout struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultLayout() Layout {
	return Layout{Width: 800, Height: 420}
}

// ClampSize maps user input onto [MinSize, MaxSize]; non-positive input
// falls back to DefaultSize.
func ClampSize(n int) int {
	if n <= 0 {
		return DefaultSize
	}
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

// RandomValues returns n values in [5, 104].
func RandomValues(n int, rng *rand.Rand) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = rng.Intn(100) + 5
	}
	return values
}
