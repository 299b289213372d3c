// Package metrics measures how ordered an array is as a run animates it.
package metrics

import (
	"sync"

	"github.com/san-kum/algoviz/internal/render"
)

type Metric interface {
	Name() string
	Observe(values []int)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the array metrics.
func Defaults() []Metric {
	return []Metric{NewInversions(), NewSortedness(), NewChurn()}
}

// Tracker feeds every bar scene it paints to its metrics. Graph scenes
// are ignored.
type Tracker struct {
	mu      sync.Mutex
	metrics []Metric
	frames  int
}

func NewTracker(ms ...Metric) *Tracker {
	if len(ms) == 0 {
		ms = Defaults()
	}
	return &Tracker{metrics: ms}
}

func (t *Tracker) Paint(s render.Scene) {
	if s.Kind != render.KindBars {
		return
	}
	values := s.Values()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames++
	for _, m := range t.metrics {
		m.Observe(values)
	}
}

// Frames is the number of bar scenes observed.
func (t *Tracker) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

func (t *Tracker) Values() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64, len(t.metrics))
	for _, m := range t.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames = 0
	for _, m := range t.metrics {
		m.Reset()
	}
}

var _ render.Renderer = (*Tracker)(nil)
