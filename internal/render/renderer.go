package render

import "sync"

// Renderer paints a complete scene. Paint has no return value; renderers
// that can fail record the error and report it from their own accessor.
type Renderer interface {
	Paint(s Scene)
}

type RendererFunc func(Scene)

func (f RendererFunc) Paint(s Scene) { f(s) }

type discard struct{}

func (discard) Paint(Scene) {}

// Discard drops every frame.
var Discard Renderer = discard{}

// Multi paints each scene on every renderer in order.
func Multi(rs ...Renderer) Renderer {
	out := make(multi, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multi []Renderer

func (m multi) Paint(s Scene) {
	for _, r := range m {
		r.Paint(s)
	}
}

// Recorder keeps the most recent frames, up to Capacity (0 = unbounded).
type Recorder struct {
	Capacity int

	mu     sync.Mutex
	frames []Scene
	total  int
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{Capacity: capacity}
}

func (r *Recorder) Paint(s Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.frames = append(r.frames, s)
	if r.Capacity > 0 && len(r.frames) > r.Capacity {
		r.frames = r.frames[len(r.frames)-r.Capacity:]
	}
}

func (r *Recorder) Frames() []Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Scene, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the newest frame.
func (r *Recorder) Last() (Scene, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Scene{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Total counts every frame painted, including ones evicted by Capacity.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
	r.total = 0
}
