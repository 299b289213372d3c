package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/render"
)

// updateMsg carries everything the bridge collected since the last wait.
type updateMsg struct {
	scene      *render.Scene
	message    *string
	controls   *bool
	bridgeDone bool
}

// Bridge feeds scenes, messages and control state from the run goroutine
// into the Bubble Tea loop. Only the latest value of each is kept, so a
// slow UI drops intermediate frames instead of blocking the engine.
type Bridge struct {
	mu       sync.Mutex
	scene    *render.Scene
	message  *string
	controls *bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (b *Bridge) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) Paint(s render.Scene) {
	b.mu.Lock()
	b.scene = &s
	b.mu.Unlock()
	b.signal()
}

func (b *Bridge) Notify(msg string) {
	b.mu.Lock()
	b.message = &msg
	b.mu.Unlock()
	b.signal()
}

func (b *Bridge) SetControlsEnabled(enabled bool) {
	b.mu.Lock()
	b.controls = &enabled
	b.mu.Unlock()
	b.signal()
}

func (b *Bridge) take() updateMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := updateMsg{scene: b.scene, message: b.message, controls: b.controls}
	b.scene, b.message, b.controls = nil, nil, nil
	return u
}

// Wait blocks until there is something new or the bridge is closed.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.wake:
			return b.take()
		case <-b.done:
			return updateMsg{bridgeDone: true}
		}
	}
}

func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

var _ render.Renderer = (*Bridge)(nil)
