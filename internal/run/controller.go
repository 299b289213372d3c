package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/timing"
)

// User-facing messages.
const (
	MsgBusy          = "A visualization is already running."
	MsgGenerated     = "Random array generated."
	MsgGraph         = "Random graph generated."
	MsgNoArray       = "No array to save. Generate an array first."
	MsgSaveFailed    = "Save failed."
	MsgLoadFailed    = "Load failed."
	MsgNothingSaved  = "No saved array for that user."
	MsgLoaded        = "Loaded saved array."
	MsgCanceled      = "Visualization stopped."
	MsgFault         = "Visualization failed."
	MsgReady         = "Ready. Use Generate/Start. Speed controls animations."
	DefaultGraphSize = 8
)

// TouchHighlight is how long a touched node stays highlighted.
const TouchHighlight = 300 * time.Millisecond

// Notifier receives the explanation text for each step and operation.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// ControlSurface enables and disables the UI controls around a run.
type ControlSurface interface {
	SetControlsEnabled(enabled bool)
}

type ControlFunc func(bool)

func (f ControlFunc) SetControlsEnabled(enabled bool) { f(enabled) }

// ArrayStore saves and loads flat arrays by username.
type ArrayStore interface {
	Save(ctx context.Context, username string, values []int) (string, error)
	Load(ctx context.Context, username string) ([]int, error)
}

type Options struct {
	Algorithm string
	Size      int
	Username  string
	Layout    model.Layout

	Timer    *timing.Controller
	Renderer render.Renderer
	Store    ArrayStore
	Notifier Notifier
	Controls ControlSurface
	Logger   *slog.Logger
	Rand     *rand.Rand
}

// State is a point-in-time view of the session.
type State struct {
	Algorithm string
	Size      int
	Username  string
	Speed     float64
	Running   bool
	Message   string
	Values    []int
	Nodes     int
	Edges     int
	Counts    engine.Counts
}

type Controller struct {
	timer    *timing.Controller
	engine   *engine.Engine
	stats    *engine.Stats
	renderer render.Renderer
	store    ArrayStore
	notifier Notifier
	controls ControlSurface
	logger   *slog.Logger
	layout   model.Layout

	mu        sync.Mutex
	rng       *rand.Rand
	algorithm string
	size      int
	username  string
	bars      *model.Bars
	graph     *model.Graph
	running   bool
	cancel    context.CancelFunc

	viewMu  sync.Mutex
	scene   render.Scene
	message string
}

func New(opts Options) (*Controller, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = "bubble"
	}
	if _, err := engine.Lookup(opts.Algorithm); err != nil {
		return nil, err
	}
	if opts.Layout.Width <= 0 || opts.Layout.Height <= 0 {
		opts.Layout = model.DefaultLayout()
	}
	if opts.Timer == nil {
		opts.Timer = timing.New(nil)
	}
	if opts.Renderer == nil {
		opts.Renderer = render.Discard
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		timer:     opts.Timer,
		stats:     &engine.Stats{},
		renderer:  opts.Renderer,
		store:     opts.Store,
		notifier:  opts.Notifier,
		controls:  opts.Controls,
		logger:    logging.OrDiscard(opts.Logger),
		layout:    opts.Layout,
		rng:       opts.Rand,
		algorithm: opts.Algorithm,
		size:      model.ClampSize(opts.Size),
		username:  strings.TrimSpace(opts.Username),
	}
	c.engine = engine.New(c.timer, render.RendererFunc(c.paint))
	c.engine.AddObserver(c.stats)
	c.engine.AddObserver(engine.ObserverFunc(func(s engine.Step) {
		if s.Message != "" {
			c.notify(s.Message)
		}
	}))
	return c, nil
}

// AddObserver registers o for every engine step.
func (c *Controller) AddObserver(o engine.Observer) { c.engine.AddObserver(o) }

func (c *Controller) Timer() *timing.Controller { return c.timer }

func (c *Controller) paint(s render.Scene) {
	c.viewMu.Lock()
	c.scene = s
	c.viewMu.Unlock()
	c.renderer.Paint(s)
}

func (c *Controller) notify(msg string) {
	c.viewMu.Lock()
	c.message = msg
	c.viewMu.Unlock()
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}

func (c *Controller) setControls(enabled bool) {
	if c.controls != nil {
		c.controls.SetControlsEnabled(enabled)
	}
}

// lockIdle takes c.mu when no run is active. Otherwise it reports the
// busy message and returns ErrBusy without holding the lock.
func (c *Controller) lockIdle() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		c.notify(MsgBusy)
		return ErrBusy
	}
	return nil
}

// Generate builds a random graph for graph algorithms and a random array
// otherwise, sized by the current size setting.
func (c *Controller) Generate() error {
	if err := c.lockIdle(); err != nil {
		return err
	}

	var scene render.Scene
	var msg string
	if engine.IsGraph(c.algorithm) {
		c.graph = model.GenerateGraph(c.size, c.layout, c.rng)
		scene, msg = render.GraphScene(c.graph, nil, nil), MsgGraph
	} else {
		c.bars = model.NewBars(model.RandomValues(c.size, c.rng), c.layout)
		scene, msg = render.BarScene(c.bars, nil, nil), MsgGenerated
	}
	c.mu.Unlock()

	c.logger.Debug("generated", "algorithm", c.Algorithm(), "size", c.Size())
	c.paint(scene)
	c.notify(msg)
	return nil
}

// SetValues replaces the bars with values and paints them.
func (c *Controller) SetValues(values []int, msg string) error {
	if err := c.lockIdle(); err != nil {
		return err
	}
	c.bars = model.NewBars(values, c.layout)
	scene := render.BarScene(c.bars, nil, nil)
	c.mu.Unlock()

	c.paint(scene)
	if msg != "" {
		c.notify(msg)
	}
	return nil
}

// Start runs the selected algorithm to completion, cancellation or fault.
// It blocks for the whole run.
func (c *Controller) Start(ctx context.Context) (err error) {
	if err := c.lockIdle(); err != nil {
		return err
	}

	name := c.algorithm
	var pre *render.Scene
	if engine.IsGraph(name) && (c.graph == nil || c.graph.Len() == 0) {
		c.graph = model.GenerateGraph(DefaultGraphSize, c.layout, c.rng)
		s := render.GraphScene(c.graph, nil, nil)
		pre = &s
	}
	if !engine.IsGraph(name) && c.bars == nil {
		c.bars = model.NewBars(nil, c.layout)
	}
	ws := engine.Workspace{Bars: c.bars, Graph: c.graph}

	runCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.mu.Unlock()

	c.setControls(false)
	c.stats.Reset()
	if pre != nil {
		c.paint(*pre)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &AlgorithmFault{Algorithm: name, Panic: r, Stack: debug.Stack()}
			c.logger.Error("algorithm panicked", "algorithm", name, "panic", r)
			c.notify(MsgFault)
		}
		cancel()
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		c.setControls(true)
	}()

	c.logger.Info("run started", "algorithm", name, "speed", c.timer.Speed())
	err = c.engine.Run(runCtx, name, ws)
	switch {
	case err == nil:
		counts := c.stats.Counts()
		c.logger.Info("run finished",
			"algorithm", name,
			"elapsed", time.Since(start),
			"compares", counts.Compares,
			"swaps", counts.Swaps,
			"writes", counts.Writes,
			"visits", counts.Visits,
			"edges", counts.Edges,
		)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.logger.Info("run stopped", "algorithm", name, "reason", err)
		c.notify(MsgCanceled)
	default:
		c.logger.Error("run failed", "algorithm", name, "error", err)
		c.notify(MsgFault)
		err = &AlgorithmFault{Algorithm: name, Err: err}
	}
	return err
}

// Cancel stops the active run at its next step boundary. It reports
// whether a run was active.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

// Save sends the current bar values for the current username.
func (c *Controller) Save(ctx context.Context) error {
	if err := c.lockIdle(); err != nil {
		return err
	}
	if c.bars == nil || c.bars.Len() == 0 {
		c.mu.Unlock()
		c.notify(MsgNoArray)
		return ErrEmptyState
	}
	values := c.bars.Values()
	user := c.username
	c.mu.Unlock()

	if c.store == nil {
		c.notify(MsgSaveFailed)
		return &PersistenceError{Op: "save", Err: ErrNoStore}
	}
	msg, err := c.store.Save(ctx, user, values)
	if err != nil {
		c.logger.Warn("save failed", "username", user, "error", err)
		c.notify(MsgSaveFailed)
		return &PersistenceError{Op: "save", Err: err}
	}
	c.logger.Info("array saved", "username", user, "len", len(values))
	c.notify(msg)
	return nil
}

// Load replaces the bars with the array saved for the current username.
// The model is untouched when the load fails or nothing was saved.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.lockIdle(); err != nil {
		return err
	}
	user := c.username
	c.mu.Unlock()

	if c.store == nil {
		c.notify(MsgLoadFailed)
		return &PersistenceError{Op: "load", Err: ErrNoStore}
	}
	values, err := c.store.Load(ctx, user)
	if err != nil {
		c.logger.Warn("load failed", "username", user, "error", err)
		c.notify(MsgLoadFailed)
		return &PersistenceError{Op: "load", Err: err}
	}
	if len(values) == 0 {
		c.notify(MsgNothingSaved)
		return ErrNothingSaved
	}

	if err := c.lockIdle(); err != nil {
		return err
	}
	c.bars = model.NewBars(values, c.layout)
	scene := render.BarScene(c.bars, nil, nil)
	c.mu.Unlock()

	c.logger.Info("array loaded", "username", user, "len", len(values))
	c.paint(scene)
	c.notify(MsgLoaded)
	return nil
}

// SetSpeed applies a clamped speed multiplier and returns it. It takes
// effect from the next suspension, even mid-run.
func (c *Controller) SetSpeed(m float64) float64 {
	return c.timer.SetSpeed(m)
}

func (c *Controller) SelectAlgorithm(name string) error {
	if _, err := engine.Lookup(name); err != nil {
		return err
	}
	if err := c.lockIdle(); err != nil {
		return err
	}
	defer c.mu.Unlock()
	c.algorithm = name
	return nil
}

// SetSize clamps n onto the allowed range and returns the stored size.
func (c *Controller) SetSize(n int) (int, error) {
	if err := c.lockIdle(); err != nil {
		return c.Size(), err
	}
	defer c.mu.Unlock()
	c.size = model.ClampSize(n)
	return c.size, nil
}

func (c *Controller) SetUsername(name string) {
	c.mu.Lock()
	c.username = strings.TrimSpace(name)
	c.mu.Unlock()
}

// HitTest returns the graph node under (x, y) in layout coordinates.
func (c *Controller) HitTest(x, y float64) (int, bool) {
	c.mu.Lock()
	g := c.graph
	c.mu.Unlock()
	if g == nil {
		return 0, false
	}
	return g.HitTest(x, y)
}

// Touch reports the node under (x, y) and highlights it briefly when no
// run is active.
func (c *Controller) Touch(x, y float64) (int, bool) {
	c.mu.Lock()
	g, running := c.graph, c.running
	c.mu.Unlock()
	if g == nil {
		return 0, false
	}
	id, ok := g.HitTest(x, y)
	if !ok {
		return 0, false
	}

	c.notify(fmt.Sprintf("Touched node %d.", id))
	if running {
		return id, true
	}
	c.paint(render.GraphScene(g, []int{id}, nil))

	clock, d := c.timer.Clock(), c.timer.ScaledDelay(TouchHighlight)
	go func() {
		<-clock.After(d)
		c.mu.Lock()
		still := !c.running && c.graph == g
		c.mu.Unlock()
		if still {
			c.paint(render.GraphScene(g, nil, nil))
		}
	}()
	return id, true
}

// Scene returns the most recently painted scene.
func (c *Controller) Scene() render.Scene {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	return c.scene
}

func (c *Controller) Message() string {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	return c.message
}

func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Controller) Algorithm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.algorithm
}

func (c *Controller) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Snapshot copies the session state. Values come from the last painted
// scene while a run is active so the model is never read mid-step.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	st := State{
		Algorithm: c.algorithm,
		Size:      c.size,
		Username:  c.username,
		Running:   c.running,
	}
	if !c.running {
		if c.bars != nil {
			st.Values = c.bars.Values()
		}
		if c.graph != nil {
			st.Nodes = c.graph.Len()
			st.Edges = len(c.graph.Edges())
		}
	}
	graph := c.graph
	c.mu.Unlock()

	if st.Running {
		scene := c.Scene()
		st.Values = scene.Values()
		if graph != nil {
			st.Nodes = graph.Len()
			st.Edges = len(graph.Edges())
		}
	}
	st.Speed = c.timer.Speed()
	st.Message = c.Message()
	st.Counts = c.stats.Counts()
	return st
}
