package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/timing"
	"github.com/san-kum/algoviz/internal/tween"
)

// Base step durations before speed scaling.
const (
	CompareDelay   = 160 * time.Millisecond
	SwapTween      = 420 * time.Millisecond
	SwapSettle     = 50 * time.Millisecond
	MergeHighlight = 160 * time.Millisecond
	MergeWrite     = 220 * time.Millisecond
	MergeDrain     = 180 * time.Millisecond
	VisitDelay     = 260 * time.Millisecond
	EdgePulse      = 80 * time.Millisecond
	EdgePulses     = 6
	EdgeSettle     = 120 * time.Millisecond
)

type Engine struct {
	timer     *timing.Controller
	animator  *tween.Animator
	renderer  render.Renderer
	observers []Observer
}

// New builds an engine that paints through r. A nil timer runs on the
// wall clock at normal speed.
func New(timer *timing.Controller, r render.Renderer) *Engine {
	if timer == nil {
		timer = timing.New(nil)
	}
	if r == nil {
		r = render.Discard
	}
	return &Engine{
		timer:     timer,
		animator:  tween.NewAnimator(timer.Clock()),
		renderer:  r,
		observers: make([]Observer, 0),
	}
}

func (e *Engine) AddObserver(o Observer)     { e.observers = append(e.observers, o) }
func (e *Engine) Timer() *timing.Controller { return e.timer }

func (e *Engine) emit(s Step) {
	for _, o := range e.observers {
		o.OnStep(s)
	}
}

func (e *Engine) done(msg string) {
	e.emit(Step{Kind: StepDone, Message: msg})
}

func (e *Engine) paintBars(bars *model.Bars, active, swap []int) {
	e.renderer.Paint(render.BarScene(bars, active, swap))
}

func (e *Engine) paintGraph(g *model.Graph, active []int, highlight [][2]int) {
	e.renderer.Paint(render.GraphScene(g, active, highlight))
}

// compare highlights bars i and j for one compare delay.
func (e *Engine) compare(ctx context.Context, bars *model.Bars, i, j int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.emit(Step{
		Kind:    StepCompare,
		I:       i,
		J:       j,
		Message: fmt.Sprintf("Comparing %d and %d", bars.Value(i), bars.Value(j)),
	})
	e.paintBars(bars, []int{i, j}, nil)
	if err := e.timer.Suspend(ctx, CompareDelay); err != nil {
		return err
	}
	e.paintBars(bars, nil, nil)
	return nil
}

// swap slides bars i and j into each other's slot, then exchanges the
// records so value and height travel with the bar.
func (e *Engine) swap(ctx context.Context, bars *model.Bars, i, j int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.emit(Step{
		Kind:    StepSwap,
		I:       i,
		J:       j,
		Message: fmt.Sprintf("Swapping %d and %d", bars.Value(i), bars.Value(j)),
	})

	bars.SwapTargets(i, j)
	pair := []tween.Item{bars.At(i), bars.At(j)}
	err := e.animator.Animate(ctx, pair, e.timer.ScaledDelay(SwapTween), func() {
		e.paintBars(bars, nil, []int{i, j})
	})
	if err != nil {
		// Snap the pair home so no bar is left between slots.
		bars.At(i).SetPosition(bars.At(i).Target())
		bars.At(j).SetPosition(bars.At(j).Target())
		bars.Exchange(i, j)
		bars.AnchorTargets()
		return err
	}

	bars.Exchange(i, j)
	bars.AnchorTargets()
	e.paintBars(bars, nil, nil)
	return e.timer.Suspend(ctx, SwapSettle)
}

// write overwrites the value at k in place and holds the highlight for d.
func (e *Engine) write(ctx context.Context, bars *model.Bars, k, v, src int, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bars.SetValue(k, v)
	e.emit(Step{Kind: StepWrite, I: k, Value: v, Source: src})
	e.paintBars(bars, []int{k}, nil)
	return e.timer.Suspend(ctx, d)
}

func (e *Engine) visit(ctx context.Context, g *model.Graph, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.emit(Step{Kind: StepVisit, I: id, Message: fmt.Sprintf("Visiting node %d", id)})
	e.paintGraph(g, []int{id}, nil)
	return e.timer.Suspend(ctx, VisitDelay)
}

// traverseEdge pulses the edge a-b, pauses, then clears the highlight.
func (e *Engine) traverseEdge(ctx context.Context, g *model.Graph, a, b int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.emit(Step{Kind: StepEdge, I: a, J: b, Message: fmt.Sprintf("Visiting edge %d → %d", a, b)})
	edge := [][2]int{{a, b}}
	for p := 0; p < EdgePulses; p++ {
		e.paintGraph(g, nil, edge)
		if err := e.timer.Suspend(ctx, EdgePulse); err != nil {
			return err
		}
	}
	if err := e.timer.Suspend(ctx, EdgeSettle); err != nil {
		return err
	}
	e.paintGraph(g, nil, nil)
	return nil
}
