package model

import "math"

const (
	minBarGap    = 4
	minBarWidth  = 8
	minBarHeight = 12
	barHeadroom  = 40
)

type Bar struct {
	Value   int
	X       float64
	TargetX float64
	Width   float64
	Height  float64
}

func (b *Bar) Position() float64     { return b.X }
func (b *Bar) Target() float64       { return b.TargetX }
func (b *Bar) SetPosition(x float64) { b.X = x }

// Bars is the ordered bar sequence. Index order is the array order; each
// bar's X is where it is currently drawn.
type Bars struct {
	items  []*Bar
	layout Layout
}

// NewBars lays out one bar per value across the layout width.
func NewBars(values []int, layout Layout) *Bars {
	b := &Bars{items: make([]*Bar, len(values)), layout: layout}
	n := len(values)
	if n == 0 {
		return b
	}

	gap := math.Max(minBarGap, math.Floor(layout.Width/float64(n*35)))
	width := math.Max(minBarWidth, math.Floor((layout.Width-gap*float64(n+1))/float64(n)))
	for i, v := range values {
		x := gap + float64(i)*(width+gap)
		b.items[i] = &Bar{Value: v, X: x, TargetX: x, Width: width}
	}
	b.RecomputeHeights()
	return b
}

func (b *Bars) Len() int       { return len(b.items) }
func (b *Bars) At(i int) *Bar  { return b.items[i] }
func (b *Bars) Layout() Layout { return b.layout }

func (b *Bars) Value(i int) int { return b.items[i].Value }

// Values returns the bar values in index order.
func (b *Bars) Values() []int {
	out := make([]int, len(b.items))
	for i, bar := range b.items {
		out[i] = bar.Value
	}
	return out
}

// SwapTargets exchanges the target positions of bars i and j.
func (b *Bars) SwapTargets(i, j int) {
	b.items[i].TargetX, b.items[j].TargetX = b.items[j].TargetX, b.items[i].TargetX
}

// Exchange swaps the bar records at i and j so value and height travel
// with the bar.
func (b *Bars) Exchange(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
}

// AnchorTargets pins every bar's target to its current position.
func (b *Bars) AnchorTargets() {
	for _, bar := range b.items {
		bar.TargetX = bar.X
	}
}

// SetValue overwrites the value at k in place. Position is unchanged and
// heights are recomputed against the new maximum.
func (b *Bars) SetValue(k, v int) {
	b.items[k].Value = v
	b.RecomputeHeights()
}

func (b *Bars) RecomputeHeights() {
	maxVal := 1
	for _, bar := range b.items {
		if bar.Value > maxVal {
			maxVal = bar.Value
		}
	}
	maxH := b.layout.Height - barHeadroom
	for _, bar := range b.items {
		bar.Height = math.Max(minBarHeight, math.Floor(maxH*float64(bar.Value)/float64(maxVal)))
	}
}
