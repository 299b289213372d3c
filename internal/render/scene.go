package render

import (
	"slices"

	"github.com/san-kum/algoviz/internal/model"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindBars
	KindGraph
)

type BarView struct {
	Value         int
	X, Width      float64
	Height        float64
	Compare, Swap bool
}

type NodeView struct {
	ID     int
	X, Y   float64
	Active bool
}

type EdgeView struct {
	A, B        int
	Highlighted bool
}

// Scene is one frame. Active holds compared bar indices or visited node
// ids; Swap holds bar indices mid-swap; Highlight holds traversed edges.
type Scene struct {
	Kind      Kind
	Layout    model.Layout
	Bars      []BarView
	Nodes     []NodeView
	Edges     []EdgeView
	Active    []int
	Swap      []int
	Highlight [][2]int
}

// BarScene snapshots bars with the given compare and swap highlights.
func BarScene(bars *model.Bars, active, swap []int) Scene {
	s := Scene{
		Kind:   KindBars,
		Layout: bars.Layout(),
		Bars:   make([]BarView, bars.Len()),
		Active: slices.Clone(active),
		Swap:   slices.Clone(swap),
	}
	for i := 0; i < bars.Len(); i++ {
		b := bars.At(i)
		s.Bars[i] = BarView{
			Value:   b.Value,
			X:       b.X,
			Width:   b.Width,
			Height:  b.Height,
			Swap:    slices.Contains(swap, i),
			Compare: slices.Contains(active, i),
		}
	}
	return s
}

// GraphScene snapshots a graph with active nodes and highlighted edges.
// Edge highlights match in either direction.
func GraphScene(g *model.Graph, active []int, highlight [][2]int) Scene {
	s := Scene{
		Kind:      KindGraph,
		Layout:    g.Layout(),
		Nodes:     make([]NodeView, g.Len()),
		Active:    slices.Clone(active),
		Highlight: slices.Clone(highlight),
	}
	for i, n := range g.Nodes {
		s.Nodes[i] = NodeView{ID: n.ID, X: n.X, Y: n.Y, Active: slices.Contains(active, n.ID)}
	}
	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, EdgeView{A: e[0], B: e[1], Highlighted: edgeIn(highlight, e[0], e[1])})
	}
	return s
}

func edgeIn(edges [][2]int, a, b int) bool {
	for _, e := range edges {
		if (e[0] == a && e[1] == b) || (e[0] == b && e[1] == a) {
			return true
		}
	}
	return false
}

// Values returns bar values in index order, or nil for graph scenes.
func (s Scene) Values() []int {
	if s.Kind != KindBars {
		return nil
	}
	out := make([]int, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Value
	}
	return out
}
