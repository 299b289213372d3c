package model

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

type GraphNode struct {
	ID      int
	X, Y    float64
	TargetX float64
	TargetY float64
}

// Graph is an undirected graph with ordered adjacency lists. Node ids are
// 0..len(Nodes)-1.
type Graph struct {
	Nodes  []GraphNode
	Adj    map[int][]int
	layout Layout
}

func NewGraph(n int, layout Layout) *Graph {
	g := &Graph{
		Nodes:  make([]GraphNode, n),
		Adj:    make(map[int][]int, n),
		layout: layout,
	}
	for i := 0; i < n; i++ {
		g.Nodes[i] = GraphNode{ID: i}
		g.Adj[i] = []int{}
	}
	return g
}

// GenerateGraph places n nodes on a jittered circle and connects them with
// random undirected edges.
func GenerateGraph(n int, layout Layout, rng *rand.Rand) *Graph {
	g := NewGraph(n, layout)
	w, h := layout.Width, layout.Height
	radius := math.Min(w, h) / 3
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * math.Pi * 2
		x := w/2 + math.Cos(theta)*radius + (rng.Float64()-0.5)*40
		y := h/2 + math.Sin(theta)*radius + (rng.Float64()-0.5)*40
		g.Nodes[i] = GraphNode{ID: i, X: x, Y: y, TargetX: x, TargetY: y}
	}

	for i := 0; i < n; i++ {
		attempts := int(math.Floor(rng.Float64() * math.Max(1, float64(n)/3)))
		for j := 0; j < attempts; j++ {
			g.AddEdge(i, rng.Intn(n))
		}
	}
	return g
}

func (g *Graph) Len() int       { return len(g.Nodes) }
func (g *Graph) Layout() Layout { return g.layout }

// AddEdge links a and b in both directions. Self loops and existing edges
// are ignored.
func (g *Graph) AddEdge(a, b int) bool {
	if a == b || g.HasEdge(a, b) {
		return false
	}
	g.Adj[a] = append(g.Adj[a], b)
	g.Adj[b] = append(g.Adj[b], a)
	return true
}

func (g *Graph) HasEdge(a, b int) bool {
	return slices.Contains(g.Adj[a], b)
}

func (g *Graph) Neighbors(id int) []int { return g.Adj[id] }

// Edges lists every undirected edge once as (a, b) with a < b.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for a := 0; a < len(g.Nodes); a++ {
		for _, b := range g.Adj[a] {
			if a < b {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}

// Validate checks symmetry, self loops and duplicate entries.
func (g *Graph) Validate() error {
	for a, nbs := range g.Adj {
		seen := make(map[int]bool, len(nbs))
		for _, b := range nbs {
			if a == b {
				return fmt.Errorf("self loop on node %d", a)
			}
			if seen[b] {
				return fmt.Errorf("duplicate edge %d-%d", a, b)
			}
			seen[b] = true
			if !slices.Contains(g.Adj[b], a) {
				return fmt.Errorf("edge %d-%d is not symmetric", a, b)
			}
		}
	}
	return nil
}

// HitTest returns the first node whose center lies within 1.1 node radii
// of (x, y).
func (g *Graph) HitTest(x, y float64) (int, bool) {
	limit := NodeRadius * 1.1
	for _, n := range g.Nodes {
		if math.Hypot(x-n.X, y-n.Y) <= limit {
			return n.ID, true
		}
	}
	return 0, false
}
