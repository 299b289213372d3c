package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/algoviz/internal/model"
)

// Workspace is the model an algorithm runs against. Sorts use Bars and
// traversals use Graph starting at Start.
type Workspace struct {
	Bars  *model.Bars
	Graph *model.Graph
	Start int
}

type Algorithm struct {
	Name  string
	Title string
	Graph bool
	run   func(e *Engine, ctx context.Context, ws Workspace) error
}

var order = []string{"bubble", "quick", "merge", "bfs", "dfs"}

var algorithms = map[string]Algorithm{
	"bubble": {Name: "bubble", Title: "Bubble Sort", run: func(e *Engine, ctx context.Context, ws Workspace) error {
		return e.Bubble(ctx, ws.Bars)
	}},
	"quick": {Name: "quick", Title: "Quick Sort", run: func(e *Engine, ctx context.Context, ws Workspace) error {
		return e.Quick(ctx, ws.Bars)
	}},
	"merge": {Name: "merge", Title: "Merge Sort", run: func(e *Engine, ctx context.Context, ws Workspace) error {
		return e.Merge(ctx, ws.Bars)
	}},
	"bfs": {Name: "bfs", Title: "Breadth-First Search", Graph: true, run: func(e *Engine, ctx context.Context, ws Workspace) error {
		return e.BFS(ctx, ws.Graph, ws.Start)
	}},
	"dfs": {Name: "dfs", Title: "Depth-First Search", Graph: true, run: func(e *Engine, ctx context.Context, ws Workspace) error {
		return e.DFS(ctx, ws.Graph, ws.Start)
	}},
}

// Lookup returns the named algorithm.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// Names lists the registered algorithms, sorts first.
func Names() []string {
	return append([]string(nil), order...)
}

func IsGraph(name string) bool {
	return algorithms[name].Graph
}

// Run dispatches the named algorithm against ws.
func (e *Engine) Run(ctx context.Context, name string, ws Workspace) error {
	a, err := Lookup(name)
	if err != nil {
		return err
	}
	return a.run(e, ctx, ws)
}
