package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/algoviz/internal/model"
)

func checkStart(g *model.Graph, start int) error {
	if g == nil {
		return ErrNoInput
	}
	if start < 0 || (g.Len() > 0 && start >= g.Len()) {
		return fmt.Errorf("%w: %d", ErrStartNode, start)
	}
	return nil
}

// BFS walks the graph breadth first from start. Nodes are marked at
// discovery so none is queued twice.
func (e *Engine) BFS(ctx context.Context, g *model.Graph, start int) error {
	if err := checkStart(g, start); err != nil {
		return err
	}
	if g.Len() == 0 {
		e.done("BFS complete.")
		return nil
	}

	visited := make([]bool, g.Len())
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if err := e.visit(ctx, g, node); err != nil {
			return err
		}
		for _, nb := range g.Neighbors(node) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
			if err := e.traverseEdge(ctx, g, node, nb); err != nil {
				return err
			}
		}
	}
	e.done("BFS complete.")
	return nil
}

// DFS walks the graph depth first from start. When part of the graph is
// unreachable it reports how many nodes were reached instead of completing.
func (e *Engine) DFS(ctx context.Context, g *model.Graph, start int) error {
	if err := checkStart(g, start); err != nil {
		return err
	}
	if g.Len() == 0 {
		e.done("DFS complete.")
		return nil
	}

	visited := make(map[int]bool, g.Len())
	if err := e.dfs(ctx, g, start, visited); err != nil {
		return err
	}
	if len(visited) == g.Len() {
		e.done("DFS complete.")
	} else {
		e.done(fmt.Sprintf("DFS reached %d of %d nodes.", len(visited), g.Len()))
	}
	return nil
}

func (e *Engine) dfs(ctx context.Context, g *model.Graph, node int, visited map[int]bool) error {
	visited[node] = true
	if err := e.visit(ctx, g, node); err != nil {
		return err
	}
	for _, nb := range g.Neighbors(node) {
		if visited[nb] {
			continue
		}
		if err := e.traverseEdge(ctx, g, node, nb); err != nil {
			return err
		}
		if err := e.dfs(ctx, g, nb, visited); err != nil {
			return err
		}
	}
	return nil
}
