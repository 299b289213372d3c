package engine

import "errors"

var (
	// ErrUnknownAlgorithm is returned for a name missing from the registry.
	ErrUnknownAlgorithm = errors.New("engine: unknown algorithm")

	// ErrNoInput indicates the workspace lacks the bars or graph the
	// algorithm needs.
	ErrNoInput = errors.New("engine: nothing to visualize")

	// ErrStartNode indicates a traversal start outside the graph.
	ErrStartNode = errors.New("engine: start node out of range")
)
