package graph

import "errors"

var (
	// ErrVertexNotFound is returned when an operation names a vertex that is not
	// in the graph, such as [Store.RemoveEdge] with a missing endpoint or a
	// traversal started from an absent vertex.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrEdgeNotFound is returned by [Store.UpdateEdgeWeight] when neither
	// direction of the requested edge exists.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrSelfLoop is returned by [Store.AddEdge] when both endpoints are the
	// same vertex.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrNegativeWeight is returned by [Store.AddEdge] and
	// [Store.UpdateEdgeWeight] for weights below zero. Shortest-path results
	// are undefined for negative weights.
	ErrNegativeWeight = errors.New("edge weight must not be negative")
)
