// Package graph provides the mutable weighted graph at the heart of graphdesk.
//
// A [Store] is an adjacency list keyed by integer vertex ids. Each vertex owns
// an ordered slice of [Neighbor] entries; insertion order is preserved and is
// what BFS and DFS use to break ties.
//
// # Edges
//
// Undirected edges are stored as two adjacency entries (u→v and v→u) with the
// same weight. Directed edges are a single entry. [Store.Edges] reports every
// connection once, in canonical form (From <= To), sorted:
//
//	g := graph.New()
//	_ = g.AddEdge(0, 1, 5, false)
//	g.Edges() // [{0 1 5}]
//
// # Validation
//
// The store is the single validation point for edge data. Self-loops are
// rejected with [ErrSelfLoop] and negative weights with [ErrNegativeWeight].
// Adding a vertex or edge that already exists is a no-op; weight changes go
// through [Store.UpdateEdgeWeight].
//
// # Snapshots
//
// Algorithms and renderers never hold a live store. They receive a copy from
// [Store.Clone] and read it through the [Reader] interface.
//
// # Concurrency
//
// A Store is not safe for concurrent use without external synchronization.
package graph
