// Package coordinator is the single mutation gateway for a graph.
//
// Every writer (CLI command, HTTP handler, importer) changes the graph through
// a [Coordinator]. After a mutation succeeds the coordinator synchronously
// calls each subscribed [Listener] in subscription order; failed mutations
// notify nobody.
//
// Queries return copies. Traversal and shortest-path queries run on a
// snapshot taken at call time.
package coordinator

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/graph/shortest"
	"github.com/matzehuels/graphdesk/pkg/graph/traverse"
	"github.com/matzehuels/graphdesk/pkg/observability"
)

// ErrInvalidArgument is returned by [Coordinator.GenerateRandomGraph] for a
// negative vertex count or a maximum weight below one.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultMaxWeight is the upper weight bound used for random graphs when the
// caller has no preference.
const DefaultMaxWeight = 10

// Listener is notified after every successful mutation.
type Listener interface {
	Refresh()
}

// ListenerFunc adapts a plain function to [Listener].
type ListenerFunc func()

// Refresh calls f.
func (f ListenerFunc) Refresh() { f() }

// Coordinator owns a graph store and serializes changes to it.
//
// A Coordinator is not safe for concurrent use; callers that share one across
// goroutines must provide their own locking.
type Coordinator struct {
	store  *graph.Store
	rng    *rand.Rand
	logger *log.Logger

	listeners []*subscription
}

type subscription struct {
	l Listener
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand sets the random source used by GenerateRandomGraph.
func WithRand(r *rand.Rand) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithStore starts the coordinator from an existing store. The store is used
// as-is, not copied.
func WithStore(s *graph.Store) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.store = s
		}
	}
}

// New returns a Coordinator over an empty graph unless WithStore is given.
//
// Without WithRand, GenerateRandomGraph draws from a source seeded with the
// current time, so its graphs differ between runs. Pass WithRand with a fixed
// seed for reproducible graphs.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  graph.New(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers l and returns a function that removes it again.
func (c *Coordinator) Subscribe(l Listener) (unsubscribe func()) {
	sub := &subscription{l: l}
	c.listeners = append(c.listeners, sub)
	return func() {
		for i, s := range c.listeners {
			if s == sub {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// =============================================================================
// Mutations
// =============================================================================

// AddVertex adds id. Adding an existing vertex still notifies listeners.
func (c *Coordinator) AddVertex(id int) {
	c.store.AddVertex(id)
	c.done("add_vertex", nil)
}

// AddEdge adds an undirected edge, creating missing endpoints.
func (c *Coordinator) AddEdge(u, v, weight int) error {
	return c.done("add_edge", c.store.AddEdge(u, v, weight, false))
}

// AddDirectedEdge adds the single arc u→v.
func (c *Coordinator) AddDirectedEdge(u, v, weight int) error {
	return c.done("add_directed_edge", c.store.AddEdge(u, v, weight, true))
}

// RemoveVertex removes id and every edge touching it.
func (c *Coordinator) RemoveVertex(id int) {
	c.store.RemoveVertex(id)
	c.done("remove_vertex", nil)
}

// RemoveEdge removes the undirected edge between u and v.
func (c *Coordinator) RemoveEdge(u, v int) error {
	return c.done("remove_edge", c.store.RemoveEdge(u, v, false))
}

// UpdateEdgeWeight changes the weight of both directions of the u-v edge.
func (c *Coordinator) UpdateEdgeWeight(u, v, weight int) error {
	return c.done("update_edge_weight", c.store.UpdateEdgeWeight(u, v, weight))
}

// SetGraph replaces the whole graph with a copy of g.
func (c *Coordinator) SetGraph(g *graph.Store) error {
	if g == nil {
		return c.done("set_graph", fmt.Errorf("set graph: %w: nil store", ErrInvalidArgument))
	}
	c.store = g.Clone()
	c.done("set_graph", nil)
	return nil
}

// Clear removes every vertex and edge.
func (c *Coordinator) Clear() {
	c.store.Clear()
	c.done("clear", nil)
}

// GenerateRandomGraph replaces the graph with n vertices 0..n-1 and
// min(e, n(n-1)/2) distinct undirected edges with weights in [1, maxWeight].
// Listeners are notified once. The result is not guaranteed to be connected.
func (c *Coordinator) GenerateRandomGraph(n, e, maxWeight int) error {
	if n < 0 {
		return c.done("generate", fmt.Errorf("generate: %w: vertex count %d", ErrInvalidArgument, n))
	}
	if maxWeight < 1 {
		return c.done("generate", fmt.Errorf("generate: %w: max weight %d", ErrInvalidArgument, maxWeight))
	}

	g := graph.New()
	for i := range n {
		g.AddVertex(i)
	}

	target := min(max(e, 0), n*(n-1)/2)
	chosen := make(map[[2]int]bool, target)
	for len(chosen) < target {
		u, v := c.rng.Intn(n), c.rng.Intn(n)
		w := 1 + c.rng.Intn(maxWeight)
		if u == v {
			continue
		}
		key := [2]int{min(u, v), max(u, v)}
		if chosen[key] {
			continue
		}
		chosen[key] = true
		if err := g.AddEdge(u, v, w, false); err != nil {
			return c.done("generate", fmt.Errorf("generate: %w", err))
		}
	}

	c.store = g
	c.logger.Debug("generated random graph", "vertices", n, "edges", target, "max_weight", maxWeight)
	c.done("generate", nil)
	return nil
}

// =============================================================================
// Queries
// =============================================================================

// Snapshot returns an independent copy of the current graph.
func (c *Coordinator) Snapshot() *graph.Store { return c.store.Clone() }

// Vertices returns the vertex ids in ascending order.
func (c *Coordinator) Vertices() []int { return c.store.Vertices() }

// Edges returns the canonical edge list.
func (c *Coordinator) Edges() []graph.Edge { return c.store.Edges() }

// DisplayLines returns the adjacency listing, one line per vertex.
func (c *Coordinator) DisplayLines() []string { return c.store.DisplayLines() }

// BFS runs a breadth-first traversal on a snapshot.
func (c *Coordinator) BFS(start int) ([]int, error) {
	return c.query("bfs", start, func(g *graph.Store) ([]int, error) { return traverse.BFS(g, start) })
}

// DFS runs a depth-first traversal on a snapshot.
func (c *Coordinator) DFS(start int) ([]int, error) {
	return c.query("dfs", start, func(g *graph.Store) ([]int, error) { return traverse.DFS(g, start) })
}

// ShortestPaths runs Dijkstra from start on a snapshot.
func (c *Coordinator) ShortestPaths(start int) (map[int]int, error) {
	began := time.Now()
	dist, err := shortest.Dijkstra(c.Snapshot(), start)
	observability.Graph().OnQuery("dijkstra", start, len(dist), time.Since(began), err)
	return dist, err
}

func (c *Coordinator) query(algo string, start int, fn func(*graph.Store) ([]int, error)) ([]int, error) {
	began := time.Now()
	order, err := fn(c.Snapshot())
	observability.Graph().OnQuery(algo, start, len(order), time.Since(began), err)
	c.logger.Debug("query", "algorithm", algo, "start", start, "visited", len(order), "err", err)
	return order, err
}

// done reports the mutation and notifies listeners when err is nil.
func (c *Coordinator) done(op string, err error) error {
	observability.Graph().OnMutation(op, c.store.VertexCount(), c.store.EdgeCount(), err)
	if err != nil {
		c.logger.Debug("mutation rejected", "op", op, "err", err)
		return err
	}
	c.logger.Debug("mutation", "op", op, "vertices", c.store.VertexCount())
	for _, s := range append([]*subscription(nil), c.listeners...) {
		s.l.Refresh()
	}
	return nil
}
