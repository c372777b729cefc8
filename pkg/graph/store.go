package graph

import (
	"cmp"
	"fmt"
	"slices"
)

// Neighbor is a single adjacency entry: the vertex reached and the weight of
// the connection.
type Neighbor struct {
	ID     int
	Weight int
}

// Edge is a weighted connection in canonical form. For undirected edges
// From is always the smaller endpoint.
type Edge struct {
	From   int
	To     int
	Weight int
}

// Reader is the read-only view consumed by traversal and shortest-path
// algorithms. [*Store] satisfies it.
type Reader interface {
	HasVertex(id int) bool
	Neighbors(id int) []Neighbor
}

// Store is a weighted adjacency list with insertion-ordered neighbor slices.
//
// The zero value is not usable - use New to create a Store.
type Store struct {
	adj   map[int][]Neighbor
	order []int // vertex insertion order
}

// New returns an empty Store.
func New() *Store {
	return &Store{adj: make(map[int][]Neighbor)}
}

// =============================================================================
// Mutation
// =============================================================================

// AddVertex adds id to the graph. Adding an existing vertex is a no-op.
func (s *Store) AddVertex(id int) {
	if _, ok := s.adj[id]; ok {
		return
	}
	s.adj[id] = nil
	s.order = append(s.order, id)
}

// AddEdge connects u to v with the given weight, creating missing endpoints.
// When directed is false the reverse entry v→u is added as well. Entries that
// already exist are left untouched, including their weight.
func (s *Store) AddEdge(u, v, weight int, directed bool) error {
	if u == v {
		return fmt.Errorf("add edge %d-%d: %w", u, v, ErrSelfLoop)
	}
	if weight < 0 {
		return fmt.Errorf("add edge %d-%d: %w", u, v, ErrNegativeWeight)
	}

	s.AddVertex(u)
	s.AddVertex(v)

	if s.indexOf(u, v) < 0 {
		s.adj[u] = append(s.adj[u], Neighbor{ID: v, Weight: weight})
	}
	if !directed && s.indexOf(v, u) < 0 {
		s.adj[v] = append(s.adj[v], Neighbor{ID: u, Weight: weight})
	}
	return nil
}

// RemoveVertex deletes id and every adjacency entry that points at it,
// including directed in-arcs. Removing a missing vertex is a no-op.
func (s *Store) RemoveVertex(id int) {
	if _, ok := s.adj[id]; !ok {
		return
	}
	for v, ns := range s.adj {
		s.adj[v] = slices.DeleteFunc(ns, func(n Neighbor) bool { return n.ID == id })
	}
	delete(s.adj, id)
	s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
}

// RemoveEdge deletes the u→v entry, and v→u as well when directed is false.
// Both endpoints must exist; a missing entry is otherwise a no-op.
func (s *Store) RemoveEdge(u, v int, directed bool) error {
	if err := s.requireVertices(u, v); err != nil {
		return fmt.Errorf("remove edge %d-%d: %w", u, v, err)
	}
	s.removeEntry(u, v)
	if !directed {
		s.removeEntry(v, u)
	}
	return nil
}

// UpdateEdgeWeight sets the weight of the u→v and v→u entries in place,
// whichever exist. It returns [ErrEdgeNotFound] when neither does.
func (s *Store) UpdateEdgeWeight(u, v, weight int) error {
	if weight < 0 {
		return fmt.Errorf("update edge %d-%d: %w", u, v, ErrNegativeWeight)
	}
	if err := s.requireVertices(u, v); err != nil {
		return fmt.Errorf("update edge %d-%d: %w", u, v, err)
	}

	updated := false
	if i := s.indexOf(u, v); i >= 0 {
		s.adj[u][i].Weight = weight
		updated = true
	}
	if i := s.indexOf(v, u); i >= 0 {
		s.adj[v][i].Weight = weight
		updated = true
	}
	if !updated {
		return fmt.Errorf("update edge %d-%d: %w", u, v, ErrEdgeNotFound)
	}
	return nil
}

// Clear removes every vertex and edge.
func (s *Store) Clear() {
	s.adj = make(map[int][]Neighbor)
	s.order = nil
}

// =============================================================================
// Queries
// =============================================================================

// HasVertex reports whether id is in the graph.
func (s *Store) HasVertex(id int) bool {
	_, ok := s.adj[id]
	return ok
}

// HasEdge reports whether the u→v entry exists.
func (s *Store) HasEdge(u, v int) bool {
	return s.indexOf(u, v) >= 0
}

// Weight returns the weight of the u→v entry.
func (s *Store) Weight(u, v int) (int, bool) {
	i := s.indexOf(u, v)
	if i < 0 {
		return 0, false
	}
	return s.adj[u][i].Weight, true
}

// Neighbors returns a copy of id's adjacency entries in insertion order.
// It returns nil for a missing vertex.
func (s *Store) Neighbors(id int) []Neighbor {
	return slices.Clone(s.adj[id])
}

// Vertices returns all vertex ids in ascending order.
func (s *Store) Vertices() []int {
	out := slices.Clone(s.order)
	slices.Sort(out)
	return out
}

// Edges returns every connection once in canonical form, sorted by
// (From, To, Weight). A directed pair stored in both directions with
// different weights yields two edges.
func (s *Store) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var out []Edge
	for u, ns := range s.adj {
		for _, n := range ns {
			e := canonical(u, n.ID, n.Weight)
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// Adjacency returns a deep copy of the adjacency map.
func (s *Store) Adjacency() map[int][]Neighbor {
	out := make(map[int][]Neighbor, len(s.adj))
	for v, ns := range s.adj {
		out[v] = slices.Clone(ns)
	}
	return out
}

// VertexCount returns the number of vertices.
func (s *Store) VertexCount() int { return len(s.adj) }

// EdgeCount returns len(s.Edges()).
func (s *Store) EdgeCount() int { return len(s.Edges()) }

// InsertionOrder returns vertex ids in the order they were added.
func (s *Store) InsertionOrder() []int { return slices.Clone(s.order) }

// Clone returns an independent deep copy.
func (s *Store) Clone() *Store {
	return &Store{adj: s.Adjacency(), order: slices.Clone(s.order)}
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (s *Store) indexOf(u, v int) int {
	return slices.IndexFunc(s.adj[u], func(n Neighbor) bool { return n.ID == v })
}

func (s *Store) removeEntry(u, v int) {
	s.adj[u] = slices.DeleteFunc(s.adj[u], func(n Neighbor) bool { return n.ID == v })
}

func (s *Store) requireVertices(ids ...int) error {
	for _, id := range ids {
		if !s.HasVertex(id) {
			return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
		}
	}
	return nil
}

func canonical(u, v, w int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{From: u, To: v, Weight: w}
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.From, b.From),
		cmp.Compare(a.To, b.To),
		cmp.Compare(a.Weight, b.Weight),
	)
}
