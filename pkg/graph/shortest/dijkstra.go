// Package shortest computes single-source shortest-path distances.
//
// [Dijkstra] uses a binary min-heap with lazy deletion: improved distances are
// pushed as new entries and stale entries are skipped when popped. Only
// distances are produced; paths are not reconstructed.
//
// Vertices that cannot be reached from the start are omitted from the result.
// Use [Reachable] to test membership.
package shortest

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Distance pairs a vertex with its shortest distance from the start.
type Distance struct {
	Vertex   int
	Distance int
}

// Dijkstra returns the shortest distance from start to every reachable vertex.
// Weights are assumed non-negative, which [graph.Store] guarantees.
func Dijkstra(g graph.Reader, start int) (map[int]int, error) {
	if !g.HasVertex(start) {
		return map[int]int{}, fmt.Errorf("dijkstra from %d: %w", start, graph.ErrVertexNotFound)
	}

	dist := map[int]int{start: 0}
	pq := &queue{{vertex: start, dist: 0}}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(item)
		if it.dist > dist[it.vertex] {
			continue // stale
		}
		for _, n := range g.Neighbors(it.vertex) {
			nd := it.dist + n.Weight
			if best, ok := dist[n.ID]; ok && nd >= best {
				continue
			}
			dist[n.ID] = nd
			heap.Push(pq, item{vertex: n.ID, dist: nd})
		}
	}
	return dist, nil
}

// Reachable reports whether v has a distance in a [Dijkstra] result.
func Reachable(dist map[int]int, v int) bool {
	_, ok := dist[v]
	return ok
}

// Ordered returns the distances sorted by (Distance, Vertex).
func Ordered(dist map[int]int) []Distance {
	out := make([]Distance, 0, len(dist))
	for v, d := range dist {
		out = append(out, Distance{Vertex: v, Distance: d})
	}
	slices.SortFunc(out, func(a, b Distance) int {
		return cmp.Or(cmp.Compare(a.Distance, b.Distance), cmp.Compare(a.Vertex, b.Vertex))
	})
	return out
}

type item struct {
	vertex int
	dist   int
}

// queue implements heap.Interface ordered by smallest dist first.
type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
