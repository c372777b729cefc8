// Package traverse implements breadth-first and depth-first traversal over a
// [graph.Reader].
//
// Both traversals visit neighbors in adjacency insertion order and return the
// discovery order. Starting from a vertex that is not in the graph yields an
// empty result together with [graph.ErrVertexNotFound].
//
// DFS keeps an explicit stack of (vertex, next neighbor index) frames instead
// of recursing, so arbitrarily deep graphs do not grow the goroutine stack.
// The order it produces is the same as the recursive pre-order walk.
package traverse

import (
	"fmt"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// BFS returns the vertices reachable from start in breadth-first discovery
// order. Each reachable vertex appears exactly once.
func BFS(g graph.Reader, start int) ([]int, error) {
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("bfs from %d: %w", start, graph.ErrVertexNotFound)
	}

	visited := map[int]bool{start: true}
	order := []int{start}
	queue := []int{start}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(v) {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			order = append(order, n.ID)
			queue = append(queue, n.ID)
		}
	}
	return order, nil
}

// frame is one level of the DFS stack: a vertex, its neighbor snapshot and the
// index of the next neighbor to try.
type frame struct {
	neighbors []graph.Neighbor
	next      int
}

// DFS returns the vertices reachable from start in depth-first pre-order.
func DFS(g graph.Reader, start int) ([]int, error) {
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("dfs from %d: %w", start, graph.ErrVertexNotFound)
	}

	visited := map[int]bool{start: true}
	order := []int{start}
	stack := []frame{{neighbors: g.Neighbors(start)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.neighbors[top.next]
		top.next++
		if visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		order = append(order, n.ID)
		stack = append(stack, frame{neighbors: g.Neighbors(n.ID)})
	}
	return order, nil
}
