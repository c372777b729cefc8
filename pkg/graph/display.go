package graph

import (
	"fmt"
	"strings"
)

// DisplayLines renders one line per vertex, in insertion order:
//
//	0: 1(5), 2(3)
//	1: 0(5)
//
// A vertex without neighbors renders as "3: ".
func (s *Store) DisplayLines() []string {
	lines := make([]string, 0, len(s.order))
	for _, v := range s.order {
		parts := make([]string, len(s.adj[v]))
		for i, n := range s.adj[v] {
			parts[i] = fmt.Sprintf("%d(%d)", n.ID, n.Weight)
		}
		lines = append(lines, fmt.Sprintf("%d: %s", v, strings.Join(parts, ", ")))
	}
	return lines
}
