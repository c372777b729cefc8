package graph_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

func ExampleStore() {
	g := graph.New()
	_ = g.AddEdge(0, 1, 5, false)
	_ = g.AddEdge(0, 2, 3, false)
	_ = g.AddEdge(3, 2, 1, true)

	for _, line := range g.DisplayLines() {
		fmt.Println(line)
	}
	fmt.Println(g.Edges())
	// Output:
	// 0: 1(5), 2(3)
	// 1: 0(5)
	// 2: 0(3)
	// 3: 2(1)
	// [{0 1 5} {0 2 3} {2 3 1}]
}

func ExampleStore_AddEdge_validation() {
	g := graph.New()

	err := g.AddEdge(4, 4, 1, false)
	fmt.Println(errors.Is(err, graph.ErrSelfLoop))

	err = g.AddEdge(0, 1, -3, false)
	fmt.Println(errors.Is(err, graph.ErrNegativeWeight))
	// Output:
	// true
	// true
}
