package traverse

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// sample builds
//
//	0 - 1 - 3
//	|   |
//	2 - 4   5 (isolated)
func sample(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, e := range [][3]int{{0, 1, 1}, {0, 2, 1}, {1, 3, 1}, {1, 4, 1}, {2, 4, 1}} {
		if err := g.AddEdge(e[0], e[1], e[2], false); err != nil {
			t.Fatal(err)
		}
	}
	g.AddVertex(5)
	return g
}

func TestBFS(t *testing.T) {
	g := sample(t)

	got, err := BFS(g, 0)
	if err != nil {
		t.Fatalf("BFS() error: %v", err)
	}
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("BFS(0) = %v, want %v", got, want)
	}

	got, err = BFS(g, 5)
	if err != nil {
		t.Fatalf("BFS() error: %v", err)
	}
	if want := []int{5}; !slices.Equal(got, want) {
		t.Errorf("BFS(5) = %v, want %v", got, want)
	}
}

func TestDFS(t *testing.T) {
	g := sample(t)

	got, err := DFS(g, 0)
	if err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	if want := []int{0, 1, 3, 4, 2}; !slices.Equal(got, want) {
		t.Errorf("DFS(0) = %v, want %v", got, want)
	}
}

func TestAbsentStart(t *testing.T) {
	g := sample(t)
	tests := []struct {
		name string
		fn   func(graph.Reader, int) ([]int, error)
	}{
		{"BFS", BFS},
		{"DFS", DFS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(g, 99)
			if !errors.Is(err, graph.ErrVertexNotFound) {
				t.Errorf("error = %v, want ErrVertexNotFound", err)
			}
			if len(got) != 0 {
				t.Errorf("order = %v, want empty", got)
			}
		})
	}
}

func TestCoverageEachReachableOnce(t *testing.T) {
	g := sample(t)
	for _, fn := range []func(graph.Reader, int) ([]int, error){BFS, DFS} {
		got, err := fn(g, 3)
		if err != nil {
			t.Fatal(err)
		}
		sorted := slices.Sorted(slices.Values(got))
		if want := []int{0, 1, 2, 3, 4}; !slices.Equal(sorted, want) {
			t.Errorf("visited %v, want each of %v once", got, want)
		}
	}
}

func TestDirectedRespectsArcs(t *testing.T) {
	g := graph.New()
	for _, e := range [][2]int{{0, 1}, {2, 0}} {
		if err := g.AddEdge(e[0], e[1], 1, true); err != nil {
			t.Fatal(err)
		}
	}

	got, err := BFS(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1}; !slices.Equal(got, want) {
		t.Errorf("BFS(0) = %v, want %v", got, want)
	}
}

// recursiveDFS is the reference pre-order walk.
func recursiveDFS(g graph.Reader, v int, visited map[int]bool, out *[]int) {
	visited[v] = true
	*out = append(*out, v)
	for _, n := range g.Neighbors(v) {
		if !visited[n.ID] {
			recursiveDFS(g, n.ID, visited, out)
		}
	}
}

func TestDFSMatchesRecursiveOrder(t *testing.T) {
	g := graph.New()
	edges := [][2]int{{0, 4}, {0, 1}, {4, 2}, {2, 1}, {1, 3}, {3, 5}, {5, 0}, {6, 2}}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1], 1, false); err != nil {
			t.Fatal(err)
		}
	}

	var want []int
	recursiveDFS(g, 0, map[int]bool{}, &want)

	got, err := DFS(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("DFS(0) = %v, want %v", got, want)
	}
}

func TestDFSDeepPath(t *testing.T) {
	const n = 100_000
	g := graph.New()
	for i := 0; i < n-1; i++ {
		if err := g.AddEdge(i, i+1, 1, false); err != nil {
			t.Fatal(err)
		}
	}

	got, err := DFS(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Fatalf("len(DFS(0)) = %d, want %d", len(got), n)
	}
	if got[n-1] != n-1 {
		t.Errorf("last visited = %d, want %d", got[n-1], n-1)
	}
}
