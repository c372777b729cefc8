// Package pkg provides the core libraries for graphdesk, an interactive
// weighted-graph workbench.
//
// # Overview
//
// graphdesk keeps one integer-vertex graph in memory, runs traversals and
// shortest-path queries over it, and lays it out with a force-directed
// simulation for drawing. The pkg directory is organized into four areas:
//
//  1. [graph] - The adjacency-list store plus [graph/traverse] and
//     [graph/shortest] algorithms
//  2. [coordinator] - The single owner of the working graph; validates
//     mutations and notifies listeners
//  3. [layout] and [pipeline] - Position computation, caching and rendering
//  4. Infrastructure - [io], [cache], [storage/sql], [storage/mongo],
//     [config], [server], [errors] and [observability]
//
// # Architecture
//
// The typical data flow:
//
//	text / csv / xlsx / json file
//	         ↓
//	    [io] package (import, skipping malformed entries)
//	         ↓
//	    [coordinator] package (mutations, BFS / DFS / Dijkstra)
//	         ↓
//	    [layout] package (spring-electrical simulation)
//	         ↓
//	    [render/nodelink] package (DOT → SVG via Graphviz)
//	         ↓
//	    SVG/PDF/PNG/DOT/JSON output
//
// # Quick Start
//
//	coord := coordinator.New()
//	_ = coord.AddEdge(0, 1, 5)
//	_ = coord.AddEdge(1, 2, 3)
//
//	order, _ := coord.BFS(0)           // [0 1 2]
//	dist, _ := coord.ShortestPaths(0)  // map[0:0 1:5 2:8]
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, coord.Snapshot(), pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -short ./pkg/...   # Skip tests that need Graphviz
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graph
// [graph/traverse]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graph/traverse
// [graph/shortest]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graph/shortest
// [coordinator]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/coordinator
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/cache
// [storage/sql]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/storage/sql
// [storage/mongo]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/storage/mongo
// [config]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/observability
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/render/nodelink
package pkg
