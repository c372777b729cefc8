// Package nodelink draws laid-out graphs as node-link diagrams.
//
// # Usage
//
// Compute positions with [layout.Engine], convert to DOT, then render:
//
//	dot := nodelink.ToDOT(g, positions, nodelink.Options{ShowWeights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG go through SVG and require rsvg-convert on PATH:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # DOT Format
//
// [ToDOT] pins every positioned vertex and selects the neato engine, so the
// diagram matches the force-directed layout exactly. Undirected edges are drawn
// without arrowheads; directed arcs keep theirs. Vertices listed in
// [Options.Highlighted] are filled with an accent color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed for SVG output.
//
// [layout.Engine]: github.com/matzehuels/graphdesk/pkg/layout.Engine
package nodelink
