package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/layout"
	"github.com/matzehuels/graphdesk/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// ShowWeights labels every edge with its weight.
	ShowWeights bool

	// Highlighted vertices are filled with the accent color, typically the
	// visit order of a traversal.
	Highlighted []int
}

const (
	fillColor      = "white"
	highlightColor = "#f4b942"
	nodeDiameter   = 0.45 // inches
)

// ToDOT converts a graph and its layout positions to Graphviz DOT source.
//
// Positions are pinned (pos="x,y!") and the neato engine is selected in the
// graph attributes, so Graphviz draws the force-directed layout as computed
// rather than running its own. Vertices missing from positions are left for
// neato to place. Undirected connections render without arrowheads.
func ToDOT(g *graph.Store, positions map[int]layout.Point, opts Options) string {
	highlighted := make(map[int]bool, len(opts.Highlighted))
	for _, v := range opts.Highlighted {
		highlighted[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, fixedsize=true, width=%.2f, fontsize=14];\n",
		fillColor, nodeDiameter)
	buf.WriteString("  edge [fontsize=11, fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := fmtNodeAttrs(v, positions, highlighted[v])
		fmt.Fprintf(&buf, "  %d [%s];\n", v, attrs)
	}

	buf.WriteString("\n")
	doc := graphio.FromStore(g)
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.From, e.To, fmtEdgeAttrs(e, opts.ShowWeights))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(v int, positions map[int]layout.Point, highlighted bool) string {
	attrs := fmt.Sprintf("label=\"%d\"", v)
	if p, ok := positions[v]; ok {
		// Graphviz's y axis points up, the viewport's points down.
		attrs += fmt.Sprintf(", pos=\"%.2f,%.2f!\"", p.X, -p.Y)
	}
	if highlighted {
		attrs += fmt.Sprintf(", fillcolor=%q", highlightColor)
	}
	return attrs
}

func fmtEdgeAttrs(e graphio.EdgeRecord, showWeights bool) string {
	attrs := "dir=forward"
	if !e.Directed {
		attrs = "dir=none"
	}
	if showWeights {
		attrs += fmt.Sprintf(", label=\"%d\"", e.Weight)
	}
	return attrs
}

// Highlight returns the vertices of order that exist in g, without
// duplicates, preserving first occurrence.
func Highlight(g *graph.Store, order []int) []int {
	var out []int
	for _, v := range order {
		if g.HasVertex(v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// RenderSVG renders DOT source to SVG using the in-process Graphviz build.
// The returned SVG has a normalized viewBox so it scales cleanly when embedded.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF by converting the SVG output with
// rsvg-convert.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG at the given scale. A scale of 2.0
// doubles the resolution.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
