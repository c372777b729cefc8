package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file, or base path when several formats are written
	formats   string // comma-separated: svg, png, pdf, dot, json
	weights   bool   // label edges with their weights
	highlight []int  // vertices to highlight
	traverse  string // highlight a bfs/dfs traversal from --start instead
	start     int
	scale     float64 // PNG scale
	noCache   bool
}

// renderCommand creates the render command for drawing graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro     renderOpts
		layout pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [graph file]",
		Short: "Render a graph to SVG, PNG, PDF, DOT or JSON",
		Long: `Render a graph with a force-directed layout.

Vertices are pinned at their computed positions and drawn by Graphviz.
Undirected edges are drawn as plain lines, directed edges with an arrow head.
PNG and PDF output is converted from the SVG and needs rsvg-convert.

Results are cached locally for faster subsequent runs.`,
		Example: `  graphdesk render graph.json
  graphdesk render graph.txt -f svg,png --weights -o out/graph
  graphdesk render graph.csv --traverse bfs --start 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], c.layoutOptions(cmd, layout), ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file or base path (default: <input>.<format>)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", pipeline.FormatSVG, "output formats, comma separated: svg, png, pdf, dot, json")
	cmd.Flags().BoolVar(&ro.weights, "weights", false, "label edges with their weights")
	cmd.Flags().IntSliceVar(&ro.highlight, "highlight", nil, "vertices to highlight")
	cmd.Flags().StringVar(&ro.traverse, "traverse", "", "highlight the vertices reached by bfs or dfs from --start")
	cmd.Flags().IntVarP(&ro.start, "start", "s", 0, "start vertex for --traverse")
	cmd.Flags().Float64Var(&ro.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &layout)

	return cmd
}

// runRender loads the graph, runs the pipeline, and writes one file per
// format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) error {
	opts.Formats = parseFormats(ro.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.ShowWeights = ro.weights
	opts.PNGScale = ro.scale

	g, err := c.loadGraph(ctx, input)
	if err != nil {
		return err
	}

	opts.Highlighted = ro.highlight
	if ro.traverse != "" {
		if opts.Highlighted, err = traversalOrder(g, ro.traverse, ro.start); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(input, ro.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	printSuccess("Rendered %s", strings.Join(opts.Formats, ", "))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, &cached)
	return nil
}

// traversalOrder returns the bfs or dfs order from start.
func traversalOrder(g *graph.Store, algo string, start int) ([]int, error) {
	coord := coordinator.New(coordinator.WithStore(g))
	switch algo {
	case "bfs":
		return coord.BFS(start)
	case "dfs":
		return coord.DFS(start)
	default:
		return nil, fmt.Errorf("unknown traversal %q (must be one of: bfs, dfs)", algo)
	}
}

// outputPaths maps each format to its output file. A single format writes to
// output as given; several formats share output as a base name.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := outputBase(input)
	if output != "" {
		base = outputBase(output)
	}
	for _, f := range formats {
		ext := f
		if f == pipeline.FormatJSON {
			ext = "layout.json"
		}
		paths[f] = base + "." + ext
	}
	return paths
}
