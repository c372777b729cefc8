package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/pipeline"
)

// layoutCommand creates the layout command for computing vertex positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "layout [graph file]",
		Short: "Compute force-directed vertex positions",
		Long: `Compute force-directed vertex positions for a graph.

The output is a layout.json file (same format as 'render -f json') holding
the viewport, the seed and one position per vertex. Equal graphs, viewports
and seeds always produce the same positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.layoutOptions(cmd, opts), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags shared by layout and render. Their
// defaults come from the configuration, applied in layoutOptions.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default from config)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "layout seed (default from config)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "relaxation iterations (default from config)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
}

// layoutOptions merges flag values over the configured defaults. Only flags
// the user changed override the configuration.
func (c *CLI) layoutOptions(cmd *cobra.Command, flags pipeline.Options) pipeline.Options {
	opts := c.pipelineOptions()
	if cmd.Flags().Changed("width") {
		opts.Width = flags.Width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = flags.Height
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = flags.Seed
	}
	if cmd.Flags().Changed("iterations") {
		opts.Iterations = flags.Iterations
		opts.Physics.Iterations = flags.Iterations
	}
	opts.Refresh = flags.Refresh
	return opts
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := c.loadGraph(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input) + ".layout.json"
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.VertexCount(), g.EdgeCount(), &cacheHit)
	printNewline()
	printNextStep("Render", "graphdesk render "+input)

	return nil
}
