package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
)

// =============================================================================
// generate
// =============================================================================

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	vertices  int
	edges     int
	maxWeight int
	seed      int64
	output    string
}

// generateCommand creates the generate command for random graphs.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{vertices: 10, edges: 15, maxWeight: coordinator.DefaultMaxWeight}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random weighted graph",
		Long: `Generate a random undirected graph with vertices 0..n-1.

The edge count is capped at n(n-1)/2. Weights are drawn uniformly from
[1, max-weight]. The result is not guaranteed to be connected.

Without --output the adjacency listing is printed.`,
		Example: `  graphdesk generate -n 8 -e 12 -o graph.json
  graphdesk generate -n 5 -e 100 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.vertices, "vertices", "n", opts.vertices, "number of vertices")
	cmd.Flags().IntVarP(&opts.edges, "edges", "e", opts.edges, "number of edges")
	cmd.Flags().IntVar(&opts.maxWeight, "max-weight", opts.maxWeight, "maximum edge weight")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.txt, .csv, .xlsx, .json)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	if err := gderrors.ValidateRandomGraph(opts.vertices, opts.edges, opts.maxWeight); err != nil {
		return err
	}
	if opts.output != "" {
		if err := gderrors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	coord := coordinator.New(
		coordinator.WithLogger(loggerFromContext(ctx)),
		coordinator.WithRand(rand.New(rand.NewSource(seed))),
	)
	if err := coord.GenerateRandomGraph(opts.vertices, opts.edges, opts.maxWeight); err != nil {
		return err
	}
	g := coord.Snapshot()

	if opts.output == "" {
		printLines(coord.DisplayLines())
		printStats(g.VertexCount(), g.EdgeCount(), nil)
		return nil
	}

	if err := graphio.ExportFile(g, opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Generated graph")
	printFile(opts.output)
	printStats(g.VertexCount(), g.EdgeCount(), nil)
	printNewline()
	printNextStep("Render", "graphdesk render "+opts.output)
	return nil
}

// =============================================================================
// show
// =============================================================================

// showCommand creates the show command that prints the adjacency listing.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [graph file]",
		Short: "Print a graph's adjacency listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return graphio.WriteJSON(cmd.OutOrStdout(), g)
			}
			fmt.Println(StyleTitle.Render(args[0]))
			printLines(g.DisplayLines())
			printStats(g.VertexCount(), g.EdgeCount(), nil)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON snapshot instead")
	return cmd
}

// =============================================================================
// convert
// =============================================================================

// convertCommand creates the convert command that rewrites a graph file in
// the format named by the output extension.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a graph file to another format",
		Long: `Convert a graph file to another format.

Both formats are chosen by file extension: .txt (vertex:neighbor:weight lines),
.csv, .xlsx or .json. The text and tabular formats replay every adjacency
entry as an undirected edge; only JSON keeps directed edges.`,
		Example: `  graphdesk convert graph.txt graph.xlsx`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if err := gderrors.ValidatePath(out); err != nil {
				return err
			}
			g, err := c.loadGraph(cmd.Context(), in)
			if err != nil {
				return err
			}
			if err := graphio.ExportFile(g, out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess("Converted %s", in)
			printFile(out)
			printStats(g.VertexCount(), g.EdgeCount(), nil)
			return nil
		},
	}
}
