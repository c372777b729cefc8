package cli

import (
	"context"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
	"github.com/matzehuels/graphdesk/pkg/server"
)

// serveCommand creates the serve command that exposes a graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [graph file]",
		Short: "Serve a graph over HTTP",
		Long: `Serve a graph over HTTP.

The server starts from the given graph file, or from an empty graph, and
accepts mutations, traversal queries, layouts and SVG renders as JSON over
HTTP. Rendered SVGs are cached in the configured cache backend; use
[cache] backend = "redis" to share them between instances.

The graph lives in memory only. Use 'graphdesk db' to persist it.`,
		Example: `  graphdesk serve graph.json --addr :9090
  curl localhost:9090/traverse/dijkstra/0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, noCache bool) error {
	opts := c.pipelineOptions()
	coord := coordinator.New(
		coordinator.WithLogger(c.Logger),
		coordinator.WithRand(rand.New(rand.NewSource(opts.Seed))),
	)
	if input != "" {
		g, err := c.loadGraph(ctx, input)
		if err != nil {
			return err
		}
		if err := coord.SetGraph(g); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(coord, runner, opts, c.Logger)
	printInfo("Serving on %s", StyleHighlight.Render(addr))
	printDetail("Press Ctrl+C to stop")
	return srv.Run(ctx, addr)
}
