package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
)

// traverseCommand creates the traverse command with one subcommand per
// algorithm.
func (c *CLI) traverseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traverse",
		Short: "Run a traversal or shortest-path query",
		Long: `Run a traversal or shortest-path query from a start vertex.

Traversals visit neighbors in insertion order and print the discovery order.
dijkstra prints the distance to every reachable vertex; unreachable vertices
are left out.`,
	}

	cmd.AddCommand(c.traversalCommand("bfs", "Breadth-first traversal", (*coordinator.Coordinator).BFS))
	cmd.AddCommand(c.traversalCommand("dfs", "Depth-first traversal", (*coordinator.Coordinator).DFS))
	cmd.AddCommand(c.dijkstraCommand())

	return cmd
}

type traversal func(c *coordinator.Coordinator, start int) ([]int, error)

func (c *CLI) traversalCommand(name, short string, run traversal) *cobra.Command {
	var start int

	cmd := &cobra.Command{
		Use:     name + " [graph file]",
		Short:   short,
		Example: fmt.Sprintf("  graphdesk traverse %s graph.txt --start 0", name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			coord := coordinator.New(coordinator.WithStore(g), coordinator.WithLogger(c.Logger))
			order, err := run(coord, start)
			if err != nil {
				return err
			}
			printInfo("%s from %s visited %d of %d vertices",
				name, StyleNumber.Render(fmt.Sprint(start)), len(order), g.VertexCount())
			printOrder(order)
			return nil
		},
	}

	cmd.Flags().IntVarP(&start, "start", "s", 0, "start vertex")
	return cmd
}

func (c *CLI) dijkstraCommand() *cobra.Command {
	var start int

	cmd := &cobra.Command{
		Use:     "dijkstra [graph file]",
		Short:   "Shortest distances from a start vertex",
		Example: "  graphdesk traverse dijkstra graph.csv --start 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			coord := coordinator.New(coordinator.WithStore(g), coordinator.WithLogger(c.Logger))
			dist, err := coord.ShortestPaths(start)
			if err != nil {
				return err
			}
			printInfo("dijkstra from %s reached %d of %d vertices",
				StyleNumber.Render(fmt.Sprint(start)), len(dist), g.VertexCount())
			fmt.Println(distanceTable(dist))
			return nil
		},
	}

	cmd.Flags().IntVarP(&start, "start", "s", 0, "start vertex")
	return cmd
}
