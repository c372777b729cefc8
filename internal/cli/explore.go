package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/graph/shortest"
)

// Explore styles
var (
	exploreCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	exploreVisitedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	explorePendingStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command, an interactive step-through of
// a traversal.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		algo  string
		start int
	)

	cmd := &cobra.Command{
		Use:   "explore [graph file]",
		Short: "Step through a traversal interactively",
		Long: `Step through a traversal interactively.

Vertices are revealed one at a time in the order the algorithm discovers them
(bfs, dfs) or settles them (dijkstra). Use ←/→ to move, g/G to jump to the
first or last step, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := newExploreModel(g, algo, start)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&algo, "algorithm", "a", "bfs", "algorithm: bfs, dfs, dijkstra")
	cmd.Flags().IntVarP(&start, "start", "s", 0, "start vertex")
	return cmd
}

// =============================================================================
// exploreModel - Traversal step-through
// =============================================================================

// exploreModel is the bubbletea model of the explore command.
type exploreModel struct {
	algo  string
	start int

	vertices []int // insertion order
	adj      map[int][]graph.Neighbor
	order    []int
	dist     map[int]int // dijkstra only

	step int // vertices revealed, 1..len(order)
}

// newExploreModel runs algo from start on g and returns a model positioned
// on the first step.
func newExploreModel(g *graph.Store, algo string, start int) (exploreModel, error) {
	coord := coordinator.New(coordinator.WithStore(g))
	m := exploreModel{
		algo:     algo,
		start:    start,
		vertices: g.InsertionOrder(),
		adj:      g.Adjacency(),
		step:     1,
	}

	var err error
	switch algo {
	case "bfs":
		m.order, err = coord.BFS(start)
	case "dfs":
		m.order, err = coord.DFS(start)
	case "dijkstra":
		m.dist, err = coord.ShortestPaths(start)
		for _, d := range shortest.Ordered(m.dist) {
			m.order = append(m.order, d.Vertex)
		}
	default:
		return m, fmt.Errorf("unknown algorithm %q (must be one of: bfs, dfs, dijkstra)", algo)
	}
	if err != nil {
		return m, err
	}
	return m, nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ":
		if m.step < len(m.order) {
			m.step++
		}
	case "left", "h", "p":
		if m.step > 1 {
			m.step--
		}
	case "g", "home":
		m.step = 1
	case "G", "end":
		m.step = len(m.order)
	}
	return m, nil
}

// current returns the most recently revealed vertex.
func (m exploreModel) current() int {
	return m.order[m.step-1]
}

// visited reports whether v has been revealed.
func (m exploreModel) visited() map[int]bool {
	seen := make(map[int]bool, m.step)
	for _, v := range m.order[:m.step] {
		seen[v] = true
	}
	return seen
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s from %d", strings.ToUpper(m.algo), m.start)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  step %d/%d", m.step, len(m.order))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")

	seen := m.visited()
	cur := m.current()
	for _, v := range m.vertices {
		style, marker := explorePendingStyle, "  "
		switch {
		case v == cur:
			style, marker = exploreCurrentStyle, "▸ "
		case seen[v]:
			style = exploreVisitedStyle
		}

		parts := make([]string, len(m.adj[v]))
		for i, n := range m.adj[v] {
			parts[i] = fmt.Sprintf("%d(%d)", n.ID, n.Weight)
		}
		line := fmt.Sprintf("%s%d: %s", marker, v, strings.Join(parts, ", "))
		if d, ok := m.dist[v]; ok && seen[v] {
			line += "  " + StyleDim.Render("d="+strconv.Itoa(d))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	path := make([]string, m.step)
	for i, v := range m.order[:m.step] {
		path[i] = strconv.Itoa(v)
	}
	b.WriteString(StyleDim.Render("order: " + strings.Join(path, " "+iconArrow+" ")))
	b.WriteString("\n")
	return b.String()
}
