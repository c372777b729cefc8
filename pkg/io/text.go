package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// ReadText parses the line format "vertex:n1:w1,n2:w2". Malformed lines and
// tokens are skipped rather than failing the load. Lines have no length limit.
func ReadText(r io.Reader) (*graph.Store, LoadReport, error) {
	g := graph.New()
	skipped := 0

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		skipped += readTextLine(g, line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, LoadReport{}, fmt.Errorf("read: %w", err)
		}
	}
	return g, report(g, skipped), nil
}

// readTextLine adds the vertex and edges of one line to g and returns the
// number of entries it skipped.
func readTextLine(g *graph.Store, line string) int {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0
	}
	head, rest, ok := strings.Cut(line, ":")
	if !ok {
		return 1
	}
	v, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 1
	}
	g.AddVertex(v)

	if strings.TrimSpace(rest) == "" {
		return 0
	}
	skipped := 0
	for _, token := range strings.Split(rest, ",") {
		n, err := parseNeighbor(token)
		if err != nil {
			skipped++
			continue
		}
		if err := g.AddEdge(v, n.ID, n.Weight, false); err != nil {
			skipped++
		}
	}
	return skipped
}

// WriteText writes one "vertex:n1:w1,n2:w2" line per vertex in insertion
// order. It refuses to write an empty graph.
func WriteText(w io.Writer, g *graph.Store) error {
	if g.VertexCount() == 0 {
		return ErrEmptyGraph
	}
	bw := bufio.NewWriter(w)
	for v, ns := range rows(g) {
		if _, err := fmt.Fprintf(bw, "%d:%s\n", v, formatNeighbors(ns)); err != nil {
			return fmt.Errorf("write vertex %d: %w", v, err)
		}
	}
	return bw.Flush()
}
