package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Column headers shared by the CSV and spreadsheet formats.
const (
	headerVertex = "Vertex"
	headerEdges  = "Edges (Neighbor:Weight)"
)

// ReadCSV parses the two-column tabular format. The first record is the
// header. Any malformed row aborts the load with a [*ParseError].
func ReadCSV(r io.Reader) (*graph.Store, LoadReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, LoadReport{}, errors.New("csv is empty: missing header")
		}
		return nil, LoadReport{}, fmt.Errorf("read header: %w", err)
	}

	b := newTableBuilder()
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadReport{}, fmt.Errorf("read row %d: %w", row, err)
		}
		if err := b.addRow(row, rec); err != nil {
			return nil, LoadReport{}, err
		}
	}
	return b.g, report(b.g, 0), nil
}

// WriteCSV writes the header followed by one record per vertex in insertion
// order.
func WriteCSV(w io.Writer, g *graph.Store) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{headerVertex, headerEdges}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for v, ns := range rows(g) {
		if err := cw.Write([]string{strconv.Itoa(v), formatNeighbors(ns)}); err != nil {
			return fmt.Errorf("write vertex %d: %w", v, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// tableBuilder replays strict two-column rows into a store.
type tableBuilder struct {
	g *graph.Store
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{g: graph.New()}
}

func (b *tableBuilder) addRow(row int, cells []string) error {
	if len(cells) == 0 {
		return &ParseError{Row: row, Err: errors.New("empty row")}
	}
	v, err := strconv.Atoi(strings.TrimSpace(cells[0]))
	if err != nil {
		return &ParseError{Row: row, Value: cells[0], Err: fmt.Errorf("vertex: %w", err)}
	}
	b.g.AddVertex(v)

	if len(cells) < 2 || strings.TrimSpace(cells[1]) == "" {
		return nil
	}
	for _, token := range strings.Split(cells[1], ",") {
		n, err := parseNeighbor(token)
		if err != nil {
			return &ParseError{Row: row, Value: token, Err: err}
		}
		if err := b.g.AddEdge(v, n.ID, n.Weight, false); err != nil {
			return &ParseError{Row: row, Value: token, Err: err}
		}
	}
	return nil
}
