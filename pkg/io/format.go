package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Format identifies a graph file format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatCSV, FormatXLSX, FormatJSON}

var extensions = map[string]Format{
	".txt":  FormatText,
	".csv":  FormatCSV,
	".xlsx": FormatXLSX,
	".json": FormatJSON,
}

var (
	// ErrUnknownFormat is returned for file extensions or format names that
	// no reader or writer handles.
	ErrUnknownFormat = errors.New("unknown graph format")

	// ErrEmptyGraph is returned by [WriteText] for a graph with no vertices.
	ErrEmptyGraph = errors.New("graph is empty, nothing to save")
)

// LoadReport summarizes a load.
type LoadReport struct {
	Vertices int // vertices in the loaded graph
	Edges    int // canonical edges in the loaded graph
	Skipped  int // malformed tokens or rejected edges that were ignored
}

// ParseError reports a malformed row in a strict format.
type ParseError struct {
	Row   int    // 1-based row number, header included
	Value string // offending cell or token
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: invalid value %q: %v", e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// ParseFormat resolves a format name such as "csv".
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Read decodes a graph in format f from r.
func Read(r io.Reader, f Format) (*graph.Store, LoadReport, error) {
	switch f {
	case FormatText:
		return ReadText(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, LoadReport{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Write encodes g in format f to w.
func Write(w io.Writer, g *graph.Store, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, g)
	case FormatCSV:
		return WriteCSV(w, g)
	case FormatXLSX:
		return WriteXLSX(w, g)
	case FormatJSON:
		return WriteJSON(w, g)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// ImportFile reads the graph file at path, choosing the format by extension.
func ImportFile(path string) (*graph.Store, LoadReport, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, LoadReport{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, report, err := Read(file, f)
	if err != nil {
		return nil, report, fmt.Errorf("read %s: %w", path, err)
	}
	return g, report, nil
}

// ExportFile writes g to path, choosing the format by extension. The file is
// only created once the format is known.
func ExportFile(g *graph.Store, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if f == FormatText && g.VertexCount() == 0 {
		return ErrEmptyGraph
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, g, f); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// =============================================================================
// Adjacency cell helpers shared by the line-oriented formats
// =============================================================================

// formatNeighbors renders "n1:w1,n2:w2".
func formatNeighbors(ns []graph.Neighbor) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n.ID) + ":" + strconv.Itoa(n.Weight)
	}
	return strings.Join(parts, ",")
}

// parseNeighbor parses a single "n:w" token.
func parseNeighbor(token string) (graph.Neighbor, error) {
	id, weight, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok || strings.Contains(weight, ":") {
		return graph.Neighbor{}, errors.New("want neighbor:weight")
	}
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return graph.Neighbor{}, fmt.Errorf("neighbor: %w", err)
	}
	w, err := strconv.Atoi(strings.TrimSpace(weight))
	if err != nil {
		return graph.Neighbor{}, fmt.Errorf("weight: %w", err)
	}
	return graph.Neighbor{ID: n, Weight: w}, nil
}

// rows yields (vertex, neighbors) pairs in insertion order.
func rows(g *graph.Store) func(yield func(int, []graph.Neighbor) bool) {
	return func(yield func(int, []graph.Neighbor) bool) {
		for _, v := range g.InsertionOrder() {
			if !yield(v, g.Neighbors(v)) {
				return
			}
		}
	}
}

func report(g *graph.Store, skipped int) LoadReport {
	return LoadReport{Vertices: g.VertexCount(), Edges: g.EdgeCount(), Skipped: skipped}
}
