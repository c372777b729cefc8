package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

func sampleGraph(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, e := range [][3]int{{0, 1, 5}, {0, 2, 3}, {2, 3, 1}} {
		if err := g.AddEdge(e[0], e[1], e[2], false); err != nil {
			t.Fatal(err)
		}
	}
	g.AddVertex(4)
	return g
}

func assertSameGraph(t *testing.T, got, want *graph.Store) {
	t.Helper()
	if !reflect.DeepEqual(got.Vertices(), want.Vertices()) {
		t.Errorf("vertices = %v, want %v", got.Vertices(), want.Vertices())
	}
	if !reflect.DeepEqual(got.Edges(), want.Edges()) {
		t.Errorf("edges = %v, want %v", got.Edges(), want.Edges())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"graph.txt", FormatText, false},
		{"dir/graph.CSV", FormatCSV, false},
		{"book.xlsx", FormatXLSX, false},
		{"snap.json", FormatJSON, false},
		{"graph.dot", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleGraph(t)
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, want, f); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, report, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			assertSameGraph(t, got, want)
			if report.Vertices != 5 || report.Edges != 3 {
				t.Errorf("report = %+v, want 5 vertices and 3 edges", report)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleGraph(t)); err != nil {
		t.Fatal(err)
	}
	want := "0:1:5,2:3\n1:0:5\n2:0:3,3:1\n3:2:1\n4:\n"
	if buf.String() != want {
		t.Errorf("WriteText =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteTextRefusesEmpty(t *testing.T) {
	if err := WriteText(&bytes.Buffer{}, graph.New()); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("WriteText(empty) = %v, want ErrEmptyGraph", err)
	}
}

func TestReadTextSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		"0:1:5,2:x,3",
		"",
		"no colon here",
		"abc:1:2",
		"1:1:4",
		"2:0:-3,0:7",
		"5:",
	}, "\n")

	g, report, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.Vertices(), []int{0, 1, 2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("vertices = %v, want %v", got, want)
	}
	wantEdges := []graph.Edge{{From: 0, To: 1, Weight: 5}, {From: 0, To: 2, Weight: 7}}
	if got := g.Edges(); !reflect.DeepEqual(got, wantEdges) {
		t.Errorf("edges = %v, want %v", got, wantEdges)
	}
	// 2:x, 3, "no colon here", abc, self-loop 1:1, negative 0:-3
	if report.Skipped != 6 {
		t.Errorf("Skipped = %d, want 6", report.Skipped)
	}
}

func TestReadTextLongLine(t *testing.T) {
	g := graph.New()
	const neighbors = 12_000
	for i := 1; i <= neighbors; i++ {
		if err := g.AddEdge(0, i, i%7+1, false); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, g); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	got, rep, err := ReadText(&buf)
	if err != nil {
		t.Fatalf("ReadText() error: %v", err)
	}
	if rep.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", rep.Skipped)
	}
	if n := len(got.Neighbors(0)); n != neighbors {
		t.Errorf("len(Neighbors(0)) = %d, want %d", n, neighbors)
	}
	assertSameGraph(t, got, g)
}

func TestReadTextLastLineWithoutNewline(t *testing.T) {
	g, _, err := ReadText(strings.NewReader("0:1:2\n1:0:2"))
	if err != nil {
		t.Fatalf("ReadText() error: %v", err)
	}
	if w, ok := g.Weight(1, 0); !ok || w != 2 {
		t.Errorf("Weight(1, 0) = %d, %v; want 2, true", w, ok)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
	}{
		{"bad vertex", "Vertex,Edges\nx,1:2\n", 2},
		{"bad token", "Vertex,Edges\n0,1:2\n1,\"0:2,3\"\n", 3},
		{"self loop", "Vertex,Edges\n0,0:1\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", pe.Row, tt.wantRow)
			}
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("ReadCSV(empty) should fail")
	}
}

func TestJSONDirectedEdges(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge(0, 1, 2, true); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(1, 2, 4, false); err != nil {
		t.Fatal(err)
	}

	doc := FromStore(g)
	want := []EdgeRecord{
		{From: 0, To: 1, Weight: 2, Directed: true},
		{From: 1, To: 2, Weight: 4},
	}
	if !reflect.DeepEqual(doc.Edges, want) {
		t.Errorf("edges = %+v, want %+v", doc.Edges, want)
	}

	back, err := doc.ToStore()
	if err != nil {
		t.Fatal(err)
	}
	if back.HasEdge(1, 0) {
		t.Error("directed edge 0->1 came back undirected")
	}
	if !back.HasEdge(2, 1) {
		t.Error("undirected edge 1-2 lost its reverse entry")
	}
}

func TestReadJSONRejectsInvalidEdge(t *testing.T) {
	input := `{"vertices":[0],"edges":[{"from":0,"to":0,"weight":1}]}`
	if _, _, err := ReadJSON(strings.NewReader(input)); !errors.Is(err, graph.ErrSelfLoop) {
		t.Errorf("err = %v, want ErrSelfLoop", err)
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	want := sampleGraph(t)

	for _, name := range []string{"g.txt", "g.csv", "g.xlsx", "g.json"} {
		path := filepath.Join(dir, name)
		if err := ExportFile(want, path); err != nil {
			t.Fatalf("ExportFile(%s): %v", name, err)
		}
		got, _, err := ImportFile(path)
		if err != nil {
			t.Fatalf("ImportFile(%s): %v", name, err)
		}
		assertSameGraph(t, got, want)
	}

	if err := ExportFile(want, filepath.Join(dir, "g.png")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ExportFile(.png) = %v, want ErrUnknownFormat", err)
	}
	if err := ExportFile(graph.New(), filepath.Join(dir, "empty.txt")); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("ExportFile(empty) = %v, want ErrEmptyGraph", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.txt")); !os.IsNotExist(err) {
		t.Error("empty text export should not create a file")
	}
	if _, _, err := ImportFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("ImportFile(missing) should fail")
	}
}
