package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/layout"
)

func testGraph(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, e := range [][3]int{{0, 1, 5}, {0, 2, 3}, {1, 2, 1}, {2, 3, 7}} {
		if err := g.AddEdge(e[0], e[1], e[2], false); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height = %v, want %v", opts.Height, DefaultHeight)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %v, want %v", opts.Seed, DefaultSeed)
	}
	if opts.Physics != layout.DefaultConfig() {
		t.Errorf("Physics = %+v, want defaults", opts.Physics)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetLayoutDefaults_IterationsOverride(t *testing.T) {
	opts := Options{Iterations: 25}
	opts.SetLayoutDefaults()

	if opts.Physics.Iterations != 25 {
		t.Errorf("Physics.Iterations = %d, want 25", opts.Physics.Iterations)
	}
	if opts.Physics.Repulsion != layout.DefaultRepulsion {
		t.Errorf("Physics.Repulsion = %v, want %v", opts.Physics.Repulsion, layout.DefaultRepulsion)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Defaults", Options{}, false},
		{"NegativeWidth", Options{Width: -1}, true},
		{"NegativeIterations", Options{Iterations: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateForRender(); err == nil {
		t.Error("ValidateForRender() expected error for unknown format")
	}
}

func TestRenderKeyOpts_ScaleOnlyForPNG(t *testing.T) {
	opts := Options{PNGScale: 3}
	if got := opts.RenderKeyOpts(FormatPNG).Scale; got != 3 {
		t.Errorf("png Scale = %v, want 3", got)
	}
	if got := opts.RenderKeyOpts(FormatSVG).Scale; got != 0 {
		t.Errorf("svg Scale = %v, want 0", got)
	}
}

func TestLayoutKeyOpts_PhysicsChangesKey(t *testing.T) {
	a := Options{}
	a.SetLayoutDefaults()
	b := Options{}
	b.SetLayoutDefaults()
	b.Physics.Repulsion = 1

	keyer := cache.NewDefaultKeyer()
	if keyer.LayoutKey("g", a.LayoutKeyOpts()) == keyer.LayoutKey("g", b.LayoutKeyOpts()) {
		t.Error("LayoutKey() should differ when simulation constants differ")
	}
}

func TestGenerateLayout_Deterministic(t *testing.T) {
	g := testGraph(t)
	opts := Options{Iterations: 50}
	opts.SetLayoutDefaults()

	first := GenerateLayout(g, opts)
	second := GenerateLayout(g, opts)

	if len(first.Positions) != g.VertexCount() {
		t.Fatalf("len(Positions) = %d, want %d", len(first.Positions), g.VertexCount())
	}
	for v, p := range first.Positions {
		if second.Positions[v] != p {
			t.Errorf("vertex %d: %v then %v, want equal positions for equal seed", v, p, second.Positions[v])
		}
	}
	if first.Viewport != (layout.Viewport{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("Viewport = %+v, want defaults", first.Viewport)
	}
}

func TestRunner_LayoutCache(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	g := testGraph(t)
	opts := Options{Iterations: 20}

	first, hit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("first call should miss the cache")
	}

	second, hit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error = %v", err)
	}
	if !hit {
		t.Error("second call should hit the cache")
	}
	for v, p := range first.Positions {
		if second.Positions[v] != p {
			t.Errorf("cached position of %d = %v, want %v", v, second.Positions[v], p)
		}
	}

	_, hit, err = r.GenerateLayoutWithCacheInfo(ctx, g, Options{Iterations: 20, Refresh: true})
	if err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("Refresh should bypass the cache")
	}

	if err := g.AddEdge(3, 4, 1, false); err != nil {
		t.Fatal(err)
	}
	_, hit, _ = r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if hit {
		t.Error("changed graph should miss the cache")
	}
}

func TestRunner_Execute(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	g := testGraph(t)
	opts := Options{
		Iterations:  20,
		Formats:     []string{FormatDOT, FormatJSON},
		ShowWeights: true,
		Highlighted: []int{0, 2},
	}

	result, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.VertexCount != 4 || result.Stats.EdgeCount != 4 {
		t.Errorf("Stats = %+v, want 4 vertices and 4 edges", result.Stats)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want misses on first run", result.CacheInfo)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `label="7"`) {
		t.Errorf("dot artifact missing weight label:\n%s", dot)
	}
	if !strings.Contains(dot, "pos=") {
		t.Errorf("dot artifact missing pinned positions:\n%s", dot)
	}

	var decoded Layout
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(decoded.Positions) != 4 {
		t.Errorf("json artifact has %d positions, want 4", len(decoded.Positions))
	}

	again, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want hits on second run", again.CacheInfo)
	}
	if string(again.Artifacts[FormatDOT]) != dot {
		t.Error("cached dot artifact differs from rendered one")
	}
}

func TestRunner_RenderKeyCoversWeights(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	g := testGraph(t)
	opts := Options{Iterations: 10, Formats: []string{FormatDOT}, ShowWeights: true}

	l, err := r.GenerateLayout(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(ctx, l, g, opts); err != nil {
		t.Fatal(err)
	}

	if err := g.UpdateEdgeWeight(2, 3, 9); err != nil {
		t.Fatal(err)
	}
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("changed weight should miss the render cache")
	}
	if !strings.Contains(string(artifacts[FormatDOT]), `label="9"`) {
		t.Error("re-rendered dot missing updated weight")
	}
}

func TestRunner_Load(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graphio.ExportFile(testGraph(t), path); err != nil {
		t.Fatal(err)
	}

	g, report, err := r.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if report.Vertices != 4 || report.Edges != 4 {
		t.Errorf("report = %+v, want 4 vertices and 4 edges", report)
	}
	if w, _ := g.Weight(3, 2); w != 7 {
		t.Errorf("Weight(3, 2) = %d, want 7", w)
	}

	if _, _, err := r.Load(ctx, filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v, want defaults filled", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
