// Package pipeline runs the load → layout → render flow shared by the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a graph file in any supported format
//  2. Layout: compute force-directed vertex positions
//  3. Render: draw the laid-out graph as SVG, PNG, PDF, DOT or JSON
//
// Each stage can be run on its own. Layouts and artifacts are cached by the
// [Runner], keyed by a content hash of the graph snapshot and the options that
// affect the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, _, err := runner.Load(ctx, "graph.csv")
//	result, err := runner.Execute(ctx, g, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultSeed is the default layout seed for reproducibility.
	DefaultSeed = int64(42)

	// LayoutTTL is how long computed layouts stay cached.
	LayoutTTL = 7 * 24 * time.Hour

	// RenderTTL is how long rendered artifacts stay cached.
	RenderTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	ShowWeights bool     `json:"show_weights,omitempty"`
	Highlighted []int    `json:"highlighted,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Physics layout.Config `json:"-"`
	Logger  *log.Logger   `json:"-"`
}

// Layout is the serializable result of the layout stage.
type Layout struct {
	Viewport  layout.Viewport      `json:"viewport"`
	Seed      int64                `json:"seed"`
	Positions map[int]layout.Point `json:"positions"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the snapshot the pipeline ran on.
	Graph *graph.Store

	// GraphHash is the content hash of the snapshot.
	GraphHash string

	// Layout holds the computed positions.
	Layout Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Physics == (layout.Config{}) {
		o.Physics = layout.DefaultConfig()
	}
	if o.Iterations != 0 {
		o.Physics.Iterations = o.Iterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("invalid viewport %gx%g", o.Width, o.Height)
	}
	if o.Iterations < 0 {
		return fmt.Errorf("invalid iterations: %d", o.Iterations)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	physics, _ := cache.HashJSON(o.Physics)
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Seed:       o.Seed,
		Iterations: o.Physics.Iterations,
		Physics:    physics,
	}
}

// RenderKeyOpts returns cache key options for rendering one format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	var scale float64
	if format == FormatPNG {
		scale = o.PNGScale
	}
	return cache.RenderKeyOpts{
		Format:      format,
		ShowWeights: o.ShowWeights,
		Highlighted: o.Highlighted,
		Scale:       scale,
	}
}
