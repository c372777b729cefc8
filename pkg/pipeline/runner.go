package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options as long as the cache is safe for
// concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads a graph file, choosing the format from the extension.
func (r *Runner) Load(ctx context.Context, path string) (*graph.Store, graphio.LoadReport, error) {
	format, _ := graphio.FormatFromPath(path)
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, string(format), path)

	g, report, err := graphio.ImportFile(path)
	observability.Pipeline().OnLoadComplete(ctx, string(format), path, report.Vertices, time.Since(start), err)
	if err != nil {
		return nil, report, err
	}

	r.Logger.Info("loaded graph",
		"path", path,
		"vertices", report.Vertices,
		"edges", report.Edges,
		"skipped", report.Skipped)
	return g, report, nil
}

// Execute runs the layout → render pipeline on g with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Store, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Graph: g}
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.EdgeCount = g.EdgeCount()
	if h, err := cache.HashJSON(graphio.FromStore(g)); err == nil {
		result.GraphHash = h
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"vertices", len(l.Positions),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g *graph.Store, opts Options) (Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, false, err
	}

	graphHash, err := cache.HashJSON(graphio.FromStore(g))
	if err != nil {
		return Layout{}, false, fmt.Errorf("hash graph: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		var cached Layout
		if hit, err := cache.GetJSON(ctx, r.Cache, cache.KeyTypeLayout, cacheKey, &cached); err == nil && hit {
			return cached, true, nil
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "error", err)
		}
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, g.VertexCount())
	l := GenerateLayout(g, opts)
	observability.Pipeline().OnLayoutComplete(ctx, g.VertexCount(), time.Since(start), nil)

	if err := cache.SetJSON(ctx, r.Cache, cache.KeyTypeLayout, cacheKey, l, LayoutTTL); err != nil {
		opts.Logger.Warn("layout cache write failed", "error", err)
	}
	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g *graph.Store, opts Options) (Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l Layout, g *graph.Store, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Edge weights are drawn, so the key covers the graph as well as positions.
	layoutHash, err := cache.HashJSON(struct {
		Layout Layout           `json:"layout"`
		Graph  graphio.Document `json:"graph"`
	}{l, graphio.FromStore(g)})
	if err != nil {
		return nil, false, fmt.Errorf("hash layout: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.RenderKey(layoutHash, opts.RenderKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, cache.KeyTypeRender)
				break
			}
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeRender)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderFromLayout(ctx, l, g, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.RenderKey(layoutHash, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, RenderTTL); err != nil {
			opts.Logger.Warn("render cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeRender, len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l Layout, g *graph.Store, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
