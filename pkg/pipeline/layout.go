package pipeline

import (
	"math/rand"

	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the force-directed simulation for g with a fresh engine
// seeded from opts.Seed, so equal inputs always produce equal positions.
// Call ValidateForLayout first; GenerateLayout does not apply defaults.
func GenerateLayout(g *graph.Store, opts Options) Layout {
	vp := layout.Viewport{Width: opts.Width, Height: opts.Height}
	engine := layout.New(opts.Physics, rand.New(rand.NewSource(opts.Seed)))
	return Layout{
		Viewport:  vp,
		Seed:      opts.Seed,
		Positions: engine.Recompute(g, vp),
	}
}

// Bounds returns the bounding box of the layout's positions.
func (l Layout) Bounds() (lo, hi layout.Point) {
	return layout.Bounds(l.Positions)
}
