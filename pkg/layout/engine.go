package layout

import (
	"maps"
	"math"
	"math/rand"
	"slices"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Default simulation constants.
const (
	DefaultRepulsion       = 10000.0
	DefaultAttraction      = 0.0001
	DefaultMaxDisplacement = 100.0
	DefaultDamping         = 0.85
	DefaultIterations      = 1000
	DefaultMinDistance     = 10.0
	DefaultMargin          = 50.0
)

// Config holds the simulation constants.
type Config struct {
	Repulsion       float64 `toml:"repulsion" json:"repulsion"`
	Attraction      float64 `toml:"attraction" json:"attraction"`
	MaxDisplacement float64 `toml:"max_displacement" json:"max_displacement"`
	Damping         float64 `toml:"damping" json:"damping"`
	Iterations      int     `toml:"iterations" json:"iterations"`
	MinDistance     float64 `toml:"min_distance" json:"min_distance"`
	Margin          float64 `toml:"margin" json:"margin"`
}

// DefaultConfig returns the standard simulation constants.
func DefaultConfig() Config {
	return Config{
		Repulsion:       DefaultRepulsion,
		Attraction:      DefaultAttraction,
		MaxDisplacement: DefaultMaxDisplacement,
		Damping:         DefaultDamping,
		Iterations:      DefaultIterations,
		MinDistance:     DefaultMinDistance,
		Margin:          DefaultMargin,
	}
}

// Point is a vertex position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the drawing area positions are fitted into.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Topology is the read-only view of a graph the engine lays out.
// [*graph.Store] satisfies it.
type Topology interface {
	Vertices() []int
	Edges() []graph.Edge
}

// Engine owns the positions of one graph view.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	positions map[int]Point

	// fingerprint of the last computed run
	vertices []int
	edges    []graph.Edge
	viewport Viewport
	valid    bool
}

// New returns an Engine using cfg and rng. Zero-valued fields in cfg take
// their defaults. rng must not be nil.
func New(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		panic("layout: nil random source")
	}
	return &Engine{
		cfg:       withDefaults(cfg),
		rng:       rng,
		positions: make(map[int]Point),
	}
}

// Config returns the effective simulation constants.
func (e *Engine) Config() Config { return e.cfg }

// Invalidate forces the next Recompute to run the simulation even when the
// topology and viewport are unchanged.
func (e *Engine) Invalidate() { e.valid = false }

// Positions returns a copy of the current positions.
func (e *Engine) Positions() map[int]Point { return maps.Clone(e.positions) }

// Recompute lays out t inside vp and returns a copy of the positions.
//
// When neither the topology nor the viewport changed since the last call and
// Invalidate was not called, the cached positions are returned unchanged.
func (e *Engine) Recompute(t Topology, vp Viewport) map[int]Point {
	vertices := t.Vertices()
	edges := t.Edges()

	if e.valid && vp == e.viewport &&
		slices.Equal(vertices, e.vertices) && slices.Equal(edges, e.edges) {
		return e.Positions()
	}

	e.place(vertices, vp)
	for range e.cfg.Iterations {
		e.step(vertices, edges, vp)
	}
	e.center(vp)

	e.vertices = vertices
	e.edges = edges
	e.viewport = vp
	e.valid = true
	return e.Positions()
}

// place drops positions of vanished vertices and seeds new ones in the middle
// half of the viewport.
func (e *Engine) place(vertices []int, vp Viewport) {
	present := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		present[v] = true
	}
	maps.DeleteFunc(e.positions, func(v int, _ Point) bool { return !present[v] })

	for _, v := range vertices {
		if _, ok := e.positions[v]; ok {
			continue
		}
		e.positions[v] = Point{
			X: vp.Width/4 + e.rng.Float64()*vp.Width/2,
			Y: vp.Height/4 + e.rng.Float64()*vp.Height/2,
		}
	}
}

// step runs one synchronous relaxation iteration.
func (e *Engine) step(vertices []int, edges []graph.Edge, vp Viewport) {
	forces := make(map[int]Point, len(vertices))

	for _, v := range vertices {
		pv := e.positions[v]
		var f Point
		for _, u := range vertices {
			if u == v {
				continue
			}
			f = e.repel(f, pv, e.positions[u])
		}
		forces[v] = f
	}
	for _, edge := range edges {
		a, b := e.positions[edge.From], e.positions[edge.To]
		forces[edge.From] = e.attract(forces[edge.From], a, b)
		forces[edge.To] = e.attract(forces[edge.To], b, a)
	}

	for _, v := range vertices {
		f := clampMagnitude(forces[v], e.cfg.MaxDisplacement)
		p := e.positions[v]
		e.positions[v] = Point{
			X: clamp(p.X+f.X*e.cfg.Damping, e.cfg.Margin, vp.Width-e.cfg.Margin),
			Y: clamp(p.Y+f.Y*e.cfg.Damping, e.cfg.Margin, vp.Height-e.cfg.Margin),
		}
	}
}

// repel adds the inverse-square push of other on self. Coincident vertices
// are pushed along a direction drawn from the engine's random source.
func (e *Engine) repel(f, self, other Point) Point {
	dx, dy := self.X-other.X, self.Y-other.Y
	if dx == 0 && dy == 0 {
		angle := e.rng.Float64() * 2 * math.Pi
		dx, dy = math.Cos(angle), math.Sin(angle)
	}
	d := math.Max(e.cfg.MinDistance, math.Hypot(dx, dy))
	mag := e.cfg.Repulsion / (d * d)
	return Point{X: f.X + mag*dx/d, Y: f.Y + mag*dy/d}
}

// attract adds the spring pull of other on self.
func (e *Engine) attract(f, self, other Point) Point {
	dx, dy := other.X-self.X, other.Y-self.Y
	d := math.Max(e.cfg.MinDistance, math.Hypot(dx, dy))
	mag := e.cfg.Attraction * d * d
	return Point{X: f.X + mag*dx/d, Y: f.Y + mag*dy/d}
}

// center shifts all positions so the bounding box sits in the middle of vp.
func (e *Engine) center(vp Viewport) {
	if len(e.positions) == 0 {
		return
	}
	lo, hi := Bounds(e.positions)
	dx := (vp.Width-(hi.X-lo.X))/2 - lo.X
	dy := (vp.Height-(hi.Y-lo.Y))/2 - lo.Y
	for v, p := range e.positions {
		e.positions[v] = Point{X: p.X + dx, Y: p.Y + dy}
	}
}

// Bounds returns the corners of the bounding box of positions. Both are the
// zero Point when positions is empty.
func Bounds(positions map[int]Point) (lo, hi Point) {
	first := true
	for _, p := range positions {
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func withDefaults(c Config) Config {
	d := DefaultConfig()
	if c.Repulsion == 0 {
		c.Repulsion = d.Repulsion
	}
	if c.Attraction == 0 {
		c.Attraction = d.Attraction
	}
	if c.MaxDisplacement == 0 {
		c.MaxDisplacement = d.MaxDisplacement
	}
	if c.Damping == 0 {
		c.Damping = d.Damping
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.MinDistance == 0 {
		c.MinDistance = d.MinDistance
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	return c
}

func clampMagnitude(p Point, limit float64) Point {
	m := math.Hypot(p.X, p.Y)
	if m <= limit || m == 0 {
		return p
	}
	return Point{X: p.X * limit / m, Y: p.Y * limit / m}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
