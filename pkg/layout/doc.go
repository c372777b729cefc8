// Package layout computes 2-D vertex positions with a force-directed
// simulation.
//
// Every vertex repels every other with an inverse-square force and each edge
// pulls its endpoints together with a spring whose force grows with the square
// of its length. The simulation runs a fixed number of synchronous iterations:
// all forces are computed from the current positions before any vertex moves.
//
// # Caching
//
// An [Engine] remembers the topology and viewport of its last run. Calling
// [Engine.Recompute] again with the same inputs returns the cached positions
// without touching the random source, so a redraw never reshuffles the
// picture. Topology or viewport changes, or an explicit [Engine.Invalidate],
// trigger a new relaxation that starts from the previous positions.
//
// # Determinism
//
// Initial placement draws from the injected *rand.Rand. Two engines built from
// the same seed produce identical positions for identical inputs.
package layout
