package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphdesk/pkg/buildinfo"
	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph/shortest"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/layout"
	"github.com/matzehuels/graphdesk/pkg/pipeline"
)

// =============================================================================
// Request and response bodies
// =============================================================================

type vertexRequest struct {
	ID *int `json:"id"`
}

type edgeRequest struct {
	From     *int `json:"from"`
	To       *int `json:"to"`
	Weight   int  `json:"weight"`
	Directed bool `json:"directed"`
}

type weightRequest struct {
	Weight *int `json:"weight"`
}

type generateRequest struct {
	Vertices  int `json:"vertices"`
	Edges     int `json:"edges"`
	MaxWeight int `json:"max_weight"`
}

type traversalResponse struct {
	Algorithm string `json:"algorithm"`
	Start     int    `json:"start"`
	Order     []int  `json:"order"`
}

type distanceEntry struct {
	Vertex   int `json:"vertex"`
	Distance int `json:"distance"`
}

type distancesResponse struct {
	Algorithm string          `json:"algorithm"`
	Start     int             `json:"start"`
	Distances []distanceEntry `json:"distances"`
}

type layoutResponse struct {
	Viewport  layout.Viewport      `json:"viewport"`
	Positions map[int]layout.Point `json:"positions"`
}

// =============================================================================
// Graph
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := graphio.FromStore(s.coord.Snapshot())
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	var doc graphio.Document
	if err := decode(w, r, &doc); err != nil {
		writeError(w, err)
		return
	}
	g, err := doc.ToStore()
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	err = s.coord.SetGraph(g)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphio.FromStore(g))
}

func (s *Server) handleClearGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.coord.Clear()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDisplayLines(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lines := s.coord.DisplayLines()
	s.mu.Unlock()
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"lines": lines})
}

// =============================================================================
// Mutations
// =============================================================================

func (s *Server) handleAddVertex(w http.ResponseWriter, r *http.Request) {
	var req vertexRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ID == nil {
		writeError(w, gderrors.New(gderrors.ErrCodeInvalidInput, "id is required"))
		return
	}

	s.mu.Lock()
	s.coord.AddVertex(*req.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]int{"id": *req.ID})
}

func (s *Server) handleRemoveVertex(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	s.coord.RemoveVertex(id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, gderrors.New(gderrors.ErrCodeInvalidInput, "from and to are required"))
		return
	}

	s.mu.Lock()
	var err error
	if req.Directed {
		err = s.coord.AddDirectedEdge(*req.From, *req.To, req.Weight)
	} else {
		err = s.coord.AddEdge(*req.From, *req.To, req.Weight)
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, graphio.EdgeRecord{
		From: *req.From, To: *req.To, Weight: req.Weight, Directed: req.Directed,
	})
}

func (s *Server) handleUpdateEdge(w http.ResponseWriter, r *http.Request) {
	u, v, err := edgeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req weightRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Weight == nil {
		writeError(w, gderrors.New(gderrors.ErrCodeInvalidInput, "weight is required"))
		return
	}

	s.mu.Lock()
	err = s.coord.UpdateEdgeWeight(u, v, *req.Weight)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"from": u, "to": v, "weight": *req.Weight})
}

func (s *Server) handleRemoveEdge(w http.ResponseWriter, r *http.Request) {
	u, v, err := edgeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	err = s.coord.RemoveEdge(u, v)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req := generateRequest{MaxWeight: 10}
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := gderrors.ValidateRandomGraph(req.Vertices, req.Edges, req.MaxWeight); err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	err := s.coord.GenerateRandomGraph(req.Vertices, req.Edges, req.MaxWeight)
	doc := graphio.FromStore(s.coord.Snapshot())
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func edgeParams(r *http.Request) (u, v int, err error) {
	if u, err = intParam(r, "u"); err != nil {
		return 0, 0, err
	}
	if v, err = intParam(r, "v"); err != nil {
		return 0, 0, err
	}
	return u, v, nil
}

// =============================================================================
// Queries
// =============================================================================

func (s *Server) handleTraverse(w http.ResponseWriter, r *http.Request) {
	start, err := intParam(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	algo := chi.URLParam(r, "algo")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch algo {
	case "bfs", "dfs":
		var order []int
		if algo == "bfs" {
			order, err = s.coord.BFS(start)
		} else {
			order, err = s.coord.DFS(start)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, traversalResponse{Algorithm: algo, Start: start, Order: order})
	case "dijkstra":
		dist, err := s.coord.ShortestPaths(start)
		if err != nil {
			writeError(w, err)
			return
		}
		resp := distancesResponse{Algorithm: algo, Start: start, Distances: []distanceEntry{}}
		for _, d := range shortest.Ordered(dist) {
			resp.Distances = append(resp.Distances, distanceEntry{Vertex: d.Vertex, Distance: d.Distance})
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		writeError(w, unsupportedAlgorithm(algo))
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	vp, err := s.viewport(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	positions := s.engine.Recompute(s.coord.Snapshot(), vp)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, layoutResponse{Viewport: vp, Positions: positions})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	vp, err := s.viewport(r)
	if err != nil {
		writeError(w, err)
		return
	}
	highlighted, err := intListQuery(r, "highlight")
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	g := s.coord.Snapshot()
	positions := s.engine.Recompute(g, vp)
	s.mu.Unlock()

	opts := s.opts
	opts.Width, opts.Height = vp.Width, vp.Height
	opts.Formats = []string{pipeline.FormatSVG}
	opts.ShowWeights = boolQuery(r, "weights")
	opts.Highlighted = highlighted

	l := pipeline.Layout{Viewport: vp, Seed: opts.Seed, Positions: positions}
	artifacts, err := s.runner.Render(r.Context(), l, g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (s *Server) viewport(r *http.Request) (layout.Viewport, error) {
	width, err := floatQuery(r, "width", s.opts.Width)
	if err != nil {
		return layout.Viewport{}, err
	}
	height, err := floatQuery(r, "height", s.opts.Height)
	if err != nil {
		return layout.Viewport{}, err
	}
	if err := gderrors.ValidateViewport(width, height); err != nil {
		return layout.Viewport{}, err
	}
	return layout.Viewport{Width: width, Height: height}, nil
}
