// Package server exposes a graph coordinator over HTTP.
//
// # Routes
//
//	GET    /healthz                   build info
//	GET    /graph                     snapshot as JSON
//	PUT    /graph                     replace the graph with a JSON snapshot
//	DELETE /graph                     clear the graph
//	GET    /graph/lines               adjacency display lines
//	POST   /vertices                  {"id": 3}
//	DELETE /vertices/{id}
//	POST   /edges                     {"from": 0, "to": 1, "weight": 5, "directed": false}
//	PATCH  /edges/{u}/{v}             {"weight": 7}
//	DELETE /edges/{u}/{v}
//	POST   /generate                  {"vertices": 10, "edges": 15, "max_weight": 10}
//	GET    /traverse/{algo}/{start}   algo is bfs, dfs or dijkstra
//	GET    /layout?width=&height=     force-directed positions
//	GET    /render.svg?weights=&highlight=1,2
//
// Errors are JSON objects {"code": "...", "message": "..."} with codes from
// the errors package.
//
// # Concurrency
//
// The coordinator and layout engine are single-threaded. Every handler that
// touches them holds the server mutex, so requests are applied one at a time
// in arrival order.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphdesk/pkg/coordinator"
	"github.com/matzehuels/graphdesk/pkg/layout"
	"github.com/matzehuels/graphdesk/pkg/pipeline"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server serves one coordinator.
type Server struct {
	mu     sync.Mutex
	coord  *coordinator.Coordinator
	engine *layout.Engine
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger

	router chi.Router
}

// New wires a server around coord. runner renders SVG and caches the result;
// opts supplies the default viewport, seed and simulation constants. A nil
// logger discards output.
func New(coord *coordinator.Coordinator, runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	opts.Logger = logger
	opts.SetLayoutDefaults()

	s := &Server{
		coord:  coord,
		engine: layout.New(opts.Physics, rand.New(rand.NewSource(opts.Seed))),
		runner: runner,
		opts:   opts,
		logger: logger,
	}
	coord.Subscribe(coordinator.ListenerFunc(s.engine.Invalidate))
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/graph", func(r chi.Router) {
		r.Get("/", s.handleGetGraph)
		r.Put("/", s.handlePutGraph)
		r.Delete("/", s.handleClearGraph)
		r.Get("/lines", s.handleDisplayLines)
	})
	r.Post("/vertices", s.handleAddVertex)
	r.Delete("/vertices/{id}", s.handleRemoveVertex)
	r.Post("/edges", s.handleAddEdge)
	r.Patch("/edges/{u}/{v}", s.handleUpdateEdge)
	r.Delete("/edges/{u}/{v}", s.handleRemoveEdge)
	r.Post("/generate", s.handleGenerate)
	r.Get("/traverse/{algo}/{start}", s.handleTraverse)
	r.Get("/layout", s.handleLayout)
	r.Get("/render.svg", s.handleRender)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
