// Package api exposes the planning pipeline over HTTP.
//
// The API mirrors the CLI: a request carries the same options the CLI
// accepts (bulletin content, demand, geometry), runs the shared pipeline
// runner, and returns the placed floor plan plus stats. All responses are
// JSON except flow diagram artifacts, which are served with their native
// content type.
//
// # Endpoints
//
//	POST /api/v1/plans  - balance, place and return a floor plan
//	POST /api/v1/flow   - render the line-flow diagram (dot, svg, png)
//	GET  /healthz       - liveness probe
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stitchline/stitchline/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server around a pipeline runner.
// A nil logger falls back to the default logger.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plans", s.handlePlans)
		r.Post("/flow", s.handleFlow)
	})

	return r
}

// logRequests logs method, path, status and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
