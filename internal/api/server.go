package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docnum/internal/config"
	"github.com/dgallion1/docnum/internal/pipeline"
	"github.com/dgallion1/docnum/internal/render"
	"github.com/dgallion1/docnum/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docnum.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator // nil when no page server is configured
	renderer     *render.Renderer
	renders      *stats.Window
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		renderer:     renderer,
		renders:      stats.NewWindow(time.Hour),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/outline", s.handleOutline)
		r.Post("/pages/{name}/render", s.handlePageRender)
		r.Get("/jobs/{jobID}", s.handleJobStatus)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
