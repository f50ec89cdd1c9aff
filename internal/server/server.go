// Package server exposes the pipeline's trigger surface over HTTP. A
// scheduled invocation (GET /cron) and an on-demand request (POST /runs)
// both run the pipeline for the current window; per-source convenience
// routes mirror the endpoints the pipeline grew up with.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pintuSINGH2000/sraping/internal/config"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/logger"
	"github.com/pintuSINGH2000/sraping/internal/pipeline"
)

// Runner is the orchestration dependency; tests stub it.
type Runner interface {
	Run(ctx context.Context, cfg pipeline.RunConfig) (*pipeline.Summary, error)
}

// Server handles trigger requests.
type Server struct {
	runner Runner
	cfg    *config.Config
}

// New creates a Server around a runner and its configuration.
func New(runner Runner, cfg *config.Config) *Server {
	return &Server{runner: runner, cfg: cfg}
}

// runResponse is the success payload of every trigger route.
type runResponse struct {
	Message string                   `json:"message"`
	RunID   string                   `json:"run_id"`
	Sources []pipeline.SourceSummary `json:"sources"`
	Events  []*event.Event           `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/runs", s.handleRun(nil))
	r.Get("/cron", s.handleRun(nil))

	// Per-source routes, named for the endpoints this service replaced.
	r.Get("/scrape-month", s.handleRun([]string{"kidsout"}))
	r.Get("/scrape-activityhero", s.handleRun([]string{"activityhero"}))
	r.Get("/scrape-galileo-camps", s.handleRun([]string{"galileo"}))
	r.Get("/scrape-campity", s.handleRun([]string{"campity"}))

	return r
}

// handleRun executes a pipeline pass restricted to the given sources
// (nil means the configured set).
func (s *Server) handleRun(sources []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runCfg := pipeline.RunConfig{
			Window:        s.cfg.Window(nowUTC()),
			Sources:       sources,
			EnrichWorkers: s.cfg.EnrichWorkers,
			PriceIndex:    s.cfg.PriceIndex,
		}
		if sources == nil {
			runCfg.Sources = s.cfg.Sources
		}

		summary, err := s.runner.Run(r.Context(), runCfg)
		if err != nil {
			logger.Error("run failed", logger.Fields{"path": r.URL.Path}, err)
			status := http.StatusInternalServerError
			if summary != nil {
				// Run produced a summary but every source failed.
				status = http.StatusBadGateway
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, runResponse{
			Message: "Scraping completed!",
			RunID:   summary.RunID,
			Sources: summary.Sources,
			Events:  summary.Events,
		})
	}
}

func nowUTC() time.Time { return time.Now().UTC() }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
