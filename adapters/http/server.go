// Package http serves the read-only spec API used by the modeling platform
// and by humans poking at a running watch session.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/specforge/ports"
)

// Server exposes the spec catalog and artifacts over HTTP.
type Server struct {
	catalog ports.Catalog
	store   ports.SpecStore
	logger  zerolog.Logger
	metrics bool
}

// NewServer creates the API server. When metrics is true a Prometheus
// endpoint is mounted at /metrics.
func NewServer(catalog ports.Catalog, store ports.SpecStore, logger zerolog.Logger, metrics bool) *Server {
	return &Server{catalog: catalog, store: store, logger: logger, metrics: metrics}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/specs", s.handleListSpecs)
	r.Get("/specs/{name}", s.handleGetSpec)
	r.Get("/runs", s.handleListRuns)
	if s.metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ListenAndServe serves until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("spec API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSpecs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.ListSpecs(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	type item struct {
		Name        string    `json:"name"`
		SchemaID    string    `json:"schemaId"`
		Fingerprint string    `json:"fingerprint"`
		Parent      string    `json:"parent,omitempty"`
		EmittedAt   time.Time `json:"emittedAt"`
	}
	out := make([]item, 0, len(entries))
	for _, e := range entries {
		out = append(out, item(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, err := s.catalog.GetSpec(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	// The catalog is the index; the artifact carries the full document.
	prior, err := s.store.LoadPrior(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	full, ok := prior[entry.Name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "artifact missing for " + name})
		return
	}
	writeJSON(w, http.StatusOK, full)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.catalog.ListRuns(r.Context(), 20)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("spec API request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
