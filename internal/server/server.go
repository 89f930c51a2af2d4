// Package server exposes experiment runs over HTTP: the cost ledger, the
// prompt history, and a websocket tail of new cost entries.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ewhitt/promptlab/internal/experiment"
	"github.com/ewhitt/promptlab/internal/history"
)

// Config holds server configuration.
type Config struct {
	Port      int
	OutputDir string // experiment output directory holding the ledger and history
	AllowAll  bool   // allow all CORS origins (dev mode)
}

// Server serves one experiment output directory.
type Server struct {
	cfg        Config
	historyDir string
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given output directory. historyDir may be
// empty when prompt history is disabled.
func New(cfg Config, historyDir string) *Server {
	s := &Server{cfg: cfg, historyDir: historyDir}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/costs", s.handleCosts)
	r.Get("/api/costs/summary", s.handleCostSummary)
	r.Get("/api/history", s.handleHistory)
	r.Get("/ws/costs", s.handleCostTail)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	entries, err := experiment.ReadLedger(s.cfg.OutputDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]map[string]any, len(entries))
	for i, e := range entries {
		m := map[string]any{"cost": e.Cost}
		for k, v := range e.Metadata {
			m[k] = v
		}
		out[i] = m
	}
	writeJSON(w, out)
}

func (s *Server) handleCostSummary(w http.ResponseWriter, r *http.Request) {
	entries, err := experiment.ReadLedger(s.cfg.OutputDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]any{
		"total_usd": experiment.TotalCost(entries),
		"entries":   len(entries),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.historyDir == "" {
		writeError(w, http.StatusNotFound, fmt.Errorf("prompt history is not enabled"))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	store, err := history.NewStore(s.historyDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	records, err := store.List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(w, records)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("promptlab server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
