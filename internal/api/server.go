// Package api serves the latest benchmark report, on-demand runs, run
// history, and Prometheus metrics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shizukutanaka/Hayate/internal/report"
	"github.com/shizukutanaka/Hayate/internal/storage"
)

// RunFunc executes one complete suite run. The server serializes calls: a
// benchmark suite measuring the whole CPU cannot meaningfully run twice at
// once.
type RunFunc func(ctx context.Context) (*report.Report, error)

// Server is the HTTP front end.
type Server struct {
	logger  *zap.Logger
	addr    string
	store   *storage.Store // may be nil
	run     RunFunc
	metrics *Metrics

	mu     sync.RWMutex
	latest *report.Report

	running atomic.Bool
	server  *http.Server
}

// NewServer creates the API server. store may be nil when history is
// disabled.
func NewServer(logger *zap.Logger, addr string, store *storage.Store, run RunFunc) *Server {
	s := &Server{
		logger:  logger.Named("api"),
		addr:    addr,
		store:   store,
		run:     run,
		metrics: NewMetrics(),
	}
	return s
}

// SetLatest seeds the latest report, e.g. from a run performed before the
// server started.
func (s *Server) SetLatest(r *report.Report) {
	s.mu.Lock()
	s.latest = r
	s.mu.Unlock()
	s.metrics.Observe(r)
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/run", s.handleRun).Methods(http.MethodPost)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", s.handleHistoryGet).Methods(http.MethodGet)
	return r
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // runs can take minutes
	}
	s.logger.Info("API server listening", zap.String("addr", s.addr))
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest == nil {
		writeError(w, http.StatusNotFound, "no benchmark run has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a benchmark run is already in progress")
		return
	}
	defer s.running.Store(false)

	rep, err := s.run(r.Context())
	if err != nil {
		s.logger.Error("Benchmark run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.latest = rep
	s.mu.Unlock()
	s.metrics.Observe(rep)

	if s.store != nil {
		if err := s.store.Save(rep); err != nil {
			s.logger.Error("Failed to save run", zap.String("id", rep.ID), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run history is disabled")
		return
	}
	runs, err := s.store.List(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run history is disabled")
		return
	}
	id := mux.Vars(r)["id"]
	rep, err := s.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
