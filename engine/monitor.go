package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/airpiano/config"
	"github.com/jsphweid/airpiano/model"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Monitor is the pull surface for the rendering collaborator: it serves the
// latest per-frame snapshot and the live settings over HTTP.
type Monitor struct {
	log *zap.Logger
	srv *http.Server

	mu   sync.RWMutex
	snap model.Snapshot
	cfg  config.Config
}

func NewMonitor(addr string, log *zap.Logger) *Monitor {
	m := &Monitor{log: log}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/state", m.handleState).Methods("GET")
	router.HandleFunc("/config", m.handleConfig).Methods("GET")

	m.srv = &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return m
}

// Publish replaces the snapshot renderers will see next.
func (m *Monitor) Publish(s model.Snapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
}

// PublishConfig mirrors the live settings.
func (m *Monitor) PublishConfig(c config.Config) {
	m.mu.Lock()
	m.cfg = c
	m.mu.Unlock()
}

func (m *Monitor) handleState(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	snap := m.snap
	m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (m *Monitor) handleConfig(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// Start serves in the background; a listener failure is logged, not fatal —
// the instrument keeps playing without its renderer.
func (m *Monitor) Start() {
	go func() {
		m.log.Info("monitor listening", zap.String("addr", m.srv.Addr))
		if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Warn("monitor server stopped", zap.Error(err))
		}
	}()
}

func (m *Monitor) Shutdown(ctx context.Context) {
	if err := m.srv.Shutdown(ctx); err != nil {
		m.log.Warn("monitor shutdown", zap.Error(err))
	}
}
