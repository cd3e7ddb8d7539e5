// Package server is the `skyshield serve` backend: it serves the browser
// radar, accepts detections over HTTP and pushes every detection to the
// connected WebSocket clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
)

var log = config.Component("server")

const defaultRecentLimit = 100

// Server wires the detection log, the hub and the simulator together.
type Server struct {
	cfg     config.ServerConfig
	static  fs.FS
	log     *DetectionLog
	hub     *Hub
	metrics *Metrics
	now     func() time.Time
}

// New creates a server. static holds the browser assets served at /.
func New(cfg config.ServerConfig, static fs.FS) *Server {
	m := NewMetrics()
	return &Server{
		cfg:     cfg,
		static:  static,
		log:     NewDetectionLog(cfg.DetectionLog),
		hub:     NewHub(m),
		metrics: m,
		now:     time.Now,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	r.Route("/api/detections", func(r chi.Router) {
		r.Get("/", s.handleListDetections)
		r.Post("/", s.handlePostDetection)
	})
	r.Handle("/ws", s.hub)
	if s.static != nil {
		r.Handle("/*", http.FileServer(http.FS(s.static)))
	}
	return r
}

// Publish stores a detection and broadcasts it.
func (s *Server) Publish(d Detection) {
	s.log.Add(d)
	s.metrics.detections.WithLabelValues(d.Source).Inc()
	s.hub.BroadcastUpdate(d.Update())
}

// Run serves until ctx is cancelled, running the heartbeat and, when
// enabled, the simulator alongside.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.hub.RunHeartbeat(ctx, s.cfg.HeartbeatInterval)
	if s.cfg.Simulate {
		sim := feed.NewSynthetic(feed.BackendScenario(), time.Now().UnixNano())
		go sim.Run(ctx, s.emit)
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", s.cfg.Addr).Info("serving radar")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// emit adapts generator output to Publish.
func (s *Server) emit(msg feed.Message) {
	if u, ok := msg.(feed.TrackUpdate); ok {
		s.Publish(FromUpdate(u))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePostDetection(w http.ResponseWriter, r *http.Request) {
	var req DetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.rejected.Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.metrics.rejected.Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	d := req.Stamp(s.now())
	s.Publish(d)
	log.WithFields(logrus.Fields{"id": d.ID, "source": d.Source}).Info("detection stored")
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleListDetections(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.log.Recent(limit))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
