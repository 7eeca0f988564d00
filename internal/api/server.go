// Package api serves the journal over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fitness-journal/internal/logging"
	"fitness-journal/internal/metrics"
	"fitness-journal/internal/services"
)

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Version      string

	CORSOrigin        string
	AuthRatePerMinute int
	AuthRateBurst     int
	// RequestTimeout bounds the store work of each authenticated request.
	RequestTimeout time.Duration

	MetricsEnabled bool
	MetricsPath    string
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the route table. /entries/stats is registered before
// /entries/{id} so "stats" is never taken for an id.
func NewRouter(cfg ServerConfig, container *services.ServiceContainer, health *HealthHandler) http.Handler {
	h := NewHandler(container)
	limiter := newClientLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	authenticated := func(fn http.HandlerFunc) http.Handler {
		var next http.Handler = fn
		if cfg.RequestTimeout > 0 {
			next = withTimeout(cfg.RequestTimeout)(next)
		}
		return requireAuth(container.AuthService)(next)
	}

	r := mux.NewRouter()
	r.Use(recordMetrics)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	// Health and metrics
	r.HandleFunc("/health", health.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.HandleReadiness).Methods(http.MethodGet)
	if cfg.MetricsEnabled {
		r.Handle(cfg.MetricsPath, metrics.Handler()).Methods(http.MethodGet)
	}

	// Auth
	r.Handle("/auth/register", limiter.Middleware(http.HandlerFunc(h.register))).Methods(http.MethodPost)
	r.Handle("/auth/login", limiter.Middleware(http.HandlerFunc(h.login))).Methods(http.MethodPost)
	r.Handle("/auth/me", authenticated(h.me)).Methods(http.MethodGet)

	// Entries
	r.Handle("/entries", authenticated(h.listEntries)).Methods(http.MethodGet)
	r.Handle("/entries", authenticated(h.createEntry)).Methods(http.MethodPost)
	r.Handle("/entries/stats", authenticated(h.entryStats)).Methods(http.MethodGet)
	r.Handle("/entries/{id}", authenticated(h.getEntry)).Methods(http.MethodGet)
	r.Handle("/entries/{id}", authenticated(h.updateEntry)).Methods(http.MethodPut, http.MethodPatch)
	r.Handle("/entries/{id}", authenticated(h.deleteEntry)).Methods(http.MethodDelete)

	origin := cfg.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return logRequests(cors(origin)(r))
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, container *services.ServiceContainer, health *HealthHandler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(cfg, container, health),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	logging.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Infof("Stopping HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	logging.Infof("HTTP server stopped")
	return nil
}
