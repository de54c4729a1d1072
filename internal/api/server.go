// Package api exposes the analyzer over HTTP.
//
// The API mirrors the service contract: a multipart upload of a zipped
// project plus a requirement description in, a structured analysis report
// out. Each request gets its own workspace directory that is removed when
// the request finishes.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/seekr-dev/seekr/internal/config"
	"github.com/seekr-dev/seekr/internal/history"
)

// Server is the HTTP API server.
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	addr    string
	logger  *slog.Logger
	cfg     *config.Config
	history *history.Store
}

// NewServer creates an HTTP server. hist may be nil, in which case
// analyses are not recorded.
func NewServer(cfg *config.Config, hist *history.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		addr:    cfg.Server.Addr,
		logger:  logger,
		cfg:     cfg,
		history: hist,
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler so tests can drive the full
// middleware chain without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("POST /analyze", s.handleAnalyze)
	s.router.HandleFunc("POST /analyze-with-verification", s.handleAnalyzeWithVerification)
}

// applyMiddleware wraps the handler with middleware; the last one applied
// runs first.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
