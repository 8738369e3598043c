// Package api implements the HTTP API server for tdo: token auth plus
// task and label CRUD over JSON.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"tdo/internal/serverdb"
)

// Server is the HTTP API server for tdo.
type Server struct {
	config    Config
	http      *http.Server
	store     *serverdb.ServerDB
	metrics   *Metrics
	jwtSecret []byte
}

// NewServer creates a new Server with the given config and store.
// If no JWT secret is configured, an ephemeral one is generated and
// tokens stop working across restarts.
func NewServer(cfg Config, store *serverdb.ServerDB) (*Server, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(b))
		slog.Warn("TDO_JWT_SECRET not set, using ephemeral secret")
	}

	s := &Server{
		config:    cfg,
		store:     store,
		metrics:   NewMetrics(),
		jwtSecret: secret,
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health & metrics
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /metricz", s.handleMetrics)

	// Auth
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/me", s.requireAuth(s.handleMe))

	// Tasks
	mux.HandleFunc("GET /tasks/{$}", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /tasks/{$}", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("GET /tasks/user/{userID}", s.requireAuth(s.handleListUserTasks))
	mux.HandleFunc("GET /tasks/{id}", s.requireAuth(s.handleGetTask))
	mux.HandleFunc("PATCH /tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("PUT /tasks/{id}/labels", s.requireAuth(s.handleSetTaskLabels))
	mux.HandleFunc("PATCH /tasks/{id}/toggle", s.requireAuth(s.handleToggleTask))
	mux.HandleFunc("DELETE /tasks/{id}", s.requireAuth(s.handleDeleteTask))

	// Labels
	mux.HandleFunc("GET /labels/{$}", s.requireAuth(s.handleListLabels))
	mux.HandleFunc("POST /labels/{$}", s.requireAuth(s.handleCreateLabel))
	mux.HandleFunc("GET /labels/user/{userID}", s.requireAuth(s.handleListUserLabels))
	mux.HandleFunc("GET /labels/{id}", s.requireAuth(s.handleGetLabel))
	mux.HandleFunc("PATCH /labels/{id}", s.requireAuth(s.handleUpdateLabel))
	mux.HandleFunc("DELETE /labels/{id}", s.requireAuth(s.handleDeleteLabel))

	return chain(mux, recoveryMiddleware, requestIDMiddleware, loggerMiddleware, metricsMiddleware(s.metrics), loggingMiddleware, maxBytesMiddleware(1<<20))
}

// handleHealth returns a health check response, pinging the server DB.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "detail": "db unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics returns a snapshot of server metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}
