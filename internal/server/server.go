// Package server is a local implementation of the /api/VideoGame collection
// resource, so the client can be run and tested without a remote backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/inovacc/gameshelf/internal/gameapi"
	"github.com/inovacc/gameshelf/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server configuration
type Config struct {
	Addr           string
	AllowedOrigins []string
	IdleTimeout    time.Duration

	// InfoPath, when set, receives an Info record while the server runs
	InfoPath string

	// Driver is recorded in Info
	Driver string
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:5156",
		AllowedOrigins: []string{"*"},
	}
}

// Options carries collaborators that tests replace.
type Options struct {
	Logger *slog.Logger
	Clock  clockwork.Clock
}

// Server serves the collection resource from a Store.
type Server struct {
	store      store.Store
	config     Config
	logger     *slog.Logger
	validator  *payloadValidator
	idle       *IdleTracker
	httpServer *http.Server
	addr       chan string
}

// New creates a server over st.
func New(st store.Store, config Config, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	validator, err := newPayloadValidator()
	if err != nil {
		return nil, err
	}

	return &Server{
		store:     st,
		config:    config,
		logger:    logger,
		validator: validator,
		idle:      NewIdleTracker(config.IdleTimeout, opts.Clock),
		addr:      make(chan string, 1),
	}, nil
}

// Handler returns the full middleware chain around the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	return s.requestIDMiddleware(s.loggingMiddleware(s.activityMiddleware(c.Handler(mux))))
}

// Addr returns the bound address once Start is listening.
func (s *Server) Addr(ctx context.Context) (string, error) {
	select {
	case addr := <-s.addr:
		s.addr <- addr
		return addr, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Start serves until ctx is cancelled or the idle timeout fires, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if s.config.InfoPath != "" {
		info := Info{
			Address:   listener.Addr().String(),
			PID:       os.Getpid(),
			Driver:    s.config.Driver,
			StartedAt: time.Now(),
		}

		if err := WriteInfo(s.config.InfoPath, info); err != nil {
			s.logger.Warn("failed to write server info", slog.Any("error", err))
		}

		defer RemoveInfo(s.config.InfoPath)
	}

	s.addr <- listener.Addr().String()

	s.logger.Info("collection API listening",
		slog.String("addr", listener.Addr().String()),
		slog.String("path", gameapi.CollectionPath),
	)

	if s.idle.IsEnabled() {
		go s.idle.Start()

		s.logger.Info("idle timeout enabled", slog.Duration("timeout", s.idle.IdleTimeout()))
	}

	serveErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("received shutdown signal")
	case <-s.idle.ShutdownChan():
		s.logger.Info("server idle, shutting down", slog.Duration("idle_timeout", s.idle.IdleTimeout()))
	case err := <-serveErr:
		s.idle.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	s.idle.Stop()

	return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down collection API")

	return s.httpServer.Shutdown(shutdownCtx)
}
