// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api serves the record decoders over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/blinklabs-io/namgov/internal/config"
	"github.com/blinklabs-io/namgov/internal/input"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const tracerName = "github.com/blinklabs-io/namgov/api"

type Config struct {
	ListenAddress   string
	MaxBodySize     int64
	DefaultEncoding input.Encoding
	PromRegistry    prometheus.Registerer
	Version         string
}

// Server is the decode API server.
type Server struct {
	config     Config
	logger     *slog.Logger
	metrics    *decodeMetrics
	tracer     trace.Tracer
	httpServer *http.Server
	addr       net.Addr
	stopCh     chan struct{}
	mu         sync.Mutex
}

// New creates a new decode API server instance.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = config.DefaultMaxBodySize
	}
	if cfg.DefaultEncoding == "" {
		cfg.DefaultEncoding = input.EncodingHex
	}
	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: &decodeMetrics{},
		tracer:  otel.Tracer(tracerName),
	}
	s.metrics.init(cfg.PromRegistry)
	return s
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v0/kinds", s.handleKinds)
	mux.HandleFunc("POST /api/v0/decode/{kind}", s.handleDecode)
	return mux
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return errors.New("server already started")
	}

	server := &http.Server{
		Addr: s.config.ListenAddress,
		// Use h2c so we can serve HTTP/2 without TLS
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 60 * time.Second,
	}
	s.httpServer = server
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.mu.Unlock()

	if err := s.startServer(server); err != nil {
		s.mu.Lock()
		s.httpServer = nil
		s.stopCh = nil
		s.mu.Unlock()
		return err
	}

	s.logger.Info(
		"decode API listener started on " + s.Addr(),
	)

	// Monitor context for cancellation
	go func() {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
		}
		s.mu.Lock()
		srv := s.httpServer
		s.httpServer = nil
		s.stopCh = nil
		s.mu.Unlock()

		if srv != nil {
			s.logger.Debug(
				"context cancelled, shutting down decode API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error(
					"failed to shutdown decode API server "+
						"on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	stopCh := s.stopCh
	s.httpServer = nil
	s.stopCh = nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	if srv != nil {
		s.logger.Debug("shutting down decode API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown decode API server: %w",
				err,
			)
		}
	}
	return nil
}

// Addr returns the bound listen address, or the configured one before
// Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr != nil {
		return s.addr.String()
	}
	return s.config.ListenAddress
}

// startServer binds the listening socket first so port conflicts are
// reported by Start, then serves in a background goroutine.
func (s *Server) startServer(server *http.Server) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for decode API server: %w",
			err,
		)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(
				"decode API server error",
				"error", err,
			)
		}
	}()
	return nil
}
