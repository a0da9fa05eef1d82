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

// Package server runs the decode API together with its metrics listener
// and optional tracing.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/blinklabs-io/namgov/api"
	"github.com/blinklabs-io/namgov/internal/config"
	"github.com/blinklabs-io/namgov/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const programName = "namgov"

// Run serves until ctx is cancelled or a listener fails, then shuts
// everything down within the configured timeout. A zero MetricsPort
// disables the metrics listener.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "server")
	shutdownTimeout, err := cfg.ShutdownDuration()
	if err != nil {
		return err
	}

	// Configure tracing
	tracingShutdown := func(context.Context) error { return nil }
	if cfg.Tracing {
		tracingShutdown, err = setupTracing(ctx, cfg)
		if err != nil {
			return err
		}
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	apiServer := api.New(
		api.Config{
			ListenAddress: fmt.Sprintf(
				"%s:%d",
				cfg.BindAddr,
				cfg.ApiPort,
			),
			MaxBodySize:     cfg.MaxBodySize,
			DefaultEncoding: cfg.Encoding(),
			PromRegistry:    promRegistry,
			Version:         version.GetVersionString(),
		},
		logger,
	)
	if err := apiServer.Start(ctx); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		metricsServer, err = startMetricsServer(
			cfg,
			promRegistry,
			logger,
			errChan,
		)
		if err != nil {
			stopCtx, cancel := context.WithTimeout(
				context.Background(),
				shutdownTimeout,
			)
			defer cancel()
			//nolint:contextcheck
			_ = apiServer.Stop(stopCtx)
			//nolint:contextcheck
			_ = tracingShutdown(stopCtx)
			return err
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info(
			"shutdown requested, stopping listeners",
			"component", "server",
		)
	case runErr = <-errChan:
		logger.Error("listener error", "component", "server", "error", runErr)
	}

	//nolint:contextcheck
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()
	var errs []error
	if runErr != nil {
		errs = append(errs, runErr)
	}
	if err := apiServer.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(
				errs,
				fmt.Errorf("metrics server shutdown: %w", err),
			)
		}
	}
	if err := tracingShutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("shutdown complete", "component", "server")
	return nil
}

func startMetricsServer(
	cfg *config.Config,
	promRegistry *prometheus.Registry,
	logger *slog.Logger,
	errChan chan<- error,
) (*http.Server, error) {
	addr := fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.MetricsPort)
	mux := http.NewServeMux()
	mux.Handle(
		"/metrics",
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
	)
	metricsServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics: %w", err)
	}
	logger.Info(
		"serving prometheus metrics on "+ln.Addr().String(),
		"component", "server",
	)
	go func() {
		if err := metricsServer.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			select {
			case errChan <- fmt.Errorf("metrics listener: %w", err):
			default:
			}
		}
	}()
	return metricsServer, nil
}
