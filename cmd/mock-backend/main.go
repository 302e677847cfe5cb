// Command mock-backend runs a deterministic codepad execution service for
// local development and end-to-end tests. It serves /api/execute and the
// judge endpoints without executing anything.
//
// Configuration comes from the codepad config file (-config) and the
// CODEPAD_PORT, CODEPAD_RATE_LIMIT, CODEPAD_LOG_LEVEL and CODEPAD_DEBUG
// environment variables. Metrics are served on the same port when
// observability.metrics.enabled is set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rhuss/codepad/pkg/config"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/mockbackend"
)

func main() {
	if err := run(); err != nil {
		slog.Error("mock backend failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default: discovered)")
	maxConcurrent := flag.Int("max-concurrent", 64, "maximum simultaneous requests, 0 for no limit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	opts := mockbackend.Options{
		Logger:        slog.Default(),
		RateLimit:     cfg.Server.RateLimit,
		Burst:         cfg.Server.Burst,
		MaxConcurrent: *maxConcurrent,
	}
	if cfg.Observability.Metrics.Enabled {
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mockbackend.New(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("mock backend starting", "addr", addr, "rate_limit", cfg.Server.RateLimit, "metrics", opts.MetricsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("mock backend shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
}
