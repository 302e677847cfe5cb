package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the Prometheus exposition handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ServeMetrics exposes metrics on addr at path until ctx is cancelled.
// It is used by processes that have no HTTP server of their own, such as
// the interactive REPL.
func ServeMetrics(ctx context.Context, addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle("GET "+path, Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics listening", "addr", addr, "path", path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ObserveExecution records one client submission.
func ObserveExecution(language, outcome string, d time.Duration) {
	ExecutionsTotal.WithLabelValues(language, outcome).Inc()
	ExecutionDuration.WithLabelValues(language).Observe(d.Seconds())
}
