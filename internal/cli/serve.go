package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/praaatap/gdit.site/internal/config"
	httpAdapter "github.com/praaatap/gdit.site/pkg/adapters/http"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/observability"
	"github.com/praaatap/gdit.site/pkg/session"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

// RunServe starts the HTTP backend of the browser widget and blocks until a signal arrives.
func RunServe(ctx context.Context, opts RunOptions) error {
	opts = opts.withDefaults()
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg, opts, false)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	return handleExecutionError(serve(sigCtx, cfg, logger, ln))
}

// serve runs the server on ln until ctx is done.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, ln net.Listener) error {
	metrics := observability.NewMetrics()
	engine, err := createEngine(cfg, logger, metrics.Hooks(), observability.LogHooks(logger))
	if err != nil {
		_ = ln.Close()
		return err
	}

	sched := clock.NewReal()
	sessions := session.NewManager(engine.SessionFactory(sched), sched,
		session.WithMaxSessions(cfg.MaxSessions),
		session.WithIdleTTL(cfg.IdleTTL),
		session.WithLogger(logger),
	)

	handler, err := httpAdapter.NewHandler(ctx, sessions, engine.Catalog(),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics),
	)
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Streams end when the server context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting gdit demo server", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				logger.Info("Evicted idle sessions", "count", n, "active", sessions.Len())
			}
		case <-ctx.Done():
			logger.Info("Start shutdown...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			for _, id := range sessions.List() {
				_ = sessions.Delete(id)
			}
			logger.Info("gdit demo server stopped gracefully")
			return nil
		}
	}
}
