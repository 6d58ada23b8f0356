package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/middleware"
)

// maxBodyBytes caps every request body at 1 MiB.
const maxBodyBytes = 1 << 20

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The server logs JSON to stdout for log aggregators.
			level, _ := a.cfg.SlogLevel()
			logger := newLogger(cmd.OutOrStdout(), "json", level).With("run_id", uuid.NewString())
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := a.openStore(ctx)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer st.Close()
			logger.Info("database ready", "driver", st.Driver())

			metrics.Register()
			s := a.newServices(st)
			router := newRouter(handler.Deps{
				Trips:  s.trips,
				Days:   s.days,
				Items:  s.items,
				Export: s.export,
				Ping:   st.Ping,
				Defaults: handler.Defaults{
					BufferMin:      a.cfg.BufferMin,
					RejectOverlaps: a.cfg.RejectOverlaps,
				},
			}, logger, a.cfg.CORSOrigins)

			// Explicit timeouts prevent slowloris and resource exhaustion.
			srv := &http.Server{
				Addr:         ":" + a.cfg.Port,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  60 * time.Second,
			}
			return run(ctx, srv, logger)
		},
	}
}

// newRouter stacks the middleware in front of the API routes.
// Order: RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit → metrics.
func newRouter(deps handler.Deps, logger *slog.Logger, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(origins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(middleware.NewMetricsHandler())

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", handler.NewServer(deps).Routes())
	return r
}

// run serves until ctx is cancelled, then gives in-flight requests up to
// 15 seconds to finish.
func run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
