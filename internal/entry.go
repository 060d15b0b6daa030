// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/jcal/internal/api"
	"github.com/starford/jcal/internal/calendarservice"
	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/mcpserver"
	"github.com/starford/jcal/internal/metrics"
	"github.com/starford/jcal/internal/sse"
	"github.com/starford/jcal/internal/storage"
	"github.com/starford/jcal/pkg/jdatetime"
)

// runtime holds the components shared by the HTTP and MCP entry points.
type runtime struct {
	cfg     *Config
	logger  *slog.Logger
	store   *storage.FS
	db      *index.DB
	svc     *calendarservice.Service
	metrics *metrics.Metrics
}

func setup(opts []Option, defaultLogOutput io.Writer) (*runtime, error) {
	app := &application{logOutput: defaultLogOutput}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("timezone", cfg.Calendar.Timezone),
		slog.String("occasions_path", cfg.Occasions.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	clk := app.clock
	if clk == nil {
		var err error
		if clk, err = cfg.Calendar.Clock(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.Occasions.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create occasions dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Occasions.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	m := metrics.New()
	svc := calendarservice.NewService(store, db, clk,
		calendarservice.WithMetrics(m),
		calendarservice.WithLogger(logger),
		calendarservice.WithLayout(cfg.Calendar.DateFormat),
	)
	svc.RefreshStats()

	return &runtime{cfg: cfg, logger: logger, store: store, db: db, svc: svc, metrics: m}, nil
}

func (rt *runtime) watch(ctx context.Context, cb index.EventCallback) {
	err := index.Watch(ctx, rt.db, rt.store, rt.store.Root(), rt.logger, func(kind, path string) {
		rt.svc.RefreshStats()
		if cb != nil {
			cb(kind, path)
		}
	})
	if err != nil {
		rt.logger.Error("watcher failed", slog.String("error", err.Error()))
	}
}

func health(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ready != nil {
			if err := ready(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// Run starts the HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	rt, err := setup(opts, os.Stdout)
	if err != nil {
		return err
	}
	defer rt.db.Close()
	cfg, logger := rt.cfg, rt.logger

	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()
	rt.metrics.WatchClients(broker.ClientCount)

	apiRouter := api.NewRouter(rt.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rt.metrics.Middleware)

	// Health and metrics endpoints (unauthenticated).
	r.Get("/health/live", health(nil))
	r.Get("/health/ready", health(rt.db.Ping))
	r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Occasion file watcher with SSE callback.
	g.Go(func() error {
		rt.watch(gCtx, broker.PublishOccasionEvent)
		return nil
	})

	// Local date rollover.
	g.Go(func() error {
		rt.svc.WatchDay(gCtx, cfg.Events.DayCheckInterval, func(d jdatetime.Date) {
			broker.PublishDayChanged(d.String())
		})
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group's context so the watchers stop once the
// HTTP server has shut down.
var errShutdown = errors.New("shutdown")

// RunMCP serves the calendar tools over stdio. Logs go to stderr unless
// WithLogOutput says otherwise, since stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	rt, err := setup(opts, os.Stderr)
	if err != nil {
		return err
	}
	defer rt.db.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go rt.watch(watchCtx, nil)

	rt.logger.Info("Starting MCP server on stdio")
	return mcpserver.New(rt.svc).ServeStdio()
}
