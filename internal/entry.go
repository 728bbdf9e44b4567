// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmalab/blogforge/internal/api"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/gallery"
	"github.com/dmalab/blogforge/internal/quill"
	"github.com/dmalab/blogforge/internal/sse"
	"github.com/dmalab/blogforge/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	if app.logOut == nil {
		app.logOut = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("images_path", cfg.Images.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure working directories exist.
	if err := os.MkdirAll(cfg.Images.Path, 0o755); err != nil {
		return fmt.Errorf("create images dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		return fmt.Errorf("create exports dir: %w", err)
	}

	// Image and export file stores.
	imageStore, err := storage.NewFS(cfg.Images.Path)
	if err != nil {
		return fmt.Errorf("init image store: %w", err)
	}
	exportStore, err := storage.NewFS(cfg.Exports.Path)
	if err != nil {
		return fmt.Errorf("init export store: %w", err)
	}

	// Draft snapshots in SQLite.
	drafts, err := draftstore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init draft store: %w", err)
	}
	defer drafts.Close()

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)

	// Editor state converter.
	conv := quill.NewConverter(cfg.Editor.BaseURL)
	conv.StaticPrefix = cfg.Editor.StaticPrefix
	conv.ImageBasePath = cfg.Editor.ImageBasePath

	// Build API service and router.
	gal := gallery.New(imageStore)
	svc := api.NewService(conv, drafts, exportStore, gal, broker)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, cfg.Images.Path, cfg.Editor.ImageBasePath)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Serve generated images at their public prefix (unauthenticated,
	// matches how the editor references them).
	ih := api.NewImageHandler(cfg.Images.Path, cfg.Editor.ImageBasePath)
	r.Get(cfg.Editor.ImageBasePath+"{filename}", ih.ServeFile)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	// Cancelled on the signal path so the watcher goroutine exits on a
	// clean shutdown, not only on error.
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gCtx := errgroup.WithContext(runCtx)

	// Watch the image directory so editors hear about freshly generated
	// files without polling.
	g.Go(func() error {
		return gallery.Watch(gCtx, cfg.Images.Path, logger, func(kind, path string) {
			broker.PublishImageEvent(kind, path)
		})
	})

	// Start HTTP server.
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
		cancelRun()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
