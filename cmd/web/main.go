package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/123jlee/dfsanalyzer/internal/config"
	"github.com/123jlee/dfsanalyzer/internal/infrastructure"
	"github.com/123jlee/dfsanalyzer/internal/middleware"
	"github.com/123jlee/dfsanalyzer/internal/services"
	"github.com/123jlee/dfsanalyzer/internal/store"
	transporthttp "github.com/123jlee/dfsanalyzer/internal/transport/http"
	"github.com/123jlee/dfsanalyzer/pkg/contracts"
)

func main() {
	snapshotDir := flag.String("snapshot", "", "snapshot directory to serve (defaults to the latest under the data dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := infrastructure.SetupLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	} else {
		defer logCloser.Close()
	}

	dataService := services.NewDataService(nil, logger)
	if err := loadSnapshot(dataService, *snapshotDir, cfg.Paths.DataDir, logger); err != nil {
		logger.Warn("No snapshot loaded, API serves 404 until one exists",
			slog.String("error", err.Error()))
	}

	router := buildRouter(cfg, logger, dataService)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("version", contracts.Version))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func loadSnapshot(dataService *services.DataService, snapshotDir, dataDir string, logger *slog.Logger) error {
	dir := snapshotDir
	if dir == "" {
		latest, err := store.LatestSnapshot(dataDir)
		if err != nil {
			return err
		}
		dir = latest
	}

	set, err := store.LoadSnapshot(dir)
	if err != nil {
		return err
	}

	dataService.Replace(set)
	logger.Info("Serving snapshot",
		slog.String("dir", dir),
		slog.String("run_id", set.Meta.RunID))
	return nil
}

func buildRouter(cfg *config.Config, logger *slog.Logger, dataService *services.DataService) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout, logger))
	r.Use(middleware.Compress(5))
	if cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	dataHandler := transporthttp.NewDataHandler(dataService, logger)
	r.Mount("/api", dataHandler.Routes())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contracts.GetVersionInfo())
	})

	return r
}
