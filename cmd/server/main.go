package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"tubepulse/internal/logging"
	"tubepulse/internal/reportcache"
	"tubepulse/internal/server"
	"tubepulse/shared/ai"
	"tubepulse/shared/analysis"
	"tubepulse/shared/config"
	"tubepulse/shared/sentiment"
	"tubepulse/shared/youtube"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, timeout time.Duration, stopEviction func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		stopEviction()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("Application starting", "engine", cfg.Sentiment.Engine, "port", cfg.Server.Port)

	retriever, err := youtube.NewClient(context.Background(), &cfg.YouTube)
	if err != nil {
		slog.Error("Failed to create YouTube client", "error", err)
		os.Exit(1)
	}

	classifier, err := sentiment.New(cfg)
	if err != nil {
		slog.Error("Failed to create sentiment classifier", "error", err)
		os.Exit(1)
	}

	analyzer := analysis.New(retriever, classifier, cfg, clock)

	reports := reportcache.New(time.Duration(cfg.Cache.TTLMinutes)*time.Minute, clock)
	stopEviction := reports.StartEvictionTimer(time.Duration(cfg.Cache.EvictionIntervalMinutes) * time.Minute)

	// Create the HTTP server (pass nil explicitly to avoid typed-nil interface)
	var (
		srv    *server.Server
		srvErr error
	)
	if cfg.AI.Enabled {
		insights, err := ai.NewInsightsClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			slog.Error("Failed to create insights client", "error", err)
			os.Exit(1)
		}
		srv, srvErr = server.NewServer(cfg, analyzer, reports, retriever, insights)
	} else {
		srv, srvErr = server.NewServer(cfg, analyzer, reports, retriever, nil)
	}
	if srvErr != nil {
		slog.Error("Failed to create server", "error", srvErr)
		os.Exit(1)
	}

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	done := runGracefulShutdown(srv, shutdownTimeout, stopEviction)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
