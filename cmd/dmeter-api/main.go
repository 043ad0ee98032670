package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/dmeter/dmeter-api/internal/api/http"
	"github.com/dmeter/dmeter-api/internal/config"
	"github.com/dmeter/dmeter-api/internal/environmental"
	"github.com/dmeter/dmeter-api/internal/logging"
	"github.com/dmeter/dmeter-api/internal/satellite"
)

func main() {
	// Load configuration (.env, config file, environment).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// Sample-data backends until real imagery and sensor sources exist.
	deps := &httpapi.Dependencies{
		Satellite:     satellite.NewService(satellite.NewMockAnalyzer()),
		Environmental: environmental.NewService(environmental.NewStaticProvider()),
	}

	app, err := httpapi.NewApp(cfg, deps)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	// Wait for termination signal, or for the listener to fail.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := cfg.Server.Addr()
		slog.Info("API server starting", "addr", addr, "cors_origin", cfg.CORS.AllowOrigin)
		if err := app.Listen(addr); err != nil {
			slog.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}

	slog.Info("server stopped")
}
