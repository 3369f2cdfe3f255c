package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geofeed/internal/app"
	"geofeed/internal/config"
	"geofeed/internal/geo"
)

func main() {
	if !run() {
		os.Exit(1)
	}
}

func run() bool {
	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log := app.NewLogger(os.Stderr, slog.LevelInfo)
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return false
	}

	log := app.NewLogger(os.Stderr, cfg.SlogLevel())

	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	backend, closeBackend, err := app.OpenGeoBackend(ctx, cfg.Geo, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open geo backend",
			"error", err,
			"backend", cfg.Geo.Backend)

		return false
	}
	defer func() {
		if err = closeBackend(context.Background()); err != nil {
			log.ErrorContext(ctx, "Failed to close geo backend",
				"error", err,
				"backend", cfg.Geo.Backend)
		}
	}()

	nearby := geo.NewNearby(backend, cfg.Geo.LandmarkPattern, cfg.Geo.FeatureCode, cfg.Geo.NearestLimit, log)

	if err = nearby.Run(ctx, os.Stdout); err != nil {
		log.ErrorContext(ctx, "Failed to list nearby places",
			"error", err,
			"backend", cfg.Geo.Backend,
			"pattern", cfg.Geo.LandmarkPattern,
			"featureCode", cfg.Geo.FeatureCode)

		return false
	}

	log.DebugContext(ctx, "Done",
		"elapsedSeconds", time.Since(start).Seconds())

	return true
}
