package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"geofeed/internal/app"
	"geofeed/internal/config"
	"geofeed/internal/domain"
	"geofeed/internal/geonames"
)

const batchSize = 1000

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

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

	path := strings.TrimSpace(cfg.Geo.GeoNamesFile)
	if path == "" {
		log.ErrorContext(ctx, "GEONAMES_FILE is required",
			"envVar", "GEONAMES_FILE")

		return false
	}

	f, err := os.Open(path)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open GeoNames file",
			"error", err,
			"path", path)

		return false
	}
	defer func() {
		if err = f.Close(); err != nil {
			log.WarnContext(ctx, "Failed to close GeoNames file",
				"error", err,
				"path", path)
		}
	}()

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

	if ensurer, ok := backend.(indexEnsurer); ok {
		if err = ensurer.EnsureIndexes(ctx); err != nil {
			log.ErrorContext(ctx, "Failed to ensure indexes",
				"error", err,
				"backend", cfg.Geo.Backend)

			return false
		}
	}

	total, err := geonames.NewReader(f).ReadBatches(batchSize, func(batch []domain.Place) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return backend.InsertPlaces(ctx, batch)
	})
	if err != nil {
		msg := "Failed to import places"
		if errors.Is(err, context.Canceled) {
			msg = "Import is interrupted"
		}

		log.ErrorContext(ctx, msg,
			"error", err,
			"path", path,
			"imported", total)

		return false
	}

	log.InfoContext(ctx, "Places are imported",
		"path", path,
		"backend", cfg.Geo.Backend,
		"imported", total,
		"elapsedSeconds", time.Since(start).Seconds())

	return true
}
