package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"geofeed/internal/config"
	"geofeed/internal/database"
	"geofeed/internal/geo"
	"geofeed/internal/mongostore"
	"geofeed/internal/postgis"
)

// NewLogger returns the JSON logger every binary uses. Stdout carries
// the rendered output, so logs go to w (stderr in practice).
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

type GeoBackend interface {
	geo.Store
	geo.Importer
}

type CloseFunc func(ctx context.Context) error

func OpenGeoBackend(
	ctx context.Context,
	cfg config.Geo,
	log *slog.Logger,
) (GeoBackend, CloseFunc, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := database.New(ctx, cfg.DBPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite (dbPath = %s): %w", cfg.DBPath, err)
		}

		return db, func(context.Context) error { return db.Close() }, nil
	case config.BackendMongo:
		store, err := mongostore.New(ctx, mongostore.Config{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo (database = %s): %w", cfg.MongoDatabase, err)
		}

		return store, store.Close, nil
	case config.BackendPostGIS:
		store, err := postgis.New(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgis: %w", err)
		}

		return store, func(context.Context) error {
			store.Close()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown geo backend %q", cfg.Backend)
	}
}
