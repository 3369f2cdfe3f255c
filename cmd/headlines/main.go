package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geofeed/internal/app"
	"geofeed/internal/config"
	"geofeed/internal/feed"
)

type pipeline interface {
	Run(ctx context.Context, w io.Writer) error
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
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	var (
		p         pipeline
		targetURL string
	)

	switch cfg.Headlines.Source {
	case config.SourceTeasers:
		targetURL, err = feed.ValidateURL(cfg.Headlines.TeaserURL)
		p = feed.NewTeasers(feed.NewTeaserScraper(client, log), targetURL, cfg.Headlines.TeaserSelector)
	default:
		targetURL, err = feed.ValidateURL(cfg.Headlines.FeedURL)
		p = feed.NewHeadlines(feed.NewFetcher(client, log), targetURL, log)
	}

	if err != nil {
		log.ErrorContext(ctx, "Invalid headlines URL",
			"error", err,
			"source", cfg.Headlines.Source)

		return false
	}

	if err = p.Run(ctx, os.Stdout); err != nil {
		log.ErrorContext(ctx, "Failed to print headlines",
			"error", err,
			"source", cfg.Headlines.Source,
			"url", targetURL)

		return false
	}

	log.DebugContext(ctx, "Done",
		"source", cfg.Headlines.Source,
		"elapsedSeconds", time.Since(start).Seconds())

	return true
}
