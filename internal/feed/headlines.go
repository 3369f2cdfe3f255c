package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"geofeed/internal/domain"
)

type Headlines struct {
	fetcher *Fetcher
	feedURL string
	log     *slog.Logger
}

func NewHeadlines(fetcher *Fetcher, feedURL string, log *slog.Logger) *Headlines {
	return &Headlines{fetcher: fetcher, feedURL: feedURL, log: log}
}

// Run writes one line per feed item in document order. Nothing is
// written if fetching or any date normalization fails.
func (h *Headlines) Run(ctx context.Context, w io.Writer) error {
	raw, err := h.fetcher.Fetch(ctx, h.feedURL)
	if err != nil {
		return err
	}

	items := make([]domain.FeedItem, 0, len(raw))
	for i, it := range raw {
		item, normErr := NormalizeItem(it)
		if normErr != nil {
			h.log.WarnContext(ctx, "Failed to normalize feed item",
				"error", normErr,
				"feedURL", h.feedURL,
				"index", i)

			return fmt.Errorf("normalize item %d: %w", i, normErr)
		}

		items = append(items, item)
	}

	var buf bytes.Buffer
	if err = Render(&buf, items); err != nil {
		return err
	}

	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

type Teasers struct {
	scraper  *TeaserScraper
	pageURL  string
	selector string
}

func NewTeasers(scraper *TeaserScraper, pageURL, selector string) *Teasers {
	return &Teasers{scraper: scraper, pageURL: pageURL, selector: selector}
}

func (t *Teasers) Run(ctx context.Context, w io.Writer) error {
	teasers, err := t.scraper.Scrape(ctx, t.pageURL, t.selector)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = RenderTeasers(&buf, t.pageURL, teasers); err != nil {
		return err
	}

	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
