package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
)

type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	log    *slog.Logger
}

func NewFetcher(client *http.Client, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		parser: gofeed.NewParser(),
		log:    log,
	}
}

// Fetch downloads and parses one Atom/RSS/JSON feed and returns its
// items in document order.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]*gofeed.Item, error) {
	var parsed *gofeed.Feed

	err := get(ctx, f.client, f.log, feedURL, func(body io.Reader) error {
		var parseErr error
		parsed, parseErr = f.parser.Parse(body)
		if parseErr != nil {
			return fmt.Errorf("%w: %w", ErrParse, parseErr)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed (URL = %s): %w", feedURL, err)
	}

	f.log.DebugContext(ctx, "Feed is fetched",
		"feedURL", feedURL,
		"feedType", parsed.FeedType,
		"feedTitle", parsed.Title,
		"itemCount", len(parsed.Items))

	return parsed.Items, nil
}
