package feed

import (
	"fmt"
	"io"

	"geofeed/internal/domain"
)

func Render(w io.Writer, items []domain.FeedItem) error {
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "* [%s]: %s\n", NormalizeTimestamp(it.PublishedAt), it.Title); err != nil {
			return fmt.Errorf("write item: %w", err)
		}
	}

	return nil
}

func RenderTeasers(w io.Writer, pageURL string, teasers []string) error {
	if _, err := fmt.Fprintf(w, "Fetching %s\n\nNews: %d\n", pageURL, len(teasers)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range teasers {
		if _, err := fmt.Fprintf(w, "* %s\n", t); err != nil {
			return fmt.Errorf("write teaser: %w", err)
		}
	}

	return nil
}
