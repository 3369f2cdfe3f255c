package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const DefaultTeaserSelector = "article.a-article-teaser"

type TeaserScraper struct {
	client *http.Client
	log    *slog.Logger
}

func NewTeaserScraper(client *http.Client, log *slog.Logger) *TeaserScraper {
	return &TeaserScraper{client: client, log: log}
}

// Scrape returns the collapsed text of every element matching selector,
// in document order.
func (s *TeaserScraper) Scrape(ctx context.Context, pageURL, selector string) ([]string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, errors.New("teaser selector is empty")
	}

	var teasers []string

	err := get(ctx, s.client, s.log, pageURL, func(body io.Reader) error {
		doc, docErr := goquery.NewDocumentFromReader(body)
		if docErr != nil {
			return fmt.Errorf("%w: create document from reader: %w", ErrParse, docErr)
		}

		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			teasers = append(teasers, strings.Join(strings.Fields(sel.Text()), " "))
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scrape teasers (URL = %s): %w", pageURL, err)
	}

	s.log.DebugContext(ctx, "Teasers are scraped",
		"pageURL", pageURL,
		"selector", selector,
		"count", len(teasers))

	return teasers, nil
}
