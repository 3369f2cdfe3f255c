package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"geofeed/internal/domain"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"

	minYear = 0
	maxYear = 9999
)

// NormalizeTimestamp renders t in UTC without sub-second precision.
func NormalizeTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// NormalizeItem uses the published date and falls back to the updated
// date only when the item has no published date at all. Raw strings gofeed
// could not parse are retried with dateparse; dates without a zone are
// read as UTC.
func NormalizeItem(item *gofeed.Item) (domain.FeedItem, error) {
	title := strings.TrimSpace(item.Title)

	published, err := itemTime(item)
	if err != nil {
		return domain.FeedItem{}, fmt.Errorf("item %q: %w", title, err)
	}

	return domain.FeedItem{
		Title:       title,
		PublishedAt: published.UTC().Truncate(time.Second),
	}, nil
}

func itemTime(item *gofeed.Item) (time.Time, error) {
	candidates := []struct {
		parsed *time.Time
		raw    string
	}{
		{item.PublishedParsed, item.Published},
		{item.UpdatedParsed, item.Updated},
	}

	// A published date that is present but unusable fails the item
	// rather than silently switching to the updated date.
	for _, c := range candidates {
		t, ok, err := candidateTime(c.parsed, c.raw)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: no published or updated date", ErrMalformedDate)
}

func candidateTime(parsed *time.Time, raw string) (time.Time, bool, error) {
	if parsed != nil {
		return checkYear(*parsed)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %q: %w", ErrMalformedDate, raw, err)
	}

	return checkYear(t)
}

// checkYear keeps NormalizeTimestamp at its fixed width.
func checkYear(t time.Time) (time.Time, bool, error) {
	if y := t.UTC().Year(); y < minYear || y > maxYear {
		return time.Time{}, false, fmt.Errorf("%w: year %d out of range", ErrMalformedDate, y)
	}

	return t, true, nil
}
