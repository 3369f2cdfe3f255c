package feed_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"geofeed/internal/feed"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func serveFile(t *testing.T, name string) *httptest.Server {
	t.Helper()

	body, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func runHeadlines(t *testing.T, url string) (string, error) {
	t.Helper()

	fetcher := feed.NewFetcher(&http.Client{Timeout: 5 * time.Second}, discardLog)

	var buf bytes.Buffer
	err := feed.NewHeadlines(fetcher, url, discardLog).Run(context.Background(), &buf)

	return buf.String(), err
}

func TestNormalizeTimestamp(t *testing.T) {
	in := time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

	got := feed.NormalizeTimestamp(in)
	if got != "2024-01-02 03:04:05" {
		t.Fatalf("unexpected timestamp %q", got)
	}

	if len(got) != 19 {
		t.Fatalf("expected 19 characters, got %d", len(got))
	}
}

func TestNormalizeTimestampConvertsToUTC(t *testing.T) {
	in := time.Date(2024, 1, 2, 0, 30, 0, 999_999_999, time.FixedZone("CET", 3600))

	if got := feed.NormalizeTimestamp(in); got != "2024-01-01 23:30:00" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestHeadlinesAtomInDocumentOrder(t *testing.T) {
	srv := serveFile(t, "heise-atom.xml")

	got, err := runHeadlines(t, srv.URL)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "* [2024-01-02 03:04:05]: Erste Meldung\n" +
		"* [2024-01-02 04:00:00]: Zweite Meldung\n" +
		"* [2024-01-01 23:59:59]: Dritte Meldung\n"
	if got != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", got, want)
	}
}

func TestHeadlinesRSSKeepsFeedOrder(t *testing.T) {
	srv := serveFile(t, "rss.xml")

	got, err := runHeadlines(t, srv.URL)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}

	if !strings.HasSuffix(lines[0], "Later item listed first") {
		t.Fatalf("expected feed order to be kept, got %q", got)
	}
}

func TestHeadlinesIsIdempotent(t *testing.T) {
	srv := serveFile(t, "heise-atom.xml")

	first, err := runHeadlines(t, srv.URL)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := runHeadlines(t, srv.URL)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first != second {
		t.Fatalf("runs differ: %q vs %q", first, second)
	}
}

func TestHeadlinesTransportFailure(t *testing.T) {
	srv := serveBody(t, http.StatusInternalServerError, "oops")

	got, err := runHeadlines(t, srv.URL)
	if !errors.Is(err, feed.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}

	if got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestHeadlinesUnreachableHost(t *testing.T) {
	srv := serveBody(t, http.StatusOK, "")
	url := srv.URL
	srv.Close()

	if _, err := runHeadlines(t, url); !errors.Is(err, feed.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHeadlinesParseFailure(t *testing.T) {
	srv := serveBody(t, http.StatusOK, "this is not a feed")

	got, err := runHeadlines(t, srv.URL)
	if !errors.Is(err, feed.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}

	if got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestHeadlinesMalformedDateFailsFast(t *testing.T) {
	body := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>x</title>
<item><title>ok</title><pubDate>Tue, 02 Jan 2024 10:00:00 +0000</pubDate></item>
<item><title>bad</title><pubDate>not a date at all</pubDate></item>
</channel></rss>`
	srv := serveBody(t, http.StatusOK, body)

	got, err := runHeadlines(t, srv.URL)
	if !errors.Is(err, feed.ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}

	if got != "" {
		t.Fatalf("expected no partial output, got %q", got)
	}
}

func TestValidateURL(t *testing.T) {
	got, err := feed.ValidateURL("  https://www.heise.de/newsticker/heise-atom.xml ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != "https://www.heise.de/newsticker/heise-atom.xml" {
		t.Fatalf("unexpected URL %q", got)
	}

	for _, raw := range []string{"", "ftp://example.com/feed", "heise.de", "https://a.example https://b.example"} {
		if _, err = feed.ValidateURL(raw); !errors.Is(err, feed.ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}
	}
}

func TestTeasersRender(t *testing.T) {
	srv := serveFile(t, "newsticker.html")
	scraper := feed.NewTeaserScraper(&http.Client{Timeout: 5 * time.Second}, discardLog)

	var buf bytes.Buffer
	if err := feed.NewTeasers(scraper, srv.URL, feed.DefaultTeaserSelector).Run(context.Background(), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "Fetching " + srv.URL + "\n\nNews: 2\n" +
		"* Erster Teaser Mit Text\n" +
		"* Zweiter Teaser\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestTeasersEmptySelector(t *testing.T) {
	scraper := feed.NewTeaserScraper(http.DefaultClient, discardLog)

	if _, err := scraper.Scrape(context.Background(), "https://example.com", " "); err == nil {
		t.Fatalf("expected error for empty selector")
	}
}

func TestTeasersTransportFailure(t *testing.T) {
	srv := serveBody(t, http.StatusNotFound, "<html></html>")
	scraper := feed.NewTeaserScraper(&http.Client{Timeout: 5 * time.Second}, discardLog)

	var buf bytes.Buffer
	err := feed.NewTeasers(scraper, srv.URL, feed.DefaultTeaserSelector).Run(context.Background(), &buf)
	if !errors.Is(err, feed.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
