package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"mvdan.cc/xurls/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// ValidateURL checks that raw is exactly one http(s) URL and returns it
// trimmed.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	re, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	if re.FindString(trimmed) != trimmed {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, trimmed)
	}

	return trimmed, nil
}

// get performs one GET and hands the body to consume. Any failure before
// consume runs is a transport failure.
func get(
	ctx context.Context,
	client *http.Client,
	log *slog.Logger,
	rawURL string,
	consume func(io.Reader) error,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: do request: %w", ErrTransport, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", rawURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status: %d", ErrTransport, resp.StatusCode)
	}

	return consume(resp.Body)
}
