package geo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

const DefaultLimit = 10

type Nearby struct {
	store       Store
	locator     *Locator
	pattern     string
	featureCode string
	limit       int
	log         *slog.Logger
}

func NewNearby(
	store Store,
	pattern string,
	featureCode string,
	limit int,
	log *slog.Logger,
) *Nearby {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Nearby{
		store:       store,
		locator:     NewLocator(store),
		pattern:     pattern,
		featureCode: featureCode,
		limit:       limit,
		log:         log,
	}
}

// Run resolves the landmark, queries the nearest places and writes one
// line per place to w. Nothing is written unless every stage succeeds.
func (n *Nearby) Run(ctx context.Context, w io.Writer) error {
	res, err := n.locator.Resolve(ctx, n.pattern)
	if err != nil {
		return fmt.Errorf("resolve landmark: %w", err)
	}

	landmark, err := res.Landmark()
	if err != nil {
		n.log.WarnContext(ctx, "Landmark is not resolved",
			"pattern", n.pattern,
			"status", res.Status.String(),
			"candidateCount", len(res.Candidates))

		return err
	}

	n.log.DebugContext(ctx, "Landmark is resolved",
		"pattern", n.pattern,
		"name", landmark.Name,
		"lat", landmark.Location.Lat,
		"lon", landmark.Location.Lon)

	raw, err := n.store.NearestPlaces(ctx, landmark.Location, n.featureCode, n.limit)
	if err != nil {
		return fmt.Errorf("query nearest places (featureCode = %s): %w", n.featureCode, err)
	}

	if len(raw) > n.limit {
		raw = raw[:n.limit]
	}

	var buf bytes.Buffer
	if err = Render(&buf, Normalize(raw)); err != nil {
		return err
	}

	n.log.DebugContext(ctx, "Nearest places are rendered",
		"landmark", landmark.Name,
		"featureCode", n.featureCode,
		"count", len(raw))

	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
