package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geofeed/internal/domain"
)

const ambiguousCandidatesLimit = 5

var (
	ErrLandmarkNotFound  = errors.New("no landmark matched")
	ErrLandmarkAmbiguous = errors.New("more than one landmark matched")
)

type ResolutionStatus int

const (
	Unique ResolutionStatus = iota
	NotFound
	Ambiguous
)

func (s ResolutionStatus) String() string {
	switch s {
	case Unique:
		return "unique"
	case NotFound:
		return "not found"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("ResolutionStatus(%d)", int(s))
	}
}

type Resolution struct {
	Status  ResolutionStatus
	Pattern string
	// Candidates holds the single match for Unique and up to
	// ambiguousCandidatesLimit matches for Ambiguous.
	Candidates []domain.Place
}

// Landmark returns the resolved place or a named error for the
// NotFound and Ambiguous statuses.
func (r Resolution) Landmark() (domain.Place, error) {
	switch r.Status {
	case Unique:
		return r.Candidates[0], nil
	case NotFound:
		return domain.Place{}, fmt.Errorf("%w (pattern = %s)", ErrLandmarkNotFound, r.Pattern)
	case Ambiguous:
		names := make([]string, 0, len(r.Candidates))
		for _, c := range r.Candidates {
			names = append(names, c.Name)
		}

		return domain.Place{}, fmt.Errorf("%w (pattern = %s, candidates = %s)",
			ErrLandmarkAmbiguous, r.Pattern, strings.Join(names, "; "))
	default:
		return domain.Place{}, fmt.Errorf("unknown resolution status %d", r.Status)
	}
}

type Locator struct {
	store Store
}

func NewLocator(store Store) *Locator {
	return &Locator{store: store}
}

func (l *Locator) Resolve(ctx context.Context, pattern string) (Resolution, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return Resolution{}, errors.New("landmark pattern is empty")
	}

	places, err := l.store.FindLandmarks(ctx, pattern, ambiguousCandidatesLimit)
	if err != nil {
		return Resolution{}, fmt.Errorf("find landmarks: %w", err)
	}

	res := Resolution{Pattern: pattern, Candidates: places}

	switch len(places) {
	case 0:
		res.Status = NotFound
	case 1:
		res.Status = Unique
	default:
		res.Status = Ambiguous
	}

	return res, nil
}
