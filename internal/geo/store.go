package geo

import (
	"context"

	"geofeed/internal/domain"
)

// EarthRadiusMeters matches the radius MongoDB uses for spherical
// $geoNear so every backend reports the same distances.
const EarthRadiusMeters = 6378100.0

type Store interface {
	// FindLandmarks returns at most limit places whose name matches the
	// regular expression pattern, in store order.
	FindLandmarks(ctx context.Context, pattern string, limit int) ([]domain.Place, error)
	// NearestPlaces returns at most limit places with featureCode ordered
	// by ascending spherical distance from origin.
	NearestPlaces(
		ctx context.Context,
		origin domain.GeoPoint,
		featureCode string,
		limit int,
	) ([]domain.NearbyPlace, error)
}

type Importer interface {
	InsertPlaces(ctx context.Context, places []domain.Place) error
}
