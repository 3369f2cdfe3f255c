package postgis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"geofeed/internal/domain"
)

const (
	findLandmarksQuery = `select id, name, feature_code,
	st_y(location::geometry), st_x(location::geometry)
	from geonames
	where name ~ $1
	order by id
	limit $2`

	// Distances use PostGIS' sphere rather than the spheroid so that
	// they stay comparable with the other backends.
	nearestPlacesQuery = `select name,
	st_distance(location, st_setsrid(st_makepoint($1, $2), 4326)::geography, false) as dis
	from geonames
	where feature_code = $3
	order by dis, id
	limit $4`

	upsertPlaceQuery = `insert into geonames (id, name, feature_code, location)
	values ($1, $2, $3, st_setsrid(st_makepoint($4, $5), 4326)::geography)
	on conflict (id) do update
	set name = excluded.name,
	feature_code = excluded.feature_code,
	location = excluded.location`
)

func (s *Store) FindLandmarks(
	ctx context.Context,
	pattern string,
	limit int,
) ([]domain.Place, error) {
	rows, err := s.pool.Query(ctx, findLandmarksQuery, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", classify(err))
	}

	places, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Place, error) {
		var p domain.Place
		scanErr := row.Scan(&p.ID, &p.Name, &p.FeatureCode, &p.Location.Lat, &p.Location.Lon)
		p.Name = strings.TrimSpace(p.Name)

		return p, scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", classify(err))
	}

	return places, nil
}

func (s *Store) NearestPlaces(
	ctx context.Context,
	origin domain.GeoPoint,
	featureCode string,
	limit int,
) ([]domain.NearbyPlace, error) {
	rows, err := s.pool.Query(ctx, nearestPlacesQuery, origin.Lon, origin.Lat, featureCode, limit)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", classify(err))
	}

	places, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NearbyPlace, error) {
		var p domain.NearbyPlace
		scanErr := row.Scan(&p.Name, &p.Distance)

		return p, scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", classify(err))
	}

	return places, nil
}

func (s *Store) InsertPlaces(ctx context.Context, places []domain.Place) error {
	if len(places) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, p := range places {
		b.Queue(upsertPlaceQuery, p.ID, p.Name, p.FeatureCode, p.Location.Lon, p.Location.Lat)
	}

	br := s.pool.SendBatch(ctx, b)

	for _, p := range places {
		if _, err := br.Exec(); err != nil {
			closeErr := br.Close()
			if closeErr != nil {
				s.log.WarnContext(ctx, "Failed to close batch",
					"error", closeErr,
					"operation", "InsertPlaces")
			}

			return fmt.Errorf("upsert place (id = %d): %w", p.ID, classify(err))
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return nil
}
