package database

import (
	"context"
	"fmt"
	"strings"

	"geofeed/internal/domain"
)

func (d *Database) FindLandmarks(
	ctx context.Context,
	pattern string,
	limit int,
) ([]domain.Place, error) {
	query := `select id, name, feature_code, lat, lon
	from geonames
	where name regexp ?
	order by id
	limit ?`

	rows, err := d.db.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"pattern", pattern,
				"operation", "FindLandmarks")
		}
	}()

	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err = rows.Scan(&p.ID, &p.Name, &p.FeatureCode, &p.Location.Lat, &p.Location.Lon); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		p.Name = strings.TrimSpace(p.Name)
		places = append(places, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return places, nil
}

func (d *Database) NearestPlaces(
	ctx context.Context,
	origin domain.GeoPoint,
	featureCode string,
	limit int,
) ([]domain.NearbyPlace, error) {
	query := `select name, geo_distance(?, ?, lat, lon) as dis
	from geonames
	where feature_code = ?
	order by dis, id
	limit ?`

	rows, err := d.db.QueryContext(ctx, query, origin.Lat, origin.Lon, featureCode, limit)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"featureCode", featureCode,
				"operation", "NearestPlaces")
		}
	}()

	var places []domain.NearbyPlace
	for rows.Next() {
		var p domain.NearbyPlace
		if err = rows.Scan(&p.Name, &p.Distance); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		places = append(places, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return places, nil
}

func (d *Database) InsertPlaces(ctx context.Context, places []domain.Place) (err error) {
	if len(places) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				d.log.ErrorContext(ctx, "Failed to rollback tx",
					"error", rbErr,
					"operation", "InsertPlaces")
			}
		}
	}()

	query := `insert or replace into geonames (id, name, feature_code, lat, lon)
	values (?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			d.log.ErrorContext(ctx, "Failed to close statement",
				"error", closeErr,
				"operation", "InsertPlaces")
		}
	}()

	for _, p := range places {
		if _, err = stmt.ExecContext(ctx, p.ID, p.Name, p.FeatureCode, p.Location.Lat, p.Location.Lon); err != nil {
			return fmt.Errorf("insert place (id = %d): %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
