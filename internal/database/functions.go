package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	gosqlite "github.com/mattn/go-sqlite3"

	"geofeed/internal/domain"
	"geofeed/internal/geo"
)

// driverName is go-sqlite3 with the regexp and geo_distance SQL
// functions registered on every connection.
const driverName = "sqlite3_geofeed"

// regexpCache is unbounded. Each binary runs one query with one
// configured pattern and exits, so it never holds more than a few entries.
//
//nolint:gochecknoglobals // Compiled patterns are shared by all connections.
var regexpCache sync.Map

//nolint:gochecknoinits // database/sql drivers can only be registered globally.
func init() {
	sql.Register(driverName, &gosqlite.SQLiteDriver{
		ConnectHook: func(conn *gosqlite.SQLiteConn) error {
			if err := conn.RegisterFunc("regexp", regexpMatch, true); err != nil {
				return fmt.Errorf("register regexp: %w", err)
			}

			if err := conn.RegisterFunc("geo_distance", geoDistance, true); err != nil {
				return fmt.Errorf("register geo_distance: %w", err)
			}

			return nil
		},
	})
}

// regexpMatch backs `value REGEXP pattern`, which SQLite calls as
// regexp(pattern, value).
func regexpMatch(pattern, value string) (bool, error) {
	if cached, ok := regexpCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re.MatchString(value), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	regexpCache.Store(pattern, re)

	return re.MatchString(value), nil
}

func geoDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(
		domain.GeoPoint{Lat: lat1, Lon: lon1},
		domain.GeoPoint{Lat: lat2, Lon: lon2},
	)
}
