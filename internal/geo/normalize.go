package geo

import (
	"math"

	"geofeed/internal/domain"
)

// RoundDistance rounds half away from zero: 2.5 becomes 3 and -2.5
// becomes -3.
func RoundDistance(d float64) int64 {
	return int64(math.Round(d))
}

func Normalize(raw []domain.NearbyPlace) []domain.GeoRecord {
	records := make([]domain.GeoRecord, 0, len(raw))
	for _, p := range raw {
		records = append(records, domain.GeoRecord{
			Name:           p.Name,
			DistanceMeters: RoundDistance(p.Distance),
		})
	}

	return records
}
