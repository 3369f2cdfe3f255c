package mongostore

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"geofeed/internal/domain"
)

const geoJSONPoint = "Point"

type placeDocument struct {
	ID          int64         `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	FeatureCode string        `bson:"feature_code"`
	Location    pointDocument `bson:"location"`
}

// landmarkDocument leaves out _id so collections keyed by ObjectID
// decode as well as imported ones. Location is either a GeoJSON point or
// a legacy [lon, lat] pair, both of which a 2dsphere index accepts.
type landmarkDocument struct {
	Name        string        `bson:"name"`
	FeatureCode string        `bson:"feature_code"`
	Location    bson.RawValue `bson:"location"`
}

// pointDocument is a GeoJSON point; coordinates are [lon, lat].
type pointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type nearbyDocument struct {
	Name string  `bson:"name"`
	Dis  float64 `bson:"dis"`
}

func newPoint(p domain.GeoPoint) pointDocument {
	return pointDocument{Type: geoJSONPoint, Coordinates: []float64{p.Lon, p.Lat}}
}

func (p pointDocument) geoPoint() (domain.GeoPoint, error) {
	if p.Type != geoJSONPoint || len(p.Coordinates) != 2 {
		return domain.GeoPoint{}, errors.New("location is not a GeoJSON point")
	}

	return domain.GeoPoint{Lat: p.Coordinates[1], Lon: p.Coordinates[0]}, nil
}

func locationPoint(raw bson.RawValue) (domain.GeoPoint, error) {
	switch raw.Type {
	case bson.TypeEmbeddedDocument:
		var p pointDocument
		if err := raw.Unmarshal(&p); err != nil {
			return domain.GeoPoint{}, fmt.Errorf("decode GeoJSON location: %w", err)
		}

		return p.geoPoint()
	case bson.TypeArray:
		var pair []float64
		if err := raw.Unmarshal(&pair); err != nil {
			return domain.GeoPoint{}, fmt.Errorf("decode legacy location: %w", err)
		}
		if len(pair) != 2 {
			return domain.GeoPoint{}, fmt.Errorf("legacy location has %d coordinates", len(pair))
		}

		return domain.GeoPoint{Lat: pair[1], Lon: pair[0]}, nil
	default:
		return domain.GeoPoint{}, fmt.Errorf("unsupported location type %s", raw.Type)
	}
}
