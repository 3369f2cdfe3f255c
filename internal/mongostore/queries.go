package mongostore

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"geofeed/internal/domain"
)

func (s *Store) FindLandmarks(
	ctx context.Context,
	pattern string,
	limit int,
) ([]domain.Place, error) {
	filter := bson.D{{Key: "name", Value: bson.Regex{Pattern: pattern}}}

	cur, err := s.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	var docs []landmarkDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode landmarks: %w", err)
	}

	places := make([]domain.Place, 0, len(docs))
	for _, doc := range docs {
		loc, locErr := locationPoint(doc.Location)
		if locErr != nil {
			return nil, fmt.Errorf("landmark %q: %w", doc.Name, locErr)
		}

		places = append(places, domain.Place{
			Name:        strings.TrimSpace(doc.Name),
			FeatureCode: doc.FeatureCode,
			Location:    loc,
		})
	}

	return places, nil
}

func (s *Store) NearestPlaces(
	ctx context.Context,
	origin domain.GeoPoint,
	featureCode string,
	limit int,
) ([]domain.NearbyPlace, error) {
	cur, err := s.coll.Aggregate(ctx, nearestPipeline(origin, featureCode, limit))
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	var docs []nearbyDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode nearby places: %w", err)
	}

	places := make([]domain.NearbyPlace, 0, len(docs))
	for _, doc := range docs {
		places = append(places, domain.NearbyPlace{Name: doc.Name, Distance: doc.Dis})
	}

	return places, nil
}

func (s *Store) InsertPlaces(ctx context.Context, places []domain.Place) error {
	if len(places) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(places))
	for _, p := range places {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: p.ID}}).
			SetReplacement(newPlaceDocument(p)).
			SetUpsert(true))
	}

	res, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}

	s.log.DebugContext(ctx, "Places are written",
		"upserted", res.UpsertedCount,
		"modified", res.ModifiedCount)

	return nil
}

func newPlaceDocument(p domain.Place) placeDocument {
	return placeDocument{
		ID:          p.ID,
		Name:        p.Name,
		FeatureCode: p.FeatureCode,
		Location:    newPoint(p.Location),
	}
}

func nearestPipeline(origin domain.GeoPoint, featureCode string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: newPoint(origin)},
			{Key: "spherical", Value: true},
			{Key: "distanceField", Value: "dis"},
			{Key: "query", Value: bson.D{{Key: "feature_code", Value: featureCode}}},
		}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "dis", Value: 1},
		}}},
	}
}
