package mongostore

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    *slog.Logger
}

type Config struct {
	URI        string
	Database   string
	Collection string
}

func New(ctx context.Context, cfg Config, log *slog.Logger) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		if disconnectErr := client.Disconnect(ctx); disconnectErr != nil {
			log.WarnContext(ctx, "Failed to disconnect after ping failure",
				"error", disconnectErr)
		}

		return nil, fmt.Errorf("ping: %w", err)
	}

	log.InfoContext(ctx, "MongoDB is connected",
		"database", cfg.Database,
		"collection", cfg.Collection)

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		log:    log,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the 2dsphere index $geoNear requires.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	name, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("create 2dsphere index: %w", err)
	}

	s.log.DebugContext(ctx, "Index is ensured",
		"index", name)

	return nil
}
