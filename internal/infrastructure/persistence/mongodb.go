package persistence

import (
	"context"
	"fmt"
	"time"

	"qtholidays-service/internal/infrastructure/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// NewMongoDatabase connects to the document store described by cfg, checks
// it answers and returns the configured database. Every operation issued
// through the returned handle is bounded by cfg.StoreTimeout.
func NewMongoDatabase(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.MongoDB, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("document store %s is not reachable: %w", cfg.MongoDB, err)
	}

	return client.Database(cfg.MongoDB), nil
}

func mongoClientOptions(cfg *config.Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("qtholidays-service/" + cfg.AppVersion)

	if cfg.StoreTimeout > 0 {
		opts.SetTimeout(cfg.StoreTimeout)
	}
	if cfg.MongoUser != "" && cfg.MongoPassword != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
	}

	return opts
}
