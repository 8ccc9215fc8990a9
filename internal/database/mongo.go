package database

import (
	"context"
	"fmt"

	"github.com/Dias221467/Mindful_Companion/internal/config"
	"github.com/Dias221467/Mindful_Companion/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared with the repositories.
const (
	MoodsCollection   = "moods"
	JournalCollection = "journalEntries"
	UsersCollection   = "users"
)

// ConnectDB opens the client, pings the primary and returns the configured database.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Log.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")
	return client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the listing queries and the login lookup rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	byOwnerNewestFirst := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	}

	for _, name := range []string{MoodsCollection, JournalCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, byOwnerNewestFirst); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}

	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, uniqueEmail); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", UsersCollection, err)
	}

	logger.Log.Info("MongoDB indexes ensured")
	return nil
}
