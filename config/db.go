package config

import (
	"context"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	db     *mongo.Database
	client *mongo.Client
	once   sync.Once
)

// ConnectDB initializes and returns a MongoDB database connection
func ConnectDB() *mongo.Database {
	once.Do(func() {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			Logger.Fatal().Msg("Please define the MONGODB_URI environment variable")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}

		if err := c.Ping(ctx, nil); err != nil {
			Logger.Fatal().Err(err).Msg("Failed to ping MongoDB")
		}

		Logger.Info().Msg("Connected to MongoDB")

		dbName := os.Getenv("MONGODB_DB")
		if dbName == "" {
			dbName = "campuscare"
		}

		client = c
		db = client.Database(dbName)
	})

	return db
}

// GetCollection returns a MongoDB collection by name
func GetCollection(name string) *mongo.Collection {
	return ConnectDB().Collection(name)
}
