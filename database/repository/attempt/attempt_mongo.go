package attemptRepo

import (
	"context"
	"fmt"
	"time"

	"passauth/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAttemptRepo implements AttemptRepository using MongoDB.
type MongoAttemptRepo struct {
	coll *mongo.Collection
}

// NewMongoAttemptRepo creates a new instance of AttemptRepository using MongoDB.
func NewMongoAttemptRepo(client *mongo.Client, dbName string) AttemptRepository {
	coll := client.Database(dbName).Collection(AttemptsCollection)
	repo := &MongoAttemptRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the compound index backing the rate-limit query.
func (r *MongoAttemptRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "success", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("rate_limit_lookup"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append stores one attempt record.
func (r *MongoAttemptRepo) Append(ctx context.Context, attempt *models.ValidationAttempt) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, attempt)
	if err != nil {
		return fmt.Errorf("failed to append validation attempt: %w", err)
	}
	return nil
}

// CountRecentFailures counts failed attempts for an email within the trailing window.
func (r *MongoAttemptRepo) CountRecentFailures(ctx context.Context, email string, window time.Duration) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	threshold := time.Now().Add(-window)
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"email":     email,
		"success":   false,
		"timestamp": bson.M{"$gt": threshold},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count recent failures: %w", err)
	}
	return int(count), nil
}
