package accountRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"passauth/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo(client *mongo.Client, dbName string) AccountRepository {
	coll := client.Database(dbName).Collection(AccountsCollection)
	repo := &MongoAccountRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the unique indexes that enforce the one-account-per-
// email and one-account-per-device invariants at insert time.
func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "deviceFingerprint", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_device_fingerprint")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new account document. Duplicate email or device bindings
// fail atomically on the unique indexes.
func (r *MongoAccountRepo) Create(ctx context.Context, acc *models.Account) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, acc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "uniq_device_fingerprint") {
				return ErrDuplicateDevice
			}
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&acc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}
	return &acc, nil
}

// GetByDeviceFingerprint retrieves the account bound to a device fingerprint.
func (r *MongoAccountRepo) GetByDeviceFingerprint(ctx context.Context, fingerprint string) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := r.coll.FindOne(ctx, bson.M{"deviceFingerprint": fingerprint}).Decode(&acc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account by device fingerprint: %w", err)
	}
	return &acc, nil
}

// UpdateLastLogin sets the lastLoginAt timestamp.
func (r *MongoAccountRepo) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"lastLoginAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("account with email %s not found", email)
	}
	return nil
}

// SetAccountStatus updates the lockout state fields.
func (r *MongoAccountRepo) SetAccountStatus(ctx context.Context, email string, active bool, until *time.Time, reason string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"isActive": active}
	unset := bson.M{}
	if until != nil {
		set["disabledUntil"] = *until
	} else {
		unset["disabledUntil"] = ""
	}
	if reason != "" {
		set["disabledReason"] = reason
	} else {
		unset["disabledReason"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update account status for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("account with email %s not found", email)
	}
	return nil
}
