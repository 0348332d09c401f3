package attemptRepo

import (
	"context"
	"fmt"
	"time"

	"passauth/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// AttemptsCollection is the Firestore collection holding the append-only
// validation attempt log.
const AttemptsCollection = "validation_attempts"

// FirestoreAttemptRepo implements AttemptRepository using Firestore.
type FirestoreAttemptRepo struct {
	client *firestore.Client
}

// NewFirestoreAttemptRepo creates a new instance of AttemptRepository using Firestore.
func NewFirestoreAttemptRepo(client *firestore.Client) AttemptRepository {
	return &FirestoreAttemptRepo{client: client}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Append stores one attempt record with an auto-generated document ID.
func (r *FirestoreAttemptRepo) Append(ctx context.Context, attempt *models.ValidationAttempt) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, _, err := r.client.Collection(AttemptsCollection).Add(ctx, attempt)
	if err != nil {
		return fmt.Errorf("failed to append validation attempt: %w", err)
	}
	return nil
}

// CountRecentFailures counts failed attempts for an email within the trailing window.
func (r *FirestoreAttemptRepo) CountRecentFailures(ctx context.Context, email string, window time.Duration) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	threshold := time.Now().Add(-window)
	iter := r.client.Collection(AttemptsCollection).
		Where("email", "==", email).
		Where("success", "==", false).
		Where("timestamp", ">", threshold).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count recent failures: %w", err)
		}
		count++
	}
	return count, nil
}
