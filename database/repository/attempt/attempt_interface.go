package attemptRepo

import (
	"context"
	"time"

	"passauth/models"
)

// AttemptRepository defines methods for the append-only validation attempt log.
type AttemptRepository interface {
	// Append stores one attempt record. Records are never updated or deleted.
	Append(ctx context.Context, attempt *models.ValidationAttempt) error
	// CountRecentFailures counts failed attempts for an email whose
	// timestamp falls within the trailing window.
	CountRecentFailures(ctx context.Context, email string, window time.Duration) (int, error)
}
