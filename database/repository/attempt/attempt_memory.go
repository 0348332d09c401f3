package attemptRepo

import (
	"context"
	"sync"
	"time"

	"passauth/models"

	"github.com/google/uuid"
)

// MemoryAttemptRepo is an in-memory AttemptRepository for development and tests.
type MemoryAttemptRepo struct {
	mu       sync.RWMutex
	attempts []models.ValidationAttempt
}

// NewMemoryAttemptRepo creates an empty in-memory attempt repository.
func NewMemoryAttemptRepo() *MemoryAttemptRepo {
	return &MemoryAttemptRepo{}
}

func (r *MemoryAttemptRepo) Append(_ context.Context, attempt *models.ValidationAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *attempt
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	r.attempts = append(r.attempts, cp)
	return nil
}

func (r *MemoryAttemptRepo) CountRecentFailures(_ context.Context, email string, window time.Duration) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	threshold := time.Now().Add(-window)
	count := 0
	for _, a := range r.attempts {
		if a.Email == email && !a.Success && a.Timestamp.After(threshold) {
			count++
		}
	}
	return count, nil
}

// All returns a snapshot of every stored attempt, oldest first.
func (r *MemoryAttemptRepo) All() []models.ValidationAttempt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ValidationAttempt, len(r.attempts))
	copy(out, r.attempts)
	return out
}
