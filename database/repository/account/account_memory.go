package accountRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"passauth/models"
)

// MemoryAccountRepo is an in-memory AccountRepository for development and
// tests. All operations are guarded by a single mutex, so the email and
// device uniqueness checks are atomic with the insert.
type MemoryAccountRepo struct {
	mu       sync.RWMutex
	byEmail  map[string]*models.Account
	byDevice map[string]string // device fingerprint -> email
}

// NewMemoryAccountRepo creates an empty in-memory account repository.
func NewMemoryAccountRepo() *MemoryAccountRepo {
	return &MemoryAccountRepo{
		byEmail:  make(map[string]*models.Account),
		byDevice: make(map[string]string),
	}
}

func cloneAccount(acc *models.Account) *models.Account {
	cp := *acc
	if acc.DisabledUntil != nil {
		t := *acc.DisabledUntil
		cp.DisabledUntil = &t
	}
	if acc.LastLoginAt != nil {
		t := *acc.LastLoginAt
		cp.LastLoginAt = &t
	}
	return &cp
}

func (r *MemoryAccountRepo) Create(_ context.Context, acc *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[acc.Email]; ok {
		return ErrDuplicateEmail
	}
	if _, ok := r.byDevice[acc.DeviceFingerprint]; ok {
		return ErrDuplicateDevice
	}
	r.byEmail[acc.Email] = cloneAccount(acc)
	r.byDevice[acc.DeviceFingerprint] = acc.Email
	return nil
}

func (r *MemoryAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneAccount(acc), nil
}

func (r *MemoryAccountRepo) GetByDeviceFingerprint(_ context.Context, fingerprint string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email, ok := r.byDevice[fingerprint]
	if !ok {
		return nil, nil
	}
	return cloneAccount(r.byEmail[email]), nil
}

func (r *MemoryAccountRepo) UpdateLastLogin(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byEmail[email]
	if !ok {
		return fmt.Errorf("account with email %s not found", email)
	}
	t := at
	acc.LastLoginAt = &t
	return nil
}

func (r *MemoryAccountRepo) SetAccountStatus(_ context.Context, email string, active bool, until *time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byEmail[email]
	if !ok {
		return fmt.Errorf("account with email %s not found", email)
	}
	acc.IsActive = active
	acc.DisabledReason = reason
	if until != nil {
		t := *until
		acc.DisabledUntil = &t
	} else {
		acc.DisabledUntil = nil
	}
	return nil
}
