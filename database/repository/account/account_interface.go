package accountRepo

import (
	"context"
	"errors"
	"time"

	"passauth/models"
)

// Conflict errors surfaced by Create. The backing store must detect both
// atomically with the insert so two concurrent registrations cannot end up
// bound to the same email or device.
var (
	ErrDuplicateEmail  = errors.New("account with this email already exists")
	ErrDuplicateDevice = errors.New("device fingerprint already bound to another account")
)

// AccountRepository defines methods for account data access.
type AccountRepository interface {
	// Create inserts a new account record. The email existence check, the
	// device fingerprint uniqueness check and the insert are a single
	// atomic operation.
	Create(ctx context.Context, acc *models.Account) error
	// GetByEmail retrieves an account by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// GetByDeviceFingerprint retrieves the account bound to a device
	// fingerprint. Returns (nil, nil) when none exists.
	GetByDeviceFingerprint(ctx context.Context, fingerprint string) (*models.Account, error)
	// UpdateLastLogin sets the lastLoginAt timestamp.
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	// SetAccountStatus updates the lockout state machine fields.
	SetAccountStatus(ctx context.Context, email string, active bool, until *time.Time, reason string) error
}
