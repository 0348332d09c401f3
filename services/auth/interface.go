package auth

import (
	"context"
	"time"

	accountRepo "passauth/database/repository/account"
	attemptRepo "passauth/database/repository/attempt"
	"passauth/models"

	"github.com/go-redis/redis/v8"
)

const (
	// Failed-attempt threshold and trailing window for rate limiting.
	maxFailedAttempts = 5
	rateLimitWindow   = 15 * time.Minute

	// How long an account stays disabled after hitting the threshold.
	lockoutDuration = 30 * time.Minute
)

// AuthService is the device-bound credential service: registration bound to
// exactly one device fingerprint, validation by fingerprint recomputation,
// per-account AEAD encryption and attempt-log-driven rate limiting.
type AuthService interface {
	// ValidateEmail reports whether the email has a plausible
	// user@domain.tld shape.
	ValidateEmail(email string) bool
	// IsRateLimited reports whether the email has accumulated too many
	// recent failed attempts. Pure read; callers refuse registration and
	// validation when it returns true.
	IsRateLimited(ctx context.Context, email string) (bool, error)
	// RegisterUser creates an account bound to the calling device and
	// returns the freshly generated encryption key, the only time it is
	// ever exposed alongside a registration.
	RegisterUser(ctx context.Context, email, credentialID string, device models.DeviceInfo) (*AuthResult, error)
	// ValidateUser re-derives the device and credential fingerprints,
	// compares them against the stored binding and returns the account's
	// durable encryption key on success.
	ValidateUser(ctx context.Context, email, credentialID string, device models.DeviceInfo) (*AuthResult, error)
	// EncryptData encrypts a plaintext string under the account key.
	EncryptData(plaintext, key string) (string, error)
	// DecryptData reverses EncryptData. Tampered or mismatched input
	// fails with ErrDecryptionFailed, never silent garbage.
	DecryptData(ciphertext, key string) (string, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Accounts accountRepo.AccountRepository
	Attempts attemptRepo.AttemptRepository

	// Sessions is the optional Redis client for caching auth sessions
	// after successful validation. Nil disables caching.
	Sessions *redis.Client

	// KeyMode selects the data-encryption key derivation
	// (KeyModeLegacy when empty).
	KeyMode string
}

// AuthResult is the outcome of a registration or validation call.
type AuthResult struct {
	Success       bool   `json:"success"`
	EncryptionKey string `json:"encryptionKey,omitempty"`
	Token         string `json:"token,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
}
