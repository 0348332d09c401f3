package auth

import (
	"context"
	"errors"
	"time"

	accountRepo "passauth/database/repository/account"
	"passauth/models"
	"passauth/utils"

	"go.uber.org/zap"
)

// RegisterUser creates a new account atomically bound to the calling device.
// Validation order: email format, email uniqueness, device uniqueness. On
// success the freshly generated 256-bit encryption key is returned, the
// only time it is exposed alongside a registration.
func (s *DefaultAuthService) RegisterUser(ctx context.Context, email, credentialID string, device models.DeviceInfo) (*AuthResult, error) {
	logger := utils.GetLogger()
	email = NormalizeEmail(email)

	if !s.ValidateEmail(email) {
		s.logAttempt(ctx, email, false, "Invalid email format", device)
		return nil, ErrInvalidEmail
	}

	deviceFingerprint, err := DeviceFingerprint(device)
	if err != nil {
		logger.Error("RegisterUser: failed to derive device fingerprint", zap.Error(err))
		return nil, ErrRegistrationFailed
	}
	fingerprintHash, err := CredentialFingerprintHash(credentialID, device)
	if err != nil {
		logger.Error("RegisterUser: failed to derive credential fingerprint hash", zap.Error(err))
		return nil, ErrRegistrationFailed
	}
	encryptionKey, err := GenerateEncryptionKey()
	if err != nil {
		logger.Error("RegisterUser: failed to generate encryption key", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	acc := &models.Account{
		Email:             email,
		EncryptionKey:     encryptionKey,
		FingerprintHash:   fingerprintHash,
		DeviceFingerprint: deviceFingerprint,
		IsVerified:        true,
		IsActive:          true,
		CreatedAt:         time.Now(),
	}

	if err := s.Accounts.Create(ctx, acc); err != nil {
		switch {
		case errors.Is(err, accountRepo.ErrDuplicateEmail):
			s.logAttempt(ctx, email, false, "Email already registered", device)
			return nil, ErrEmailAlreadyRegistered
		case errors.Is(err, accountRepo.ErrDuplicateDevice):
			s.logAttempt(ctx, email, false, "Device already registered to another account", device)
			return nil, ErrDeviceAlreadyRegistered
		default:
			logger.Error("RegisterUser: failed to create account", zap.String("email", email), zap.Error(err))
			s.logAttempt(ctx, email, false, "Registration error", device)
			return nil, ErrRegistrationFailed
		}
	}

	s.logAttempt(ctx, email, true, "User registered successfully", device)
	logger.Info("Account registered", zap.String("email", email))

	return &AuthResult{Success: true, EncryptionKey: encryptionKey}, nil
}
