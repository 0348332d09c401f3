package auth

import (
	"context"
	"time"

	"passauth/models"
	"passauth/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionTokenTTL bounds the JWT issued after a successful validation.
const sessionTokenTTL = 24 * time.Hour

// ValidateUser checks an existing account against the calling device. Steps
// short-circuit on the first failure and every failure is attempt-logged
// with its reason before returning. On success the stored encryption key is
// returned unchanged; it is never regenerated here.
func (s *DefaultAuthService) ValidateUser(ctx context.Context, email, credentialID string, device models.DeviceInfo) (*AuthResult, error) {
	logger := utils.GetLogger()
	email = NormalizeEmail(email)

	if !s.ValidateEmail(email) {
		s.logAttempt(ctx, email, false, "Invalid email format", device)
		return nil, ErrInvalidEmail
	}

	acc, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("ValidateUser: failed to fetch account", zap.String("email", email), zap.Error(err))
		s.logAttempt(ctx, email, false, "Validation error", device)
		return nil, ErrValidationFailed
	}
	if acc == nil {
		s.logAttempt(ctx, email, false, "User not found", device)
		return nil, ErrUserNotFound
	}

	if !acc.IsActive {
		// A lockout whose window has passed re-enables the account on
		// the next attempt.
		if acc.DisabledUntil != nil && acc.DisabledUntil.Before(time.Now()) {
			if err := s.Accounts.SetAccountStatus(ctx, email, true, nil, ""); err != nil {
				logger.Error("ValidateUser: failed to re-enable account", zap.String("email", email), zap.Error(err))
				s.logAttempt(ctx, email, false, "Validation error", device)
				return nil, ErrValidationFailed
			}
			logger.Info("Account re-enabled after lockout expiry", zap.String("email", email))
		} else {
			s.logAttempt(ctx, email, false, "Account temporarily disabled", device)
			return nil, ErrAccountDisabled
		}
	}

	if !acc.IsVerified {
		s.logAttempt(ctx, email, false, "User not verified", device)
		return nil, ErrAccountNotVerified
	}

	currentFingerprint, err := DeviceFingerprint(device)
	if err != nil {
		logger.Error("ValidateUser: failed to derive device fingerprint", zap.Error(err))
		s.logAttempt(ctx, email, false, "Validation error", device)
		return nil, ErrValidationFailed
	}
	if acc.DeviceFingerprint != currentFingerprint {
		s.logAttempt(ctx, email, false, "Device fingerprint mismatch", device)
		return nil, ErrDeviceNotRecognized
	}

	currentHash, err := CredentialFingerprintHash(credentialID, device)
	if err != nil {
		logger.Error("ValidateUser: failed to derive credential fingerprint hash", zap.Error(err))
		s.logAttempt(ctx, email, false, "Validation error", device)
		return nil, ErrValidationFailed
	}
	if acc.FingerprintHash != currentHash {
		s.logAttempt(ctx, email, false, "Fingerprint hash mismatch", device)
		return nil, ErrFingerprintMismatch
	}

	if err := s.Accounts.UpdateLastLogin(ctx, email, time.Now()); err != nil {
		logger.Error("ValidateUser: failed to update last login", zap.String("email", email), zap.Error(err))
		s.logAttempt(ctx, email, false, "Validation error", device)
		return nil, ErrValidationFailed
	}

	s.logAttempt(ctx, email, true, "Validation successful", device)

	result := &AuthResult{Success: true, EncryptionKey: acc.EncryptionKey}

	// Session issuance is best-effort: a token or cache failure never
	// fails an otherwise valid sign-in.
	token, err := utils.GenerateToken(email, sessionTokenTTL)
	if err != nil {
		logger.Error("ValidateUser: failed to generate session token", zap.String("email", email), zap.Error(err))
		return result, nil
	}
	result.Token = token

	if s.Sessions != nil {
		sessionID := uuid.New().String()
		session := utils.AuthSession{
			SessionID:         sessionID,
			Email:             email,
			DeviceFingerprint: currentFingerprint,
			CreatedAt:         time.Now(),
			Token:             token,
		}
		if err := utils.SaveAuthSession(s.Sessions, sessionID, session); err != nil {
			logger.Error("ValidateUser: failed to cache auth session", zap.String("email", email), zap.Error(err))
		} else {
			result.SessionID = sessionID
		}
	}

	return result, nil
}
