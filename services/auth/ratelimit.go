package auth

import (
	"context"
	"time"

	"passauth/models"
	"passauth/utils"

	"go.uber.org/zap"
)

// IsRateLimited reports whether the email has accumulated maxFailedAttempts
// or more failed attempts within the trailing rateLimitWindow. Read-only;
// it never blocks writes itself.
func (s *DefaultAuthService) IsRateLimited(ctx context.Context, email string) (bool, error) {
	count, err := s.Attempts.CountRecentFailures(ctx, NormalizeEmail(email), rateLimitWindow)
	if err != nil {
		utils.GetLogger().Error("IsRateLimited: failed to count recent failures",
			zap.String("email", email), zap.Error(err))
		return false, err
	}
	return count >= maxFailedAttempts, nil
}

// logAttempt appends one attempt record. Fire-and-forget: a logging failure
// is reported diagnostically and never propagated, so the primary operation
// result is unaffected. A failed attempt that reaches the rate-limit
// threshold temporarily disables the account.
func (s *DefaultAuthService) logAttempt(ctx context.Context, email string, success bool, reason string, device models.DeviceInfo) {
	attempt := &models.ValidationAttempt{
		Email:      email,
		Success:    success,
		Reason:     reason,
		Timestamp:  time.Now(),
		DeviceInfo: device,
	}
	if err := s.Attempts.Append(ctx, attempt); err != nil {
		utils.GetLogger().Error("Failed to log validation attempt",
			zap.String("email", email), zap.String("reason", reason), zap.Error(err))
		return
	}

	if !success {
		s.checkFailedAttempts(ctx, email)
	}
}

// checkFailedAttempts disables the account for lockoutDuration once the
// failure threshold is reached within the rate-limit window.
func (s *DefaultAuthService) checkFailedAttempts(ctx context.Context, email string) {
	logger := utils.GetLogger()

	count, err := s.Attempts.CountRecentFailures(ctx, email, rateLimitWindow)
	if err != nil {
		logger.Error("Failed to count failed attempts", zap.String("email", email), zap.Error(err))
		return
	}
	if count < maxFailedAttempts {
		return
	}

	acc, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil || acc == nil || !acc.IsActive {
		return
	}

	until := time.Now().Add(lockoutDuration)
	if err := s.Accounts.SetAccountStatus(ctx, email, false, &until, "Multiple failed authentication attempts"); err != nil {
		logger.Error("Failed to disable account", zap.String("email", email), zap.Error(err))
		return
	}
	logger.Warn("Account temporarily disabled after repeated failures",
		zap.String("email", email),
		zap.Int("failureCount", count),
		zap.Time("disabledUntil", until))
}
