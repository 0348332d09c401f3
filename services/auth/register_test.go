package auth

import (
	"context"
	"testing"

	accountRepo "passauth/database/repository/account"
	attemptRepo "passauth/database/repository/attempt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*DefaultAuthService, *accountRepo.MemoryAccountRepo, *attemptRepo.MemoryAttemptRepo) {
	accounts := accountRepo.NewMemoryAccountRepo()
	attempts := attemptRepo.NewMemoryAttemptRepo()
	svc := &DefaultAuthService{Accounts: accounts, Attempts: attempts}
	return svc, accounts, attempts
}

func TestRegisterUser_Success(t *testing.T) {
	svc, accounts, attempts := newTestService()
	ctx := context.Background()

	result, err := svc.RegisterUser(ctx, "a@b.com", "cred1", testDevice())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.Len(t, result.EncryptionKey, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", result.EncryptionKey)

	acc, err := accounts.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.True(t, acc.IsVerified)
	assert.True(t, acc.IsActive)
	assert.Equal(t, result.EncryptionKey, acc.EncryptionKey)
	assert.Len(t, acc.DeviceFingerprint, 64)
	assert.Len(t, acc.FingerprintHash, 64)
	assert.False(t, acc.CreatedAt.IsZero())
	assert.Nil(t, acc.LastLoginAt)

	logged := attempts.All()
	require.Len(t, logged, 1)
	assert.True(t, logged[0].Success)
	assert.Equal(t, "User registered successfully", logged[0].Reason)
	assert.Equal(t, "a@b.com", logged[0].Email)
}

func TestRegisterUser_NormalizesEmail(t *testing.T) {
	svc, accounts, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "  User@B.COM ", "cred1", testDevice())
	require.NoError(t, err)

	acc, err := accounts.GetByEmail(ctx, "user@b.com")
	require.NoError(t, err)
	assert.NotNil(t, acc)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	svc, _, attempts := newTestService()

	for _, email := range []string{"", "nodomain", "user@nodot", "u ser@b.com"} {
		_, err := svc.RegisterUser(context.Background(), email, "cred1", testDevice())
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
	// Each rejection is attempt-logged.
	assert.Len(t, attempts.All(), 4)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "a@b.com", "cred1", testDevice())
	require.NoError(t, err)

	// Same email must be rejected regardless of device.
	other := testDevice()
	other.UserAgent = "completely different browser"
	_, err = svc.RegisterUser(ctx, "a@b.com", "cred2", other)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegisterUser_DuplicateDevice(t *testing.T) {
	svc, _, attempts := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "first@b.com", "cred1", testDevice())
	require.NoError(t, err)

	// A second account on the same device bundle must be refused.
	_, err = svc.RegisterUser(ctx, "second@b.com", "cred2", testDevice())
	assert.ErrorIs(t, err, ErrDeviceAlreadyRegistered)

	logged := attempts.All()
	require.Len(t, logged, 2)
	assert.False(t, logged[1].Success)
	assert.Equal(t, "second@b.com", logged[1].Email)
}

func TestRegisterUser_KeyIsUniquePerAccount(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	r1, err := svc.RegisterUser(ctx, "a@b.com", "cred1", testDevice())
	require.NoError(t, err)

	other := testDevice()
	other.Screen = "2560x1440"
	r2, err := svc.RegisterUser(ctx, "c@d.com", "cred2", other)
	require.NoError(t, err)

	assert.NotEqual(t, r1.EncryptionKey, r2.EncryptionKey)
}
