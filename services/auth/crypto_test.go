package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEncryptionKey(t *testing.T) {
	k1, err := GenerateEncryptionKey()
	require.NoError(t, err)
	k2, err := GenerateEncryptionKey()
	require.NoError(t, err)

	assert.Len(t, k1, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", k1)
	assert.NotEqual(t, k1, k2)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	for _, mode := range []string{KeyModeLegacy, KeyModeHKDF} {
		t.Run(mode, func(t *testing.T) {
			svc := &DefaultAuthService{KeyMode: mode}

			plaintexts := []string{
				"hello world",
				"",
				"a",
				strings.Repeat("long payload ", 100),
				"unicode: héllo wörld ✓ 日本語",
				`{"json":"payload","n":42}`,
			}
			for _, p := range plaintexts {
				ct, err := svc.EncryptData(p, key)
				require.NoError(t, err)
				assert.Regexp(t, "^[0-9a-f]*$", ct)

				got, err := svc.DecryptData(ct, key)
				require.NoError(t, err)
				assert.Equal(t, p, got)
			}
		})
	}
}

func TestEncryptData_FreshNoncePerCall(t *testing.T) {
	svc := &DefaultAuthService{}
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	ct1, err := svc.EncryptData("hello world", key)
	require.NoError(t, err)
	ct2, err := svc.EncryptData("hello world", key)
	require.NoError(t, err)

	assert.NotEqual(t, ct1, ct2)
}

func flipHexChar(s string, i int) string {
	replacement := byte('0')
	if s[i] == '0' {
		replacement = '1'
	}
	return s[:i] + string(replacement) + s[i+1:]
}

func TestDecryptData_TamperDetection(t *testing.T) {
	svc := &DefaultAuthService{}
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	ct, err := svc.EncryptData("hello world", key)
	require.NoError(t, err)

	// Flipping any single hex character (nonce, ciphertext or tag)
	// must fail decryption, never return different plaintext.
	for i := 0; i < len(ct); i++ {
		tampered := flipHexChar(ct, i)
		_, err := svc.DecryptData(tampered, key)
		assert.ErrorIs(t, err, ErrDecryptionFailed, "position %d", i)
	}
}

func TestDecryptData_WrongKey(t *testing.T) {
	svc := &DefaultAuthService{}
	k1, err := GenerateEncryptionKey()
	require.NoError(t, err)
	k2, err := GenerateEncryptionKey()
	require.NoError(t, err)

	ct, err := svc.EncryptData("secret", k1)
	require.NoError(t, err)

	_, err = svc.DecryptData(ct, k2)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptData_MalformedInput(t *testing.T) {
	svc := &DefaultAuthService{}
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", "zz" + strings.Repeat("00", 40)},
		{"odd length", strings.Repeat("0", 81)},
		{"nonce only", strings.Repeat("00", 12)},
		{"shorter than nonce plus tag", strings.Repeat("00", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DecryptData(tt.input, key)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
		})
	}
}

func TestEncryptData_RejectsShortLegacyKey(t *testing.T) {
	svc := &DefaultAuthService{}

	_, err := svc.EncryptData("data", "too-short")
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)
}

func TestEncryptData_RejectsInvalidHKDFKey(t *testing.T) {
	svc := &DefaultAuthService{KeyMode: KeyModeHKDF}

	_, err := svc.EncryptData("data", strings.Repeat("z", 64))
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)

	_, err = svc.EncryptData("data", "abcd")
	assert.ErrorIs(t, err, ErrInvalidEncryptionKey)
}

func TestDecryptData_ModesAreIncompatible(t *testing.T) {
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	legacy := &DefaultAuthService{KeyMode: KeyModeLegacy}
	hkdfSvc := &DefaultAuthService{KeyMode: KeyModeHKDF}

	ct, err := legacy.EncryptData("hello", key)
	require.NoError(t, err)

	_, err = hkdfSvc.DecryptData(ct, key)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
