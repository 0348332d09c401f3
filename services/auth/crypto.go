package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Key derivation modes for data encryption.
const (
	// KeyModeLegacy uses the first 32 bytes of the UTF-8 key string as
	// the AES key, matching the format existing ciphertexts were
	// produced with. Since the key material is a 64-hex-character
	// string, this uses its first 32 characters as ASCII bytes.
	KeyModeLegacy = "legacy"
	// KeyModeHKDF decodes the full 64-hex-character key to its 32 raw
	// random bytes and stretches them through HKDF-SHA256. Not
	// compatible with ciphertexts produced in legacy mode.
	KeyModeHKDF = "hkdf"
)

const gcmNonceSize = 12

// hkdfInfo domain-separates the derived data-encryption key.
var hkdfInfo = []byte("passauth data encryption v1")

// GenerateEncryptionKey returns a fresh 256-bit key from the CSPRNG,
// hex-encoded to 64 characters. Generated once per account at registration
// and never rotated.
func GenerateEncryptionKey() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// deriveKeyBytes turns the account key string into 32 AES key bytes
// according to the configured mode.
func deriveKeyBytes(key, mode string) ([]byte, error) {
	switch mode {
	case KeyModeHKDF:
		raw, err := hex.DecodeString(key)
		if err != nil || len(raw) != 32 {
			return nil, ErrInvalidEncryptionKey
		}
		derived := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, raw, nil, hkdfInfo), derived); err != nil {
			return nil, fmt.Errorf("failed to derive key: %w", err)
		}
		return derived, nil
	case KeyModeLegacy, "":
		b := []byte(key)
		if len(b) < 32 {
			return nil, ErrInvalidEncryptionKey
		}
		return b[:32], nil
	default:
		return nil, fmt.Errorf("unknown key derivation mode %q", mode)
	}
}

func newGCM(key, mode string) (cipher.AEAD, error) {
	kb, err := deriveKeyBytes(key, mode)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(kb)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptData encrypts a plaintext string under the account key with
// AES-GCM and a fresh random 96-bit nonce. Output is hex(nonce || ciphertext+tag).
func (s *DefaultAuthService) EncryptData(plaintext, key string) (string, error) {
	aead, err := newGCM(key, s.KeyMode)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(append(nonce, sealed...)), nil
}

// DecryptData reverses EncryptData. Any corruption (wrong key, flipped
// ciphertext byte, truncated input, tampered tag) fails with
// ErrDecryptionFailed rather than returning garbage.
func (s *DefaultAuthService) DecryptData(ciphertext, key string) (string, error) {
	aead, err := newGCM(key, s.KeyMode)
	if err != nil {
		return "", err
	}

	combined, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(combined) < gcmNonceSize+aead.Overhead() {
		return "", ErrDecryptionFailed
	}

	nonce, sealed := combined[:gcmNonceSize], combined[gcmNonceSize:]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
