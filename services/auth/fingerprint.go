package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"passauth/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an email for use as the account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether the email has a single-@, non-whitespace,
// dotted-domain shape.
func (s *DefaultAuthService) ValidateEmail(email string) bool {
	return emailRegex.MatchString(NormalizeEmail(email))
}

// deviceTuple is the canonical serialization order for the device
// fingerprint. Field order and JSON key names are the wire contract; any
// change breaks every stored fingerprint.
type deviceTuple struct {
	UserAgent           string  `json:"userAgent"`
	Platform            string  `json:"platform"`
	Language            string  `json:"language"`
	Timezone            string  `json:"timezone"`
	Screen              string  `json:"screen"`
	ColorDepth          int     `json:"colorDepth"`
	PixelRatio          float64 `json:"pixelRatio"`
	HardwareConcurrency int     `json:"hardwareConcurrency"`
	MaxTouchPoints      int     `json:"maxTouchPoints"`
}

// credentialTuple is the canonical serialization for the credential
// fingerprint hash: the platform credential identifier bound to the stable
// device attributes. Volatile inputs (clocks, counters) are deliberately
// excluded so the stored and recomputed hashes stay comparable.
type credentialTuple struct {
	CredentialID string `json:"credentialId"`
	UserAgent    string `json:"userAgent"`
	Platform     string `json:"platform"`
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DeviceFingerprint derives the stable device digest: lowercase hex SHA-256
// over the canonical JSON of the device attribute tuple. Deterministic for a
// fixed bundle; changes when any attribute changes.
func DeviceFingerprint(device models.DeviceInfo) (string, error) {
	data, err := json.Marshal(deviceTuple{
		UserAgent:           device.UserAgent,
		Platform:            device.Platform,
		Language:            device.Language,
		Timezone:            device.Timezone,
		Screen:              device.Screen,
		ColorDepth:          device.ColorDepth,
		PixelRatio:          device.PixelRatio,
		HardwareConcurrency: device.HardwareConcurrency,
		MaxTouchPoints:      device.MaxTouchPoints,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize device attributes: %w", err)
	}
	return sha256Hex(data), nil
}

// CredentialFingerprintHash binds a platform credential identifier to the
// device snapshot. Used as a secondary validation factor.
func CredentialFingerprintHash(credentialID string, device models.DeviceInfo) (string, error) {
	data, err := json.Marshal(credentialTuple{
		CredentialID: credentialID,
		UserAgent:    device.UserAgent,
		Platform:     device.Platform,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize credential attributes: %w", err)
	}
	return sha256Hex(data), nil
}
