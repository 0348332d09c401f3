// File: passauth/models/account.go
package models

import "time"

// Account is a device-bound user record, keyed by normalized email.
// EncryptionKey is generated once at registration and never rotated;
// DeviceFingerprint binds the account to exactly one device.
type Account struct {
	Email             string     `json:"email" bson:"email" firestore:"email"`
	EncryptionKey     string     `json:"-" bson:"encryptionKey" firestore:"encryptionKey"`
	FingerprintHash   string     `json:"-" bson:"fingerprintHash" firestore:"fingerprintHash"`
	DeviceFingerprint string     `json:"-" bson:"deviceFingerprint" firestore:"deviceFingerprint"`
	IsVerified        bool       `json:"isVerified" bson:"isVerified" firestore:"isVerified"`
	IsActive          bool       `json:"isActive" bson:"isActive" firestore:"isActive"`
	DisabledUntil     *time.Time `json:"disabledUntil,omitempty" bson:"disabledUntil,omitempty" firestore:"disabledUntil,omitempty"`
	DisabledReason    string     `json:"disabledReason,omitempty" bson:"disabledReason,omitempty" firestore:"disabledReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty" firestore:"lastLoginAt,omitempty"`
}
