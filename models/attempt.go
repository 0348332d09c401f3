// File: passauth/models/attempt.go
package models

import "time"

// ValidationAttempt is one append-only audit entry for a registration or
// validation call. Failed attempts feed the rate limiter; records are never
// pruned by this service.
type ValidationAttempt struct {
	ID         string     `json:"id,omitempty" bson:"id,omitempty" firestore:"-"`
	Email      string     `json:"email" bson:"email" firestore:"email"`
	Success    bool       `json:"success" bson:"success" firestore:"success"`
	Reason     string     `json:"reason,omitempty" bson:"reason,omitempty" firestore:"reason,omitempty"`
	Timestamp  time.Time  `json:"timestamp" bson:"timestamp" firestore:"timestamp"`
	DeviceInfo DeviceInfo `json:"deviceInfo" bson:"deviceInfo" firestore:"deviceInfo"`
}
