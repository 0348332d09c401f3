// File: utils/constants.go
package utils

import "time"

// AuthSessionPrefix is the prefix used for Redis auth session cache keys.
const AuthSessionPrefix = "authSession:"

// AuthSessionTTL is the time-to-live for cached auth sessions.
const AuthSessionTTL = 10 * time.Minute
