package auth

// AuthError is a recoverable, user-visible failure with a stable machine code.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrInvalidEmail            = &AuthError{Code: "invalid_email", Message: "Invalid email format"}
	ErrEmailAlreadyRegistered  = &AuthError{Code: "email_already_registered", Message: "Email already registered"}
	ErrDeviceAlreadyRegistered = &AuthError{Code: "device_already_registered", Message: "This device is already registered to another account"}
	ErrUserNotFound            = &AuthError{Code: "user_not_found", Message: "User not found"}
	ErrAccountNotVerified      = &AuthError{Code: "account_not_verified", Message: "Account not verified"}
	ErrAccountDisabled         = &AuthError{Code: "account_disabled", Message: "Account temporarily disabled"}
	ErrDeviceNotRecognized     = &AuthError{Code: "device_not_recognized", Message: "Device not recognized"}
	ErrFingerprintMismatch     = &AuthError{Code: "fingerprint_mismatch", Message: "Fingerprint validation failed"}
	ErrDecryptionFailed        = &AuthError{Code: "decryption_failed", Message: "Decryption failed"}
	ErrInvalidEncryptionKey    = &AuthError{Code: "invalid_encryption_key", Message: "Encryption key must be at least 32 characters"}
	ErrRateLimited             = &AuthError{Code: "rate_limited", Message: "Too many failed attempts, please try again later"}
	ErrRegistrationFailed      = &AuthError{Code: "registration_failed", Message: "Registration failed"}
	ErrValidationFailed        = &AuthError{Code: "validation_failed", Message: "Validation failed"}
)
