package handlers

import (
	"errors"
	"net/http"

	"passauth/middleware"
	"passauth/models"
	"passauth/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the device-bound credential operations over HTTP.
type AuthHandler struct {
	Service auth.AuthService
}

// NewAuthHandler creates a handler backed by the given auth service.
func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// authRequest is the body for both registration and validation calls.
type authRequest struct {
	Email        string            `json:"email" binding:"required"`
	CredentialID string            `json:"credentialId" binding:"required"`
	DeviceInfo   models.DeviceInfo `json:"deviceInfo" binding:"required"`
}

// authResponse mirrors the {success, encryptionKey?, error?} contract.
type authResponse struct {
	Success       bool   `json:"success"`
	EncryptionKey string `json:"encryptionKey,omitempty"`
	Token         string `json:"token,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
	Error         string `json:"error,omitempty"`
}

// statusForAuthError maps the service error taxonomy to HTTP status codes.
func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrEmailAlreadyRegistered),
		errors.Is(err, auth.ErrDeviceAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrDeviceNotRecognized),
		errors.Is(err, auth.ErrFingerprintMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAccountNotVerified):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeAuthError(c *gin.Context, err error) {
	var authErr *auth.AuthError
	msg := "Operation failed"
	if errors.As(err, &authErr) {
		msg = authErr.Message
	}
	c.JSON(statusForAuthError(err), authResponse{Success: false, Error: msg})
}

// RegisterUserHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger()

	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, authResponse{Success: false, Error: "Invalid request: " + err.Error()})
		return
	}
	req.DeviceInfo.ClientIP = middleware.ClientIP(c)

	// The limiter is a pure read; refusing limited callers is the
	// caller's job, done here before touching the account store.
	limited, err := h.Service.IsRateLimited(c.Request.Context(), req.Email)
	if err == nil && limited {
		writeAuthError(c, auth.ErrRateLimited)
		return
	}

	result, err := h.Service.RegisterUser(c.Request.Context(), req.Email, req.CredentialID, req.DeviceInfo)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Success:       true,
		EncryptionKey: result.EncryptionKey,
	})
}

// ValidateUserHandler handles POST /api/auth/validate.
func (h *AuthHandler) ValidateUserHandler(c *gin.Context) {
	logger := getLogger()

	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid validation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, authResponse{Success: false, Error: "Invalid request: " + err.Error()})
		return
	}
	req.DeviceInfo.ClientIP = middleware.ClientIP(c)

	limited, err := h.Service.IsRateLimited(c.Request.Context(), req.Email)
	if err == nil && limited {
		writeAuthError(c, auth.ErrRateLimited)
		return
	}

	result, err := h.Service.ValidateUser(c.Request.Context(), req.Email, req.CredentialID, req.DeviceInfo)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Success:       true,
		EncryptionKey: result.EncryptionKey,
		Token:         result.Token,
		SessionID:     result.SessionID,
	})
}

// RateLimitHandler handles GET /api/auth/rate-limit?email=...
func (h *AuthHandler) RateLimitHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: email"})
		return
	}

	limited, err := h.Service.IsRateLimited(c.Request.Context(), email)
	if err != nil {
		getLogger().Error("Failed to check rate limit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check rate limit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "rateLimited": limited})
}
