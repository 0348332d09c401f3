package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accountRepo "passauth/database/repository/account"
	attemptRepo "passauth/database/repository/attempt"
	"passauth/handlers"
	"passauth/models"
	"passauth/routes"
	"passauth/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*gin.Engine, *attemptRepo.MemoryAttemptRepo) {
	gin.SetMode(gin.TestMode)

	attempts := attemptRepo.NewMemoryAttemptRepo()
	svc := &auth.DefaultAuthService{
		Accounts: accountRepo.NewMemoryAccountRepo(),
		Attempts: attempts,
	}
	h := handlers.NewAuthHandler(svc)

	r := gin.New()
	routes.RegisterAuthRoutes(r, h)
	routes.RegisterDataRoutes(r, h)
	routes.RegisterHealthRoute(r)
	return r, attempts
}

func deviceInfoJSON() map[string]any {
	return map[string]any{
		"userAgent":           "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
		"platform":            "iPhone",
		"language":            "en-US",
		"timezone":            "America/New_York",
		"screen":              "390x844",
		"colorDepth":          24,
		"pixelRatio":          3,
		"hardwareConcurrency": 6,
		"maxTouchPoints":      5,
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestRegisterAndValidateFlow(t *testing.T) {
	r, _ := setupRouter()

	reqBody := map[string]any{
		"email":        "a@b.com",
		"credentialId": "cred1",
		"deviceInfo":   deviceInfoJSON(),
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", reqBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	key, _ := resp["encryptionKey"].(string)
	require.Len(t, key, 64)

	w, resp = doJSON(t, r, http.MethodPost, "/api/auth/validate", reqBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, key, resp["encryptionKey"])
	assert.NotEmpty(t, resp["token"])
}

func TestRegister_Conflicts(t *testing.T) {
	r, _ := setupRouter()

	reqBody := map[string]any{
		"email":        "a@b.com",
		"credentialId": "cred1",
		"deviceInfo":   deviceInfoJSON(),
	}
	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", reqBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same email again.
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", reqBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Email already registered", resp["error"])

	// Same device, different email.
	reqBody["email"] = "c@d.com"
	w, resp = doJSON(t, r, http.MethodPost, "/api/auth/register", reqBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "This device is already registered to another account", resp["error"])
}

func TestValidate_UnknownUser(t *testing.T) {
	r, _ := setupRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/validate", map[string]any{
		"email":        "ghost@b.com",
		"credentialId": "cred1",
		"deviceInfo":   deviceInfoJSON(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", resp["error"])
}

func TestValidate_RefusedWhenRateLimited(t *testing.T) {
	r, attempts := setupRouter()

	for i := 0; i < 5; i++ {
		require.NoError(t, attempts.Append(context.Background(), &models.ValidationAttempt{
			Email:     "a@b.com",
			Success:   false,
			Reason:    "Fingerprint hash mismatch",
			Timestamp: time.Now(),
		}))
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/validate", map[string]any{
		"email":        "a@b.com",
		"credentialId": "cred1",
		"deviceInfo":   deviceInfoJSON(),
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRateLimitEndpoint(t *testing.T) {
	r, attempts := setupRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/api/auth/rate-limit?email=a@b.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["rateLimited"])

	for i := 0; i < 5; i++ {
		require.NoError(t, attempts.Append(context.Background(), &models.ValidationAttempt{
			Email:     "a@b.com",
			Success:   false,
			Timestamp: time.Now(),
		}))
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/auth/rate-limit?email=a@b.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["rateLimited"])
}

func TestEncryptDecryptEndpoints(t *testing.T) {
	r, _ := setupRouter()

	key, err := auth.GenerateEncryptionKey()
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodPost, "/api/data/encrypt", map[string]any{
		"data": "hello world",
		"key":  key,
	})
	require.Equal(t, http.StatusOK, w.Code)
	ciphertext, _ := resp["result"].(string)
	require.NotEmpty(t, ciphertext)

	w, resp = doJSON(t, r, http.MethodPost, "/api/data/decrypt", map[string]any{
		"data": ciphertext,
		"key":  key,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", resp["result"])

	// Tampered ciphertext must be rejected.
	tampered := ciphertext[:len(ciphertext)-1]
	if ciphertext[len(ciphertext)-1] == '0' {
		tampered += "1"
	} else {
		tampered += "0"
	}
	w, resp = doJSON(t, r, http.MethodPost, "/api/data/decrypt", map[string]any{
		"data": tampered,
		"key":  key,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Decryption failed", resp["error"])
}

func TestHealthRoute(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
