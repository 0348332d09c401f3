package handlers

import (
	"errors"
	"net/http"

	"passauth/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dataRequest is the body for encrypt/decrypt calls. Data is the plaintext
// for encryption or the hex ciphertext for decryption; Key is the account's
// 64-hex-character encryption key.
type dataRequest struct {
	Data string `json:"data" binding:"required"`
	Key  string `json:"key" binding:"required"`
}

// EncryptDataHandler handles POST /api/data/encrypt.
func (h *AuthHandler) EncryptDataHandler(c *gin.Context) {
	var req dataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.EncryptData(req.Data, req.Key)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidEncryptionKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger().Error("Encryption failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Encryption failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DecryptDataHandler handles POST /api/data/decrypt.
func (h *AuthHandler) DecryptDataHandler(c *gin.Context) {
	var req dataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.DecryptData(req.Data, req.Key)
	if err != nil {
		if errors.Is(err, auth.ErrDecryptionFailed) || errors.Is(err, auth.ErrInvalidEncryptionKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger().Error("Decryption failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Decryption failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
