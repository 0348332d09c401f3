package routes

import (
	"net/http"
	"time"

	"passauth/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the credential registration/validation endpoints.
func RegisterAuthRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", h.RegisterUserHandler)
		api.POST("/validate", h.ValidateUserHandler)
		api.GET("/rate-limit", h.RateLimitHandler)
	}
}

// RegisterDataRoutes registers the encrypt/decrypt endpoints.
func RegisterDataRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	api := r.Group("/api/data")
	{
		api.POST("/encrypt", h.EncryptDataHandler)
		api.POST("/decrypt", h.DecryptDataHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// CORSMiddleware returns the CORS policy for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Forwarded-For", "X-Real-IP"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
