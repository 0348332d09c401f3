// File: passauth/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passauth/config"
	"passauth/database"
	accountRepo "passauth/database/repository/account"
	attemptRepo "passauth/database/repository/attempt"
	"passauth/handlers"
	"passauth/middleware"
	"passauth/routes"
	"passauth/services/auth"
	"passauth/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitAuthCache()

	// Pick the store backend and build the repositories.
	var accounts accountRepo.AccountRepository
	var attempts attemptRepo.AttemptRepository
	switch config.AppConfig.StoreBackend {
	case "firestore":
		database.InitFirestore()
		accounts = accountRepo.NewFirestoreAccountRepo(database.FirestoreClient)
		attempts = attemptRepo.NewFirestoreAttemptRepo(database.FirestoreClient)
	case "mongo":
		database.InitMongo()
		accounts = accountRepo.NewMongoAccountRepo(database.MongoClient, config.AppConfig.DatabaseName)
		attempts = attemptRepo.NewMongoAttemptRepo(database.MongoClient, config.AppConfig.DatabaseName)
	case "memory":
		logger.Warn("Using in-memory store; all state is lost on restart")
		accounts = accountRepo.NewMemoryAccountRepo()
		attempts = attemptRepo.NewMemoryAttemptRepo()
	default:
		logger.Sugar().Fatalf("main: unknown store backend %q", config.AppConfig.StoreBackend)
	}

	authService := &auth.DefaultAuthService{
		Accounts: accounts,
		Attempts: attempts,
		Sessions: utils.GetAuthCacheClient(),
		KeyMode:  config.AppConfig.KeyDerivation,
	}
	authHandler := handlers.NewAuthHandler(authService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterAuthRoutes(router, authHandler)
	routes.RegisterDataRoutes(router, authHandler)
	routes.RegisterHealthRoute(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
