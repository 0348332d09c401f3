// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"passauth/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for auth session caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for auth session caching.
// The service runs without session caching when REDIS_ADDR is unset.
func InitAuthCache() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, auth session caching disabled")
		return
	}
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth session caching.
// May be nil when caching is disabled.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
