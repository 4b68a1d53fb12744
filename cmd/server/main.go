package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // Token TTL

	"craveseat/internal/api"    // Custom package for API handlers
	"craveseat/internal/config" // Custom package for configuration
	"craveseat/internal/utils"  // Token issuer, uploader, verifier

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/postgres"      // Postgres driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The signing key has no default; a deployment must provide its own
	if cfg.SecretKey == "" {
		logrus.Fatal("SECRET_KEY must be set")
	}

	// Connect to the database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client; the cache is optional and skipped when unconfigured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Token issuer with the process-wide secret and configured TTL
	issuer := utils.NewTokenIssuer(cfg.SecretKey, time.Duration(cfg.TokenExpireMins)*time.Minute)

	// Media host; image endpoints report a configuration error when absent
	var uploader utils.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := utils.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			logrus.Fatalf("failed to configure media host: %v", err)
		}
		uploader = cld
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the route tree
	r := api.NewRouter(api.RouterDeps{
		DB:           db,                                         // Relational store
		Redis:        redisClient,                                // Optional cache
		Issuer:       issuer,                                     // Token mint/verify
		Uploader:     uploader,                                   // Optional media host
		Google:       utils.NewGoogleVerifier(cfg.GoogleClientID), // Federated login
		ShareBaseURL: cfg.ShareBaseURL,                           // Share link base
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
