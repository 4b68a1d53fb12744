package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string // Application port
	DatabaseURL     string // Postgres connection string
	SecretKey       string // JWT signing key
	TokenExpireMins int    // Access token lifetime in minutes
	GoogleClientID  string // Audience for Google ID token verification
	CloudinaryURL   string // Media host credentials (cloudinary://...)
	RedisAddr       string // Redis server address
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	ShareBaseURL    string // Base URL used when building craving share links
	IsProd          bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	// Token lifetime defaults to one week; expiry is the only invalidation mechanism
	expireMins, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if err != nil || expireMins <= 0 {
		expireMins = 7 * 24 * 60
	}
	shareBase := os.Getenv("SHARE_BASE_URL")
	if shareBase == "" {
		shareBase = "https://craveseat.com/share"
	}
	return &Config{
		AppPort:         os.Getenv("APP_PORT"),          // Application port
		DatabaseURL:     os.Getenv("DATABASE_URL"),      // Postgres DSN
		SecretKey:       os.Getenv("SECRET_KEY"),        // JWT signing key, no default
		TokenExpireMins: expireMins,                     // Token lifetime
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),  // Google OAuth client ID
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),    // Media host credentials
		RedisAddr:       os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:         redisDB,                        // Redis database number
		ShareBaseURL:    shareBase,                      // Share link base
		IsProd:          os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
