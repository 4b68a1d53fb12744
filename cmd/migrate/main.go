package main

import (
	"craveseat/internal/config" // Custom import path (Config)
	"craveseat/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DatabaseURL)
}
