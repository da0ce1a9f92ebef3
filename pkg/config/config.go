package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// EntryNoPrefix is the company prefix stamped into journal entry
	// numbers, e.g. "YV" in "YV-2026-00001".
	EntryNoPrefix string

	// RateLimit uses the limiter formatted-rate notation, e.g. "100-M"
	// for 100 requests per minute.
	RateLimit string

	// SeedChart creates the built-in standard chart of accounts on boot
	// when the accounts table is empty.
	SeedChart bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ENTRY_NO_PREFIX", "YV")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("SEED_CHART", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.EntryNoPrefix = viper.GetString("ENTRY_NO_PREFIX")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.SeedChart = viper.GetBool("SEED_CHART")

	return cfg, nil
}
