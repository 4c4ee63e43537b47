package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	JWTSecret        string
	SchedulerEnabled bool
	ERPRateLimit     string // ulule/limiter format, e.g. "120-M"
	PosthogAPIKey    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("ERP_RATE_LIMIT", "120-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		SchedulerEnabled: viper.GetBool("SCHEDULER_ENABLED"),
		ERPRateLimit:     viper.GetString("ERP_RATE_LIMIT"),
		PosthogAPIKey:    viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}
