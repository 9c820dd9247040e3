package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a
// .env file first if one is present. Unset variables leave the current
// value untouched.
//
// Recognized variables:
//
//	MEMOPAD_ADDRESS       HTTP bind address
//	MEMOPAD_DATABASE_DSN  PostgreSQL DSN
//	MEMOPAD_API_KEY       shared API access key
//	MEMOPAD_SECRET_KEY    JWT HMAC secret
//	MEMOPAD_ACCESS_TOKEN_TTL / MEMOPAD_REFRESH_TOKEN_TTL  Go durations ("15m")
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MEMOPAD_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("MEMOPAD_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("MEMOPAD_API_KEY"); v != "" {
		config.ApiKey = v
	}
	if v := os.Getenv("MEMOPAD_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("MEMOPAD_ACCESS_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("MEMOPAD_REFRESH_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
}
