package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a
// .env file first if one is present.
//
// Recognized variables:
//
//	MEMOPAD_BASE_URL         backend base URL
//	MEMOPAD_API_KEY          shared API access key
//	MEMOPAD_REQUEST_TIMEOUT  Go duration ("10s")
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MEMOPAD_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := os.Getenv("MEMOPAD_API_KEY"); v != "" {
		config.ApiKey = v
	}
	if v := os.Getenv("MEMOPAD_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RequestTimeout = d
		}
	}
}
