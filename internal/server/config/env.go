package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables win over the file.
//
// Recognized variables:
//
//	BIND_ADDRESS         host:port to listen on
//	REDIS_URL            Redis connection URL
//	PUBLIC_BASE_URL      base URL for shareable links
//	CHANNEL_TTL_SECONDS  channel idle lifetime, seconds
//	APP_ENV              "production" or "development"
func parseEnv(cfg *Config) {
	// Missing .env is the normal case outside docker-compose.
	_ = godotenv.Load()

	if v := os.Getenv("BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.PublicBaseURL = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("CHANNEL_TTL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.ChannelTTL = time.Duration(seconds) * time.Second
		}
	}
}
